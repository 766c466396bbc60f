package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/food_finder/internal/models"
)

func product(restaurant, name string, price *float64, source string) models.Product {
	return models.Product{
		RestaurantName: restaurant,
		ProductName:    name,
		ProductPrice:   price,
		Source:         source,
	}
}

func withETA(p models.Product, eta int) models.Product {
	p.ETAMinutes = models.Int(eta)
	return p
}

func TestGroupProducts_SameProductAcrossPlatforms(t *testing.T) {
	groups := GroupProducts([]models.Product{
		product("A", "Pizza Margherita", models.Float(30), "X"),
		product("a", "pizza margherita", models.Float(25), "Y"),
	}, SortByPrice)

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, 2, g.PlatformCount)
	assert.True(t, g.HasComparison)
	require.NotNil(t, g.LowestPrice)
	assert.Equal(t, 25.0, *g.LowestPrice)

	require.Len(t, g.Variants, 2)
	assert.Equal(t, "Y", g.Variants[0].Source)
	assert.True(t, g.Variants[0].IsLowest)
	assert.Equal(t, "X", g.Variants[1].Source)
	assert.False(t, g.Variants[1].IsLowest)
	assert.Equal(t, "A", g.RestaurantName)
}

func TestGroupProducts_Empty(t *testing.T) {
	groups := GroupProducts(nil, SortByPrice)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestGroupProducts_DropsNamelessProducts(t *testing.T) {
	groups := GroupProducts([]models.Product{
		product("", "Burger", models.Float(10), "X"),
		product("   ", "Burger", models.Float(10), "X"),
		product("Diner", "", models.Float(10), "X"),
		product("Diner", "  ", models.Float(10), "X"),
		product("Diner", "Burger", models.Float(12), "Y"),
	}, SortByPrice)

	require.Len(t, groups, 1)
	assert.Equal(t, "Diner", groups[0].RestaurantName)
	assert.Equal(t, 1, groups[0].PlatformCount)
	assert.False(t, groups[0].HasComparison)
}

func TestGroupProducts_NullPricesSortLast(t *testing.T) {
	groups := GroupProducts([]models.Product{
		product("Diner", "Burger", nil, "X"),
		product("Diner", "Burger", models.Float(15), "Y"),
		product("Diner", "Burger", models.Float(12), "Z"),
	}, SortByPrice)

	require.Len(t, groups, 1)
	v := groups[0].Variants
	assert.Equal(t, []string{"Z", "Y", "X"}, []string{v[0].Source, v[1].Source, v[2].Source})
	assert.Nil(t, v[2].Price)
	assert.False(t, v[2].IsLowest)
	assert.Equal(t, 12.0, *groups[0].LowestPrice)
}

func TestGroupProducts_AllPricesUnknown(t *testing.T) {
	groups := GroupProducts([]models.Product{
		product("Diner", "Burger", nil, "X"),
		product("Diner", "Burger", nil, "Y"),
	}, SortByPrice)

	require.Len(t, groups, 1)
	assert.Nil(t, groups[0].LowestPrice)
	for _, v := range groups[0].Variants {
		assert.False(t, v.IsLowest)
	}
}

func TestGroupProducts_ZeroPriceIsLowest(t *testing.T) {
	groups := GroupProducts([]models.Product{
		product("Diner", "Water", models.Float(3), "X"),
		product("Diner", "Water", models.Float(0), "Y"),
	}, SortByPrice)

	require.Len(t, groups, 1)
	require.NotNil(t, groups[0].LowestPrice)
	assert.Equal(t, 0.0, *groups[0].LowestPrice)
	assert.True(t, groups[0].Variants[0].IsLowest)
}

func TestGroupProducts_TiedLowestPrices(t *testing.T) {
	groups := GroupProducts([]models.Product{
		product("Diner", "Burger", models.Float(10), "X"),
		product("Diner", "Burger", models.Float(10), "Y"),
		product("Diner", "Burger", models.Float(11), "Z"),
	}, SortByPrice)

	v := groups[0].Variants
	assert.True(t, v[0].IsLowest)
	assert.True(t, v[1].IsLowest)
	assert.False(t, v[2].IsLowest)
}

func TestGroupProducts_RepresentativeName(t *testing.T) {
	groups := GroupProducts([]models.Product{
		product("Diner", "big burger", models.Float(10), "X"),
		product("Diner", "Big  Burger", models.Float(10), "Y"),
		product("Diner", "BIG  BURGER", models.Float(10), "Z"),
	}, SortByPrice)

	require.Len(t, groups, 1)
	assert.Equal(t, "Big  Burger", groups[0].ProductName)
}

func TestGroupProducts_MultiPlatformFirst(t *testing.T) {
	for _, sortBy := range []SortKey{SortByPrice, SortByDistance, "rating"} {
		groups := GroupProducts([]models.Product{
			product("Diner", "Cheap Fries", models.Float(1), "X"),
			product("Diner", "Burger", models.Float(50), "X"),
			product("Diner", "Burger", models.Float(60), "Y"),
		}, sortBy)

		require.Len(t, groups, 2)
		assert.Equal(t, "Burger", groups[0].ProductName, "sort %s", sortBy)
		assert.Equal(t, 2, groups[0].PlatformCount)
	}
}

func TestGroupProducts_SortByPrice(t *testing.T) {
	groups := GroupProducts([]models.Product{
		product("R1", "Unknown", nil, "X"),
		product("R2", "Expensive", models.Float(40), "X"),
		product("R3", "Cheap", models.Float(5), "X"),
		product("R4", "Mid", models.Float(20), "X"),
	}, SortByPrice)

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.ProductName)
	}
	assert.Equal(t, []string{"Cheap", "Mid", "Expensive", "Unknown"}, names)
}

func TestGroupProducts_SortByDistance(t *testing.T) {
	groups := GroupProducts([]models.Product{
		withETA(product("R1", "Slow", models.Float(1), "X"), 45),
		product("R2", "NoETA", models.Float(1), "X"),
		withETA(product("R3", "Fast", models.Float(9), "X"), 10),
	}, SortByDistance)

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.ProductName)
	}
	assert.Equal(t, []string{"Fast", "Slow", "NoETA"}, names)
}

func TestGroupProducts_UnknownSortKeepsInsertionOrder(t *testing.T) {
	groups := GroupProducts([]models.Product{
		product("R2", "Second", models.Float(40), "X"),
		product("R1", "First", models.Float(5), "X"),
		product("R2", "Third", models.Float(1), "X"),
	}, "popularity")

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.ProductName)
	}
	assert.Equal(t, []string{"Second", "Third", "First"}, names)
}

func TestGroupProducts_Invariants(t *testing.T) {
	input := []models.Product{
		product("Diner", "Burger", models.Float(10), "X"),
		product("diner ", "burger", models.Float(8), "Y"),
		product("Diner", "Fries", nil, "X"),
		product("Cafe", "Latte", models.Float(4), "X"),
		product("Cafe", "Latte", models.Float(4), "Y"),
		product("Cafe", "Latte", nil, "Z"),
		product("Cafe", "Toast", models.Float(6), "Y"),
	}

	first := GroupProducts(input, SortByPrice)
	second := GroupProducts(input, SortByPrice)
	assert.Equal(t, first, second)

	for i, g := range first {
		assert.Equal(t, len(g.Variants), g.PlatformCount)
		assert.Equal(t, g.PlatformCount > 1, g.HasComparison)

		var lowest *float64
		for _, v := range g.Variants {
			if v.Price != nil && (lowest == nil || *v.Price < *lowest) {
				p := *v.Price
				lowest = &p
			}
		}
		assert.Equal(t, lowest, g.LowestPrice)
		for _, v := range g.Variants {
			if g.LowestPrice != nil && v.Price != nil && *v.Price == *g.LowestPrice {
				assert.True(t, v.IsLowest)
			} else {
				assert.False(t, v.IsLowest)
			}
		}

		if i > 0 {
			prev := first[i-1]
			assert.GreaterOrEqual(t, prev.PlatformCount, g.PlatformCount)
			if prev.PlatformCount == g.PlatformCount && g.LowestPrice != nil {
				require.NotNil(t, prev.LowestPrice)
				assert.LessOrEqual(t, *prev.LowestPrice, *g.LowestPrice)
			}
		}
	}
}
