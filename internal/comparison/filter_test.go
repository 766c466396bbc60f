package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/food_finder/internal/models"
)

func TestApplyFilters_NoFilters(t *testing.T) {
	in := []models.Product{
		product("A", "x", models.Float(1), "tgoyemek"),
		product("B", "y", nil, "Yemeksepeti"),
	}
	assert.Equal(t, in, ApplyFilters(in, Filters{}))
}

func TestApplyFilters_PriceRangeKeepsUnknownPrices(t *testing.T) {
	in := []models.Product{
		product("A", "low", models.Float(5), "X"),
		product("A", "min", models.Float(10), "X"),
		product("A", "mid", models.Float(15), "X"),
		product("A", "max", models.Float(20), "X"),
		product("A", "high", models.Float(25), "X"),
		product("A", "unknown", nil, "X"),
	}

	out := ApplyFilters(in, Filters{PriceMin: models.Float(10), PriceMax: models.Float(20)})

	names := make([]string, 0, len(out))
	for _, p := range out {
		names = append(names, p.ProductName)
		if p.ProductPrice != nil {
			assert.GreaterOrEqual(t, *p.ProductPrice, 10.0)
			assert.LessOrEqual(t, *p.ProductPrice, 20.0)
		}
	}
	assert.Equal(t, []string{"min", "mid", "max", "unknown"}, names)
}

func TestApplyFilters_TimeRange(t *testing.T) {
	in := []models.Product{
		withETA(product("A", "fast", nil, "X"), 10),
		withETA(product("A", "ok", nil, "X"), 30),
		withETA(product("A", "slow", nil, "X"), 60),
		product("A", "unknown", nil, "X"),
	}

	out := ApplyFilters(in, Filters{TimeMin: models.Int(15), TimeMax: models.Int(45)})

	require.Len(t, out, 2)
	assert.Equal(t, "ok", out[0].ProductName)
	assert.Equal(t, "unknown", out[1].ProductName)
}

func TestApplyFilters_Restaurant(t *testing.T) {
	in := []models.Product{
		product("Burger King", "a", nil, "X"),
		product("The Burger Joint", "b", nil, "X"),
		product("Pizza Hut", "c", nil, "X"),
	}

	out := ApplyFilters(in, Filters{RestaurantFilter: "  BURGER "})
	require.Len(t, out, 2)

	assert.Len(t, ApplyFilters(in, Filters{RestaurantFilter: "   "}), 3)
}

func TestApplyFilters_Platforms(t *testing.T) {
	in := []models.Product{
		product("A", "a", nil, "tgoyemek"),
		product("A", "b", nil, "Yemeksepeti"),
		product("A", "c", nil, "other"),
	}

	out := ApplyFilters(in, Filters{Platforms: []string{"yemeksepeti", "TGOYemek"}})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ProductName)
	assert.Equal(t, "b", out[1].ProductName)
}

func TestApplyFilters_Conjunction(t *testing.T) {
	in := []models.Product{
		withETA(product("Burger King", "match", models.Float(12), "tgoyemek"), 20),
		withETA(product("Burger King", "too expensive", models.Float(30), "tgoyemek"), 20),
		withETA(product("Burger King", "wrong platform", models.Float(12), "other"), 20),
		withETA(product("Pizza Hut", "wrong restaurant", models.Float(12), "tgoyemek"), 20),
		withETA(product("Burger King", "too slow", models.Float(12), "tgoyemek"), 90),
	}

	out := ApplyFilters(in, Filters{
		PriceMax:         models.Float(20),
		TimeMax:          models.Int(40),
		RestaurantFilter: "burger",
		Platforms:        []string{"tgoyemek"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "match", out[0].ProductName)
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	in := []models.Product{
		product("A", "a", models.Float(5), "X"),
		product("B", "b", models.Float(50), "X"),
	}
	snapshot := append([]models.Product(nil), in...)

	_ = ApplyFilters(in, Filters{PriceMax: models.Float(10)})
	assert.Equal(t, snapshot, in)
}
