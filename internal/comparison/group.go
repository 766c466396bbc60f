package comparison

import (
	"sort"
	"unicode/utf8"

	"github.com/GTDGit/food_finder/internal/models"
)

// SortKey selects the secondary ranking key of comparison groups.
type SortKey string

const (
	SortByPrice    SortKey = "price"
	SortByDistance SortKey = "distance"
)

// unknownETA ranks groups without a delivery estimate last when sorting by distance.
const unknownETA = 999

// bucket keeps insertion order of its keys so output order is deterministic.
type bucket struct {
	keys  []string
	items map[string][]models.Product
}

func newBucket() *bucket {
	return &bucket{items: make(map[string][]models.Product)}
}

func (b *bucket) add(key string, p models.Product) {
	if _, ok := b.items[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.items[key] = append(b.items[key], p)
}

// GroupProducts groups products by (restaurant, product name) and ranks the
// resulting groups. Products with an empty restaurant or product name are
// dropped. Groups offered on more platforms always come first; ties are then
// broken by sortBy. Unknown sort keys keep the grouping order.
func GroupProducts(products []models.Product, sortBy SortKey) []models.ComparisonGroup {
	groups := make([]models.ComparisonGroup, 0)
	if len(products) == 0 {
		return groups
	}

	restaurants := newBucket()
	for _, p := range products {
		key := NormalizeRestaurantName(p.RestaurantName)
		if key == "" {
			continue
		}
		restaurants.add(key, p)
	}

	for _, rk := range restaurants.keys {
		names := newBucket()
		for _, p := range restaurants.items[rk] {
			key := NormalizeProductName(p.ProductName)
			if key == "" {
				continue
			}
			names.add(key, p)
		}
		for _, nk := range names.keys {
			groups = append(groups, buildGroup(names.items[nk]))
		}
	}

	rankGroups(groups, sortBy)
	return groups
}

func buildGroup(members []models.Product) models.ComparisonGroup {
	variants := make([]models.Variant, 0, len(members))
	for _, p := range members {
		variants = append(variants, models.Variant{
			Source:           p.Source,
			Price:            p.ProductPrice,
			ProductURL:       p.ProductURL,
			ProductImage:     p.ProductImage,
			RestaurantRating: p.RestaurantRating,
			RestaurantETA:    p.RestaurantETA,
			ETAMinutes:       p.ETAMinutes,
		})
	}

	sort.SliceStable(variants, func(i, j int) bool {
		return lessPrice(variants[i].Price, variants[j].Price)
	})

	var lowest *float64
	for _, v := range variants {
		if v.Price != nil {
			price := *v.Price
			lowest = &price
			break
		}
	}
	if lowest != nil {
		for i := range variants {
			if variants[i].Price != nil && *variants[i].Price == *lowest {
				variants[i].IsLowest = true
			}
		}
	}

	return models.ComparisonGroup{
		ProductName:     representativeName(members),
		RestaurantName:  members[0].RestaurantName,
		RestaurantImage: members[0].RestaurantImage,
		ProductImage:    variants[0].ProductImage,
		Variants:        variants,
		LowestPrice:     lowest,
		PlatformCount:   len(variants),
		HasComparison:   len(variants) > 1,
	}
}

// representativeName returns the longest raw name; the first one seen wins a tie.
func representativeName(members []models.Product) string {
	name := members[0].ProductName
	for _, p := range members[1:] {
		if utf8.RuneCountInString(p.ProductName) > utf8.RuneCountInString(name) {
			name = p.ProductName
		}
	}
	return name
}

func rankGroups(groups []models.ComparisonGroup, sortBy SortKey) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.PlatformCount != b.PlatformCount {
			return a.PlatformCount > b.PlatformCount
		}
		switch sortBy {
		case SortByPrice:
			return lessPrice(a.LowestPrice, b.LowestPrice)
		case SortByDistance:
			return firstETA(a) < firstETA(b)
		}
		return false
	})
}

// lessPrice orders known prices ascending and unknown prices last.
func lessPrice(a, b *float64) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	}
	return *a < *b
}

func firstETA(g models.ComparisonGroup) int {
	if len(g.Variants) == 0 || g.Variants[0].ETAMinutes == nil {
		return unknownETA
	}
	return *g.Variants[0].ETAMinutes
}
