package comparison

import (
	"strings"

	"github.com/GTDGit/food_finder/internal/models"
)

// Filters are the optional user constraints of a search. A nil bound or an
// empty value means "no constraint"; all constraints must hold together.
type Filters struct {
	PriceMin         *float64
	PriceMax         *float64
	TimeMin          *int
	TimeMax          *int
	RestaurantFilter string
	Platforms        []string
}

// ApplyFilters returns the products matching every filter. The input slice is
// never modified.
//
// Unknown prices always pass price bounds. Unknown delivery times always pass
// time bounds.
func ApplyFilters(products []models.Product, f Filters) []models.Product {
	platforms := make(map[string]struct{}, len(f.Platforms))
	for _, p := range f.Platforms {
		platforms[strings.ToLower(strings.TrimSpace(p))] = struct{}{}
	}
	restaurant := strings.ToLower(strings.TrimSpace(f.RestaurantFilter))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if len(platforms) > 0 {
			if _, ok := platforms[strings.ToLower(p.Source)]; !ok {
				continue
			}
		}
		if p.ProductPrice != nil {
			if f.PriceMin != nil && *p.ProductPrice < *f.PriceMin {
				continue
			}
			if f.PriceMax != nil && *p.ProductPrice > *f.PriceMax {
				continue
			}
		}
		if p.ETAMinutes != nil {
			if f.TimeMin != nil && *p.ETAMinutes < *f.TimeMin {
				continue
			}
			if f.TimeMax != nil && *p.ETAMinutes > *f.TimeMax {
				continue
			}
		}
		if restaurant != "" && !strings.Contains(strings.ToLower(p.RestaurantName), restaurant) {
			continue
		}
		out = append(out, p)
	}
	return out
}
