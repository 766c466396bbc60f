package comparison

import (
	"sort"

	"github.com/GTDGit/food_finder/internal/models"
)

// AllRestaurants returns the distinct non-empty restaurant names, in their
// original casing, sorted alphabetically. Call it on the unfiltered list so
// the facet does not shrink with the current filter selection.
func AllRestaurants(products []models.Product) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, p := range products {
		if p.RestaurantName == "" {
			continue
		}
		if _, ok := seen[p.RestaurantName]; ok {
			continue
		}
		seen[p.RestaurantName] = struct{}{}
		names = append(names, p.RestaurantName)
	}
	sort.Strings(names)
	return names
}
