package comparison

import "github.com/GTDGit/food_finder/internal/models"

// Query is everything the pipeline needs besides the raw products.
type Query struct {
	Filters Filters
	SortBy  SortKey
	Page    int
	PerPage int
	Grouped bool
}

// Compare runs the full pipeline: restaurant facet on the raw list, then
// filter, group and rank, then paginate.
func Compare(products []models.Product, q Query) models.SearchResult {
	restaurants := AllRestaurants(products)
	filtered := ApplyFilters(products, q.Filters)
	groups := GroupProducts(filtered, q.SortBy)
	page, pagination := Paginate(groups, q.Page, q.PerPage)

	return models.SearchResult{
		Grouped:        q.Grouped,
		Products:       page,
		Pagination:     pagination,
		AllRestaurants: restaurants,
	}
}
