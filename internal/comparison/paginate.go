package comparison

import "github.com/GTDGit/food_finder/internal/models"

// DefaultPerPage is the page size used when none is given.
const DefaultPerPage = 12

// Paginate returns the 1-based page of items and its metadata. A page out of
// range yields an empty slice, never an error.
func Paginate[T any](items []T, page, perPage int) ([]T, models.Pagination) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := len(items)
	totalPages := 0
	if total > 0 {
		totalPages = (total-1)/perPage + 1
	}

	pagination := models.Pagination{
		CurrentPage:   page,
		PerPage:       perPage,
		TotalProducts: total,
		TotalPages:    totalPages,
		HasNext:       page < totalPages,
		HasPrev:       page > 1,
	}

	// page <= totalPages <= total keeps the offset from overflowing.
	if page < 1 || page > totalPages {
		return make([]T, 0), pagination
	}
	start := (page - 1) * perPage
	end := min(start+perPage, total)
	return items[start:end], pagination
}
