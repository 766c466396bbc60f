package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/service"
)

// SearchHandler serves the cross-platform product comparison.
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler constructs a SearchHandler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search queries the selected platforms and returns one page of comparison groups.
// POST /api/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	res, err := h.searchService.Search(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "SEARCH_FAILED", "Search failed")
		return
	}
	c.JSON(http.StatusOK, res)
}
