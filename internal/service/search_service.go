package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/food_finder/internal/comparison"
	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/utils"
)

// SearchService runs a cross-platform search and hands the merged products to
// the comparison engine.
type SearchService struct {
	router        *PlatformRouter
	defaultRegion models.Region
	perPage       int
}

// NewSearchService creates a new SearchService
func NewSearchService(router *PlatformRouter, defaultRegion string, perPage int) *SearchService {
	return &SearchService{
		router:        router,
		defaultRegion: models.Region(defaultRegion),
		perPage:       perPage,
	}
}

// Search fetches products from the requested platforms and returns one page of
// ranked comparison groups.
func (s *SearchService) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error) {
	term := strings.TrimSpace(req.Term)
	if term == "" {
		return nil, utils.ErrSearchTermRequired
	}

	region := models.Region(strings.ToLower(strings.TrimSpace(req.Region)))
	if region == "" {
		region = s.defaultRegion
	}
	platforms := s.router.Resolve(req.Platforms, region)

	page := req.Page
	if page == 0 {
		page = 1
	}

	startTime := time.Now()
	products := s.router.Search(ctx, term, req.Location(), platforms)

	filterPlatforms := make([]string, len(platforms))
	for i, p := range platforms {
		filterPlatforms[i] = string(p)
	}

	result := comparison.Compare(products, comparison.Query{
		Filters: comparison.Filters{
			PriceMin:         req.PriceMin,
			PriceMax:         req.PriceMax,
			TimeMin:          req.TimeMin,
			TimeMax:          req.TimeMax,
			RestaurantFilter: req.RestaurantFilter,
			Platforms:        filterPlatforms,
		},
		SortBy:  sortKey(req.Sort),
		Page:    page,
		PerPage: s.perPage,
		Grouped: req.GroupByRestaurant,
	})

	log.Info().
		Str("term", term).
		Str("region", string(region)).
		Int("platforms", len(platforms)).
		Int("products", len(products)).
		Int("groups", result.Pagination.TotalProducts).
		Dur("latency", time.Since(startTime)).
		Msg("Search completed")

	return &result, nil
}

// Count returns how many raw products the default region yields for query.
func (s *SearchService) Count(ctx context.Context, query string, loc models.Location) int {
	platforms := s.router.Resolve(nil, s.defaultRegion)
	return len(s.router.Search(ctx, query, loc, platforms))
}

func sortKey(raw string) comparison.SortKey {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(comparison.SortByPrice):
		return comparison.SortByPrice
	default:
		return comparison.SortKey(strings.ToLower(strings.TrimSpace(raw)))
	}
}
