package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/food_finder/internal/cache"
	"github.com/GTDGit/food_finder/internal/models"
)

// PlatformClient is implemented by every food delivery platform adapter.
type PlatformClient interface {
	// Code returns the platform code
	Code() models.PlatformCode

	// Search returns the products (or restaurant listings) matching query near loc.
	// A zero loc means the platform default location.
	Search(ctx context.Context, query string, loc models.Location) ([]models.Product, error)
}

// PlatformRouter fans a search out to the selected platforms and merges the results.
// A failing, slow or panicking platform contributes nothing; it never fails the search.
type PlatformRouter struct {
	order     []models.PlatformCode
	platforms map[models.PlatformCode]PlatformClient
	cache     *cache.SearchCache
	timeout   time.Duration
}

// NewPlatformRouter creates a new PlatformRouter. searchCache may be nil.
func NewPlatformRouter(timeout time.Duration, searchCache *cache.SearchCache) *PlatformRouter {
	return &PlatformRouter{
		platforms: make(map[models.PlatformCode]PlatformClient),
		cache:     searchCache,
		timeout:   timeout,
	}
}

// RegisterPlatform adds a platform client to the router. Results are merged in
// registration order.
func (r *PlatformRouter) RegisterPlatform(client PlatformClient) {
	code := client.Code()
	if _, ok := r.platforms[code]; !ok {
		r.order = append(r.order, code)
	}
	r.platforms[code] = client
}

// Platforms returns the registered platform codes in registration order.
func (r *PlatformRouter) Platforms() []models.PlatformCode {
	out := make([]models.PlatformCode, len(r.order))
	copy(out, r.order)
	return out
}

// Resolve picks the platforms to query. An explicit list of codes wins over the
// region; unknown codes are ignored. The result follows registration order.
func (r *PlatformRouter) Resolve(codes []string, region models.Region) []models.PlatformCode {
	wanted := make(map[models.PlatformCode]struct{})
	if len(codes) > 0 {
		for _, c := range codes {
			wanted[models.PlatformCode(strings.ToLower(strings.TrimSpace(c)))] = struct{}{}
		}
	} else {
		for _, c := range models.RegionPlatforms[region] {
			wanted[c] = struct{}{}
		}
	}

	out := make([]models.PlatformCode, 0, len(wanted))
	for _, code := range r.order {
		if _, ok := wanted[code]; ok {
			out = append(out, code)
		}
	}
	return out
}

// Search queries every platform in codes concurrently and concatenates their
// results in the order of codes.
func (r *PlatformRouter) Search(ctx context.Context, query string, loc models.Location, codes []models.PlatformCode) []models.Product {
	results := make([][]models.Product, len(codes))

	var wg sync.WaitGroup
	for i, code := range codes {
		client, ok := r.platforms[code]
		if !ok {
			log.Warn().Str("platform", string(code)).Msg("Platform not registered, skipping")
			continue
		}

		wg.Add(1)
		go func(i int, client PlatformClient) {
			defer wg.Done()
			results[i] = r.searchOne(ctx, client, query, loc)
		}(i, client)
	}
	wg.Wait()

	var total int
	for _, res := range results {
		total += len(res)
	}
	merged := make([]models.Product, 0, total)
	for _, res := range results {
		merged = append(merged, res...)
	}
	return merged
}

func (r *PlatformRouter) searchOne(ctx context.Context, client PlatformClient, query string, loc models.Location) (products []models.Product) {
	code := client.Code()
	startTime := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Str("platform", string(code)).
				Interface("panic", rec).
				Msg("Platform search panicked")
			products = nil
		}
	}()

	if r.cache != nil {
		cached, err := r.cache.Get(ctx, code, query, loc)
		if err == nil {
			log.Debug().Str("platform", string(code)).Int("count", len(cached)).Msg("Search cache hit")
			return cached
		}
		if !errors.Is(err, cache.ErrNotFound) {
			log.Warn().Err(err).Str("platform", string(code)).Msg("Search cache read failed")
		}
	}

	searchCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	products, err := client.Search(searchCtx, query, loc)
	if err != nil {
		log.Error().
			Err(err).
			Str("platform", string(code)).
			Str("query", query).
			Dur("latency", time.Since(startTime)).
			Msg("Platform search failed")
		return nil
	}

	log.Info().
		Str("platform", string(code)).
		Str("query", query).
		Int("count", len(products)).
		Dur("latency", time.Since(startTime)).
		Msg("Platform search completed")

	// A search cut short by the deadline may be partial.
	if r.cache != nil && searchCtx.Err() == nil {
		if err := r.cache.Set(ctx, code, query, loc, products); err != nil {
			log.Warn().Err(err).Str("platform", string(code)).Msg("Search cache write failed")
		}
	}
	return products
}

// platformError wraps an upstream failure with the platform code.
func platformError(code models.PlatformCode, err error) error {
	return fmt.Errorf("%s: %w", code, err)
}
