package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/GTDGit/food_finder/internal/models"
)

// SearchCache stores raw per-platform search results so repeated searches
// (pagination, filter changes) do not hit the platforms again.
type SearchCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewSearchCache creates a new SearchCache.
func NewSearchCache(redis *RedisClient, ttl time.Duration) *SearchCache {
	return &SearchCache{
		redis: redis,
		ttl:   ttl,
	}
}

// key returns search:{platform}:{query}:{lat}:{lon}. Coordinates are rounded
// to ~10m so jittery client locations share entries.
func (c *SearchCache) key(platform models.PlatformCode, query string, loc models.Location) string {
	q := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return fmt.Sprintf("search:%s:%s:%.4f:%.4f", platform, q, loc.Lat, loc.Lon)
}

// Get returns cached products, or ErrNotFound.
func (c *SearchCache) Get(ctx context.Context, platform models.PlatformCode, query string, loc models.Location) ([]models.Product, error) {
	raw, err := c.redis.Get(ctx, c.key(platform, query, loc))
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached search: %w", err)
	}
	return products, nil
}

// Set stores products for the configured TTL.
func (c *SearchCache) Set(ctx context.Context, platform models.PlatformCode, query string, loc models.Location, products []models.Product) error {
	jsonData, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}
	return c.redis.Set(ctx, c.key(platform, query, loc), string(jsonData), c.ttl)
}
