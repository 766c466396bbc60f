package tgoyemek

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog/log"
)

const (
	// BaseURL is the TGO Yemek API base URL.
	BaseURL = "https://api.tgoapis.com"

	suggestionsPath = "/web-discovery-apidiscovery-santral/suggestions"
	restaurantPath  = "/web-restaurant-apirestaurant-santral/restaurants/"

	// DefaultLat and DefaultLon point at central Istanbul.
	DefaultLat = 41.07087
	DefaultLon = 28.996586

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// Config configures a Client. Zero values fall back to defaults.
type Config struct {
	BaseURL           string
	AuthToken         string
	SearchTimeout     time.Duration
	RestaurantTimeout time.Duration
	Parallelism       int
}

// Client fetches restaurant suggestions and menus from TGO Yemek.
// Each call builds its own collector, so a Client is safe for concurrent use.
type Client struct {
	cfg   Config
	debug bool
}

// NewClient constructs a new TGO Yemek client with sane defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = BaseURL
	}
	if cfg.SearchTimeout == 0 {
		cfg.SearchTimeout = 15 * time.Second
	}
	if cfg.RestaurantTimeout == 0 {
		cfg.RestaurantTimeout = 10 * time.Second
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 5
	}
	return &Client{
		cfg:   cfg,
		debug: os.Getenv("ENV") == "development",
	}
}

func (c *Client) newCollector(ctx context.Context, timeout time.Duration) *colly.Collector {
	col := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.Async(true),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	col.SetRequestTimeout(timeout)
	if err := col.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: c.cfg.Parallelism}); err != nil {
		log.Warn().Err(err).Int("parallelism", c.cfg.Parallelism).Msg("[TGOYEMEK] Failed to set request limit")
	}

	col.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "application/json")
		r.Headers.Set("Origin", "https://tgoyemek.com")
		if c.cfg.AuthToken != "" {
			r.Headers.Set("Authorization", "Bearer "+c.cfg.AuthToken)
		}
		if c.debug {
			log.Debug().Str("url", r.URL.String()).Msg("[TGOYEMEK] Outgoing request")
		}
	})
	return col
}

func locationQuery(lat, lon float64) url.Values {
	v := url.Values{}
	v.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	v.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	return v
}

// Suggestions returns the discovery suggestions for text around (lat, lon).
func (c *Client) Suggestions(ctx context.Context, text string, lat, lon float64) (*SuggestionsResponse, error) {
	col := c.newCollector(ctx, c.cfg.SearchTimeout)

	var (
		result   SuggestionsResponse
		fetchErr error
	)
	col.OnResponse(func(r *colly.Response) {
		if c.debug {
			log.Debug().Int("status_code", r.StatusCode).Int("bytes", len(r.Body)).Msg("[TGOYEMEK] Incoming response")
		}
		if err := json.Unmarshal(r.Body, &result); err != nil {
			fetchErr = fmt.Errorf("failed to decode suggestions: %w", err)
		}
	})
	col.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("suggestions request failed (status %d): %w", r.StatusCode, err)
	})

	q := locationQuery(lat, lon)
	q.Set("text", text)
	if err := col.Visit(c.cfg.BaseURL + suggestionsPath + "?" + q.Encode()); err != nil {
		return nil, fmt.Errorf("suggestions request failed: %w", err)
	}
	col.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	return &result, nil
}

// Restaurants fetches the menus of ids concurrently. Restaurants that fail
// to load are logged and left out of the result. It returns an error when
// ctx ends before the fetch completes or when no menu could be loaded.
func (c *Client) Restaurants(ctx context.Context, ids []ID, lat, lon float64) (map[ID]*Restaurant, error) {
	col := c.newCollector(ctx, c.cfg.RestaurantTimeout)

	var (
		mu     sync.Mutex
		failed int
	)
	out := make(map[ID]*Restaurant, len(ids))
	fail := func() {
		mu.Lock()
		failed++
		mu.Unlock()
	}

	col.OnResponse(func(r *colly.Response) {
		id := ID(r.Ctx.Get("restaurant_id"))
		var resp RestaurantResponse
		if err := json.Unmarshal(r.Body, &resp); err != nil {
			log.Warn().Err(err).Str("restaurant_id", string(id)).Msg("[TGOYEMEK] Failed to decode menu")
			fail()
			return
		}
		if resp.Restaurant == nil {
			return
		}
		mu.Lock()
		out[id] = resp.Restaurant
		mu.Unlock()
	})
	col.OnError(func(r *colly.Response, err error) {
		log.Warn().
			Err(err).
			Int("status_code", r.StatusCode).
			Str("restaurant_id", r.Ctx.Get("restaurant_id")).
			Msg("[TGOYEMEK] Failed to fetch menu")
		fail()
	})

	q := locationQuery(lat, lon).Encode()
	for _, id := range ids {
		reqCtx := colly.NewContext()
		reqCtx.Put("restaurant_id", string(id))
		u := c.cfg.BaseURL + restaurantPath + url.PathEscape(string(id)) + "?" + q
		if err := col.Request("GET", u, nil, reqCtx, nil); err != nil {
			log.Warn().Err(err).Str("restaurant_id", string(id)).Msg("[TGOYEMEK] Failed to queue menu request")
			fail()
		}
	}
	col.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("menu fetch interrupted: %w", err)
	}
	if len(ids) > 0 && failed == len(ids) {
		return nil, fmt.Errorf("all %d menu requests failed", failed)
	}
	return out, nil
}
