package yemeksepeti

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	mrand "math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// GraphQLURL is the Yemeksepeti GraphQL endpoint.
	GraphQLURL = "https://tr.fd-api.com/graphql"

	persistedQueryHash = "93b9ca670837160efbb882589196c597acdd3be370a2c520b799a52728a38495"
	clientVersion      = "VENDOR-LIST-MICROFRONTEND.26.07.0026"
	userAgent          = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	// DefaultLat and DefaultLon point at central Istanbul.
	DefaultLat = 41.076703
	DefaultLon = 29.010804
)

// Client is a minimal HTTP client for the Yemeksepeti vendor search.
type Client struct {
	httpClient *http.Client
	endpoint   string
	debug      bool
}

// NewClient constructs a new Yemeksepeti client. An empty endpoint uses GraphQLURL.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = GraphQLURL
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		debug:      os.Getenv("ENV") == "development",
	}
}

// SearchVendors returns the vendors matching query around (lat, lon).
func (c *Client) SearchVendors(ctx context.Context, query string, lat, lon float64) ([]Vendor, error) {
	req := SearchRequest{
		Extensions: Extensions{
			PersistedQuery: PersistedQuery{SHA256Hash: persistedQueryHash, Version: 1},
		},
		Variables: SearchVariables{
			SearchResultsParams: SearchResultsParams{
				Query:          query,
				Latitude:       lat,
				Longitude:      lon,
				Locale:         "tr_TR",
				LanguageID:     2,
				ExpeditionType: "DELIVERY",
				CustomerType:   "B2C",
				VerticalTypes:  []string{"RESTAURANTS"},
			},
			SkipQueryCorrection: true,
		},
	}

	var resp SearchResponse
	if err := c.doRequest(ctx, req, lat, lon, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %s", resp.Errors[0].Message)
	}

	vendors := make([]Vendor, 0, len(resp.Data.SearchPage.Components))
	for _, comp := range resp.Data.SearchPage.Components {
		if comp.VendorData != nil {
			vendors = append(vendors, *comp.VendorData)
		}
	}
	return vendors, nil
}

// perseusID mimics the tracking id the web client sends with every request.
func perseusID() string {
	b := make([]byte, 5)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%d.%d.%s", time.Now().UnixMilli(), mrand.Int64N(1e18), hex.EncodeToString(b))
}

// doRequest POSTs the GraphQL payload and decodes the JSON response into result.
func (c *Client) doRequest(ctx context.Context, body any, lat, lon float64, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	// Debug logging for development
	if c.debug {
		log.Debug().
			Str("endpoint", c.endpoint).
			RawJSON("request", payload).
			Msg("[YEMEKSEPETI] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	id := perseusID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Apollographql-Client-Name", "web")
	req.Header.Set("Apollographql-Client-Version", clientVersion)
	req.Header.Set("Customer-Latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	req.Header.Set("Customer-Longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	req.Header.Set("Display-Context", "SEARCH")
	req.Header.Set("Locale", "tr_TR")
	req.Header.Set("Platform", "web")
	req.Header.Set("X-Fp-Api-Key", "volo")
	req.Header.Set("Perseus-Client-Id", id)
	req.Header.Set("Perseus-Session-Id", id)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Int("status_code", resp.StatusCode).
			Int("bytes", len(respBody)).
			Msg("[YEMEKSEPETI] Incoming response")
	}

	if resp.StatusCode != http.StatusOK {
		snippet := respBody
		if len(snippet) > 500 {
			snippet = snippet[:500]
		}
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet)
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
