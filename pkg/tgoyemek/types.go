package tgoyemek

import (
	"bytes"
	"encoding/json"
)

// ID accepts both numeric and string identifiers.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	*id = ID(b)
	return nil
}

// Suggestion group types and restaurant statuses used by the API.
const (
	GroupTypeText = "TEXT"
	StatusOpen    = "OPEN"
	StatusClosed  = "CLOSED"
)

// SuggestionsResponse is returned by the discovery suggestions endpoint.
type SuggestionsResponse struct {
	Suggestions []SuggestionGroup `json:"suggestions"`
}

// SuggestionGroup is one block of suggestions (text completions, restaurants...).
type SuggestionGroup struct {
	Type  string           `json:"type"`
	Items []SuggestionItem `json:"items"`
}

// SuggestionItem is a suggested restaurant.
type SuggestionItem struct {
	RestaurantID            ID     `json:"restaurantId"`
	Title                   string `json:"title"`
	ImageURL                string `json:"imageUrl"`
	Rating                  any    `json:"rating"`
	AverageDeliveryInterval string `json:"averageDeliveryInterval"`
	Status                  string `json:"status"`
}

// RestaurantResponse is returned by the restaurant endpoint.
type RestaurantResponse struct {
	Restaurant *Restaurant `json:"restaurant"`
}

// Restaurant is a restaurant with its full menu.
type Restaurant struct {
	Info     RestaurantInfo `json:"info"`
	Sections []Section      `json:"sections"`
}

// RestaurantInfo holds restaurant level details.
type RestaurantInfo struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Status   string `json:"status"`
	Score    *struct {
		Overall any `json:"overall"`
	} `json:"score"`
	DeliveryInfo *struct {
		ETA string `json:"eta"`
	} `json:"deliveryInfo"`
}

// Section is a menu section.
type Section struct {
	Slug     string        `json:"slug"`
	Products []MenuProduct `json:"products"`
}

// MenuProduct is one menu entry.
type MenuProduct struct {
	Name     string `json:"name"`
	Active   *bool  `json:"active"`
	ImageURL string `json:"imageUrl"`
	Price    *struct {
		SalePrice *float64 `json:"salePrice"`
	} `json:"price"`
}
