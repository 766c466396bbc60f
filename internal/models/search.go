package models

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Term              string   `json:"term"`
	Lat               *float64 `json:"lat,omitempty"`
	Lon               *float64 `json:"lon,omitempty"`
	Sort              string   `json:"sort"` // price (default), distance
	Page              int      `json:"page"`
	Platforms         []string `json:"platforms,omitempty"`
	Region            string   `json:"region,omitempty"`
	PriceMin          *float64 `json:"price_min,omitempty"`
	PriceMax          *float64 `json:"price_max,omitempty"`
	TimeMin           *int     `json:"time_min,omitempty"`
	TimeMax           *int     `json:"time_max,omitempty"`
	RestaurantFilter  string   `json:"restaurant_filter"`
	GroupByRestaurant bool     `json:"group_by_restaurant"`
}

// Location returns the requested coordinate, zero when either part is missing.
func (r *SearchRequest) Location() Location {
	if r.Lat == nil || r.Lon == nil {
		return Location{}
	}
	return Location{Lat: *r.Lat, Lon: *r.Lon}
}

// ProcessVoiceRequest is the body of POST /api/process-voice.
type ProcessVoiceRequest struct {
	Text     string   `json:"text"`
	Language string   `json:"language"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
	Validate bool     `json:"validate"`
	UseAI    *bool    `json:"useAI,omitempty"` // default true
}

// Location returns the requested coordinate, zero when either part is missing.
func (r *ProcessVoiceRequest) Location() Location {
	if r.Lat == nil || r.Lon == nil {
		return Location{}
	}
	return Location{Lat: *r.Lat, Lon: *r.Lon}
}

// VoiceSearch is the search intent extracted from a spoken sentence.
type VoiceSearch struct {
	SearchTerms   []string `json:"search_terms"`
	SearchQuery   string   `json:"search_query"`
	SearchMessage string   `json:"search_message"`
	Language      string   `json:"language"`
	OriginalText  string   `json:"original_text"`
	Validated     bool     `json:"validated"`
	ResultCount   int      `json:"result_count"`
	AIExtracted   bool     `json:"ai_extracted"`
}

// TranslateRequest is the body of POST /api/translate. Either Text or Type is required.
type TranslateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Type     string `json:"type"`
}

// Language is a supported UI language.
type Language struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	HasPreTranslated bool   `json:"hasPreTranslated"`
}
