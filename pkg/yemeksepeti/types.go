package yemeksepeti

// SearchRequest is the persisted GraphQL query payload.
type SearchRequest struct {
	Extensions Extensions      `json:"extensions"`
	Variables  SearchVariables `json:"variables"`
}

// Extensions carries the persisted query reference.
type Extensions struct {
	PersistedQuery PersistedQuery `json:"persistedQuery"`
}

// PersistedQuery identifies a server side stored query.
type PersistedQuery struct {
	SHA256Hash string `json:"sha256Hash"`
	Version    int    `json:"version"`
}

// SearchVariables are the query variables.
type SearchVariables struct {
	SearchResultsParams SearchResultsParams `json:"searchResultsParams"`
	SkipQueryCorrection bool                `json:"skipQueryCorrection"`
}

// SearchResultsParams describes what and where to search.
type SearchResultsParams struct {
	Query          string   `json:"query"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Locale         string   `json:"locale"`
	LanguageID     int      `json:"languageId"`
	ExpeditionType string   `json:"expeditionType"`
	CustomerType   string   `json:"customerType"`
	VerticalTypes  []string `json:"verticalTypes"`
}

// SearchResponse is the GraphQL response envelope.
type SearchResponse struct {
	Data struct {
		SearchPage struct {
			Components []Component `json:"components"`
		} `json:"searchPage"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Component is one search result tile.
type Component struct {
	VendorData *Vendor `json:"vendorData"`
}

// Vendor is a restaurant in the search results.
type Vendor struct {
	Name   string `json:"name"`
	URLKey string `json:"urlKey"`
	Images struct {
		Listing string `json:"listing"`
		Logo    string `json:"logo"`
	} `json:"images"`
	VendorRating *struct {
		Value any `json:"value"`
	} `json:"vendorRating"`
	Availability struct {
		Status string `json:"status"`
	} `json:"availability"`
	TimeEstimations struct {
		Delivery struct {
			Duration *struct {
				LowerLimitInMinutes int `json:"lowerLimitInMinutes"`
				UpperLimitInMinutes int `json:"upperLimitInMinutes"`
			} `json:"duration"`
		} `json:"delivery"`
	} `json:"timeEstimations"`
}

// StatusOpen marks a vendor that currently accepts orders.
const StatusOpen = "OPEN"
