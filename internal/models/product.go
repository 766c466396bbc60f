package models

// Product is a single menu item offered by one platform for one restaurant.
// Records without a product name are restaurant-level listings: they feed the
// restaurant facet but never form comparison groups.
type Product struct {
	ProductName      string   `json:"product_name,omitempty"`
	ProductPrice     *float64 `json:"product_price"`
	ProductImage     string   `json:"product_image,omitempty"`
	ProductURL       string   `json:"product_url,omitempty"`
	RestaurantName   string   `json:"restaurant_name"`
	RestaurantImage  string   `json:"restaurant_image,omitempty"`
	RestaurantRating any      `json:"restaurant_rating"`
	RestaurantETA    string   `json:"restaurant_eta,omitempty"`
	RestaurantURL    string   `json:"restaurant_url,omitempty"`
	ETAMinutes       *int     `json:"eta_minutes,omitempty"`
	Source           string   `json:"source"`
}

// Variant is one platform's offer inside a ComparisonGroup.
type Variant struct {
	Source           string   `json:"source"`
	Price            *float64 `json:"price"`
	ProductURL       string   `json:"product_url,omitempty"`
	ProductImage     string   `json:"product_image,omitempty"`
	RestaurantRating any      `json:"restaurant_rating"`
	RestaurantETA    string   `json:"restaurant_eta,omitempty"`
	ETAMinutes       *int     `json:"eta_minutes,omitempty"`
	IsLowest         bool     `json:"is_lowest"`
}

// ComparisonGroup merges the same product of the same restaurant across platforms.
type ComparisonGroup struct {
	ProductName     string    `json:"product_name"`
	RestaurantName  string    `json:"restaurant_name"`
	RestaurantImage string    `json:"restaurant_image,omitempty"`
	ProductImage    string    `json:"product_image,omitempty"`
	Variants        []Variant `json:"variants"`
	LowestPrice     *float64  `json:"lowest_price"`
	PlatformCount   int       `json:"platform_count"`
	HasComparison   bool      `json:"has_comparison"`
}

// Pagination describes one page of a ranked result list.
type Pagination struct {
	CurrentPage   int  `json:"current_page"`
	PerPage       int  `json:"per_page"`
	TotalProducts int  `json:"total_products"`
	TotalPages    int  `json:"total_pages"`
	HasNext       bool `json:"has_next"`
	HasPrev       bool `json:"has_prev"`
}

// SearchResult is the body of the search endpoint.
type SearchResult struct {
	Grouped        bool              `json:"grouped"`
	Products       []ComparisonGroup `json:"products"`
	Pagination     Pagination        `json:"pagination"`
	AllRestaurants []string          `json:"all_restaurants"`
}

// Float returns a pointer to v. Handy for building products by hand.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
