package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/pkg/tgoyemek"
)

const (
	tgoyemekMaxRestaurants = 5
	tgoyemekDefaultETA     = "30dk"
	tgoyemekStoreURL       = "https://tgoyemek.com/restoranlar/%s#%s"

	defaultETAMinutes = 30
	unknownRating     = "N/A"
)

// TGOYemekPlatform searches TGO Yemek: it finds open restaurants for the query,
// loads their menus and keeps the menu items whose name matches the query.
type TGOYemekPlatform struct {
	client *tgoyemek.Client
}

// NewTGOYemekPlatform creates a new TGOYemekPlatform
func NewTGOYemekPlatform(client *tgoyemek.Client) *TGOYemekPlatform {
	return &TGOYemekPlatform{client: client}
}

// Code returns the platform code
func (p *TGOYemekPlatform) Code() models.PlatformCode {
	return models.PlatformTGOYemek
}

// tgoRestaurant is a suggested restaurant with the fallbacks used when its menu lacks details.
type tgoRestaurant struct {
	id       tgoyemek.ID
	name     string
	imageURL string
	rating   any
	eta      string
}

// Search implements PlatformClient.
func (p *TGOYemekPlatform) Search(ctx context.Context, query string, loc models.Location) ([]models.Product, error) {
	lat, lon := tgoyemek.DefaultLat, tgoyemek.DefaultLon
	if !loc.IsZero() {
		lat, lon = loc.Lat, loc.Lon
	}

	suggestions, err := p.client.Suggestions(ctx, query, lat, lon)
	if err != nil {
		return nil, platformError(p.Code(), err)
	}

	restaurants := openRestaurants(suggestions)
	if len(restaurants) == 0 {
		return []models.Product{}, nil
	}

	ids := make([]tgoyemek.ID, len(restaurants))
	for i, r := range restaurants {
		ids[i] = r.id
	}
	menus, err := p.client.Restaurants(ctx, ids, lat, lon)
	if err != nil {
		return nil, platformError(p.Code(), err)
	}

	log.Debug().
		Int("restaurants", len(restaurants)).
		Int("menus", len(menus)).
		Msg("[TGOYEMEK] Menus loaded")

	words := strings.Fields(strings.ToLower(query))
	products := make([]models.Product, 0)
	for _, r := range restaurants {
		menu, ok := menus[r.id]
		if !ok {
			continue
		}
		products = append(products, matchMenu(r, menu, words)...)
	}
	return products, nil
}

// openRestaurants returns up to five OPEN restaurants from the non-text suggestion groups.
func openRestaurants(resp *tgoyemek.SuggestionsResponse) []tgoRestaurant {
	var out []tgoRestaurant
	for _, group := range resp.Suggestions {
		if group.Type == tgoyemek.GroupTypeText {
			continue
		}
		for _, item := range group.Items {
			if len(out) >= tgoyemekMaxRestaurants {
				return out
			}
			if item.Status != tgoyemek.StatusOpen {
				continue
			}
			out = append(out, tgoRestaurant{
				id:       item.RestaurantID,
				name:     item.Title,
				imageURL: item.ImageURL,
				rating:   firstRating(item.Rating),
				eta:      firstNonEmpty(item.AverageDeliveryInterval, tgoyemekDefaultETA),
			})
		}
	}
	return out
}

func matchMenu(r tgoRestaurant, menu *tgoyemek.Restaurant, words []string) []models.Product {
	info := menu.Info

	name := firstNonEmpty(info.Name, r.name)
	image := firstNonEmpty(info.ImageURL, r.imageURL)
	rating := r.rating
	if info.Score != nil {
		rating = firstRating(info.Score.Overall, r.rating)
	}
	eta := r.eta
	if info.DeliveryInfo != nil {
		eta = firstNonEmpty(info.DeliveryInfo.ETA, r.eta)
	}
	etaMinutes := leadingInt(eta, defaultETAMinutes)

	var out []models.Product
	for _, section := range menu.Sections {
		for _, item := range section.Products {
			if item.Active != nil && !*item.Active && info.Status == tgoyemek.StatusClosed {
				continue
			}
			if !containsAny(strings.ToLower(item.Name), words) {
				continue
			}

			var price *float64
			if item.Price != nil && item.Price.SalePrice != nil && *item.Price.SalePrice != 0 {
				price = models.Float(*item.Price.SalePrice)
			}

			out = append(out, models.Product{
				ProductName:      item.Name,
				ProductPrice:     price,
				ProductImage:     item.ImageURL,
				ProductURL:       fmt.Sprintf(tgoyemekStoreURL, r.id, section.Slug),
				RestaurantName:   name,
				RestaurantImage:  image,
				RestaurantRating: rating,
				RestaurantETA:    eta,
				ETAMinutes:       models.Int(etaMinutes),
				Source:           string(models.PlatformTGOYemek),
			})
		}
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// leadingInt parses the integer prefix of s ("25-35dk" -> 25). Missing or zero
// values yield def.
func leadingInt(s string, def int) int {
	s = strings.TrimSpace(s)
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if digits > 6 {
			break
		}
	}
	if n == 0 {
		return def
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstRating returns the first present, non-zero rating, or "N/A".
func firstRating(values ...any) any {
	for _, v := range values {
		switch r := v.(type) {
		case nil:
			continue
		case string:
			if r == "" {
				continue
			}
		case float64:
			if r == 0 {
				continue
			}
		}
		return v
	}
	return unknownRating
}
