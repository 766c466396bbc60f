package service

import (
	"context"
	"fmt"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/pkg/yemeksepeti"
)

const (
	yemeksepetiSource   = "Yemeksepeti"
	yemeksepetiStoreURL = "https://www.yemeksepeti.com/restaurant/%s"
)

// YemeksepetiPlatform searches Yemeksepeti. The search API only returns
// vendors, so every record is a restaurant listing without a product name.
type YemeksepetiPlatform struct {
	client *yemeksepeti.Client
}

// NewYemeksepetiPlatform creates a new YemeksepetiPlatform
func NewYemeksepetiPlatform(client *yemeksepeti.Client) *YemeksepetiPlatform {
	return &YemeksepetiPlatform{client: client}
}

// Code returns the platform code
func (p *YemeksepetiPlatform) Code() models.PlatformCode {
	return models.PlatformYemeksepeti
}

// Search implements PlatformClient.
func (p *YemeksepetiPlatform) Search(ctx context.Context, query string, loc models.Location) ([]models.Product, error) {
	lat, lon := yemeksepeti.DefaultLat, yemeksepeti.DefaultLon
	if !loc.IsZero() {
		lat, lon = loc.Lat, loc.Lon
	}

	vendors, err := p.client.SearchVendors(ctx, query, lat, lon)
	if err != nil {
		return nil, platformError(p.Code(), err)
	}

	out := make([]models.Product, 0, len(vendors))
	for _, v := range vendors {
		if v.Availability.Status != yemeksepeti.StatusOpen {
			continue
		}
		out = append(out, vendorListing(v))
	}
	return out, nil
}

func vendorListing(v yemeksepeti.Vendor) models.Product {
	var lower, upper int
	if d := v.TimeEstimations.Delivery.Duration; d != nil {
		lower, upper = d.LowerLimitInMinutes, d.UpperLimitInMinutes
	}

	etaMinutes := lower
	if etaMinutes == 0 {
		etaMinutes = upper
	}
	if etaMinutes == 0 {
		etaMinutes = defaultETAMinutes
	}

	eta := fmt.Sprintf("%d mins", etaMinutes)
	if lower != 0 && upper != 0 {
		eta = fmt.Sprintf("%d-%d mins", lower, upper)
	}

	var rating any
	if v.VendorRating != nil {
		rating = v.VendorRating.Value
	}

	return models.Product{
		RestaurantName:   v.Name,
		RestaurantImage:  firstNonEmpty(v.Images.Listing, v.Images.Logo),
		RestaurantRating: firstRating(rating),
		RestaurantETA:    eta,
		RestaurantURL:    fmt.Sprintf(yemeksepetiStoreURL, v.URLKey),
		ETAMinutes:       models.Int(etaMinutes),
		Source:           yemeksepetiSource,
	}
}
