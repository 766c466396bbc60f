package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/utils"
)

func newTestSearchService() (*SearchService, *fakePlatform, *fakePlatform) {
	tgo := &fakePlatform{code: models.PlatformTGOYemek, products: []models.Product{
		{ProductName: "Cheese Burger", ProductPrice: models.Float(150), RestaurantName: "Burger Place", ETAMinutes: models.Int(20), Source: "tgoyemek"},
		{ProductName: "cheese burger", ProductPrice: models.Float(140), RestaurantName: "burger place", ETAMinutes: models.Int(25), Source: "tgoyemek"},
		{ProductName: "Pizza", ProductPrice: models.Float(90), RestaurantName: "Pizza Place", ETAMinutes: models.Int(40), Source: "tgoyemek"},
	}}
	ys := &fakePlatform{code: models.PlatformYemeksepeti, products: []models.Product{
		{RestaurantName: "Kebapçı", ETAMinutes: models.Int(15), Source: "Yemeksepeti"},
	}}

	router := NewPlatformRouter(time.Second, nil)
	router.RegisterPlatform(tgo)
	router.RegisterPlatform(ys)
	return NewSearchService(router, "tr", 12), tgo, ys
}

func TestSearchService_RequiresTerm(t *testing.T) {
	svc, _, _ := newTestSearchService()

	_, err := svc.Search(context.Background(), &models.SearchRequest{Term: "   "})
	assert.ErrorIs(t, err, utils.ErrSearchTermRequired)
}

func TestSearchService_Search(t *testing.T) {
	svc, tgo, ys := newTestSearchService()

	res, err := svc.Search(context.Background(), &models.SearchRequest{Term: "burger"})
	require.NoError(t, err)

	assert.Equal(t, 1, tgo.calls())
	assert.Equal(t, 1, ys.calls())
	assert.Equal(t, []string{"Burger Place", "Kebapçı", "Pizza Place", "burger place"}, res.AllRestaurants)

	require.Len(t, res.Products, 2)
	burger := res.Products[0]
	assert.Equal(t, "Cheese Burger", burger.ProductName)
	assert.Equal(t, 2, burger.PlatformCount)
	assert.Equal(t, 140.0, *burger.LowestPrice)
	assert.Equal(t, "Pizza", res.Products[1].ProductName)
	assert.Equal(t, 1, res.Pagination.CurrentPage)
	assert.Equal(t, 12, res.Pagination.PerPage)
	assert.Equal(t, 2, res.Pagination.TotalProducts)
}

func TestSearchService_PlatformSelectionAndFilters(t *testing.T) {
	svc, tgo, ys := newTestSearchService()

	res, err := svc.Search(context.Background(), &models.SearchRequest{
		Term:              "burger",
		Platforms:         []string{"tgoyemek"},
		TimeMax:           models.Int(30),
		Sort:              "distance",
		GroupByRestaurant: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, tgo.calls())
	assert.Equal(t, 0, ys.calls())
	assert.True(t, res.Grouped)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Cheese Burger", res.Products[0].ProductName)
}

func TestSearchService_PageOutOfRange(t *testing.T) {
	svc, _, _ := newTestSearchService()

	res, err := svc.Search(context.Background(), &models.SearchRequest{Term: "burger", Page: 5})
	require.NoError(t, err)

	assert.NotNil(t, res.Products)
	assert.Empty(t, res.Products)
	assert.Equal(t, 5, res.Pagination.CurrentPage)
}

func TestSearchService_Count(t *testing.T) {
	svc, _, _ := newTestSearchService()
	assert.Equal(t, 4, svc.Count(context.Background(), "burger", models.Location{}))
}
