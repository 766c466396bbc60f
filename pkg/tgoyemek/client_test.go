package tgoyemek

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_Suggestions(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != suggestionsPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("text"); got != "burger" {
			t.Errorf("expected text=burger, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("expected bearer token, got %q", got)
		}
		fmt.Fprint(w, `{"suggestions":[
			{"type":"TEXT","items":[{"title":"burger"}]},
			{"type":"RESTAURANT","items":[
				{"restaurantId":123,"title":"Burger Place","status":"OPEN","rating":4.5,"averageDeliveryInterval":"25-35dk"},
				{"restaurantId":"456","title":"Closed Burger","status":"CLOSED"}
			]}
		]}`)
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL, AuthToken: "secret"})
	resp, err := client.Suggestions(context.Background(), "burger", DefaultLat, DefaultLon)
	if err != nil {
		t.Fatalf("Suggestions failed: %v", err)
	}

	if len(resp.Suggestions) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(resp.Suggestions))
	}
	items := resp.Suggestions[1].Items
	if items[0].RestaurantID != "123" {
		t.Errorf("expected numeric id to decode as 123, got %q", items[0].RestaurantID)
	}
	if items[1].RestaurantID != "456" {
		t.Errorf("expected string id 456, got %q", items[1].RestaurantID)
	}
}

func TestClient_SuggestionsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})
	if _, err := client.Suggestions(context.Background(), "burger", DefaultLat, DefaultLon); err == nil {
		t.Fatal("expected an error for 403 response")
	}
}

func TestClient_Restaurants(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, restaurantPath)
		switch id {
		case "1":
			fmt.Fprint(w, `{"restaurant":{"info":{"name":"One","status":"OPEN"},"sections":[{"slug":"burgers","products":[{"name":"Cheeseburger","price":{"salePrice":120}}]}]}}`)
		case "2":
			fmt.Fprint(w, `{"restaurant":{"info":{"name":"Two"},"sections":[]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})
	menus, err := client.Restaurants(context.Background(), []ID{"1", "2", "3"}, DefaultLat, DefaultLon)
	if err != nil {
		t.Fatalf("Restaurants failed: %v", err)
	}

	if len(menus) != 2 {
		t.Fatalf("expected 2 menus, got %d", len(menus))
	}
	one, ok := menus["1"]
	if !ok {
		t.Fatal("expected restaurant 1")
	}
	if one.Info.Name != "One" {
		t.Errorf("expected name One, got %q", one.Info.Name)
	}
	p := one.Sections[0].Products[0]
	if p.Price == nil || p.Price.SalePrice == nil || *p.Price.SalePrice != 120 {
		t.Errorf("expected sale price 120, got %+v", p.Price)
	}
	if _, ok := menus["3"]; ok {
		t.Error("restaurant 3 should have been skipped")
	}
}

func TestClient_RestaurantsAllFailed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})
	menus, err := client.Restaurants(context.Background(), []ID{"1", "2"}, DefaultLat, DefaultLon)
	if err == nil {
		t.Fatalf("expected an error when every menu fails, got %d menus", len(menus))
	}
}

func TestClient_RestaurantsCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"restaurant":{"info":{"name":"One"},"sections":[]}}`)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(Config{BaseURL: ts.URL})
	if _, err := client.Restaurants(ctx, []ID{"1"}, DefaultLat, DefaultLon); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
