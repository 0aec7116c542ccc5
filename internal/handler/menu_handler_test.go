package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bbqgrill/backend/internal/model"
)

func testCatalog() *model.MenuCatalog {
	return &model.MenuCatalog{Items: []model.MenuItem{
		{ID: 1, Name: "Brisket Plate", Price: 1850, Category: model.Entree, IsAvailable: true},
		{ID: 2, Name: "Fried Pickles", Price: 700, Category: model.Appetizer, IsAvailable: true},
		{ID: 3, Name: "Burnt Ends", Price: 1600, Category: model.Entree, IsSpecial: true},
	}}
}

type menuResponse struct {
	Items []struct {
		ID             int    `json:"id"`
		Name           string `json:"name"`
		Category       string `json:"category"`
		FormattedPrice string `json:"formatted_price"`
	} `json:"items"`
}

func TestMenuList_All(t *testing.T) {
	h := NewMenuHandler(testCatalog())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/api/menu", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp menuResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(resp.Items))
	}
	if resp.Items[0].FormattedPrice != "$18.50" {
		t.Errorf("formatted_price: got %q", resp.Items[0].FormattedPrice)
	}
	if resp.Items[0].Category != "Entree" {
		t.Errorf("category: got %q", resp.Items[0].Category)
	}
}

func TestMenuList_ByCategory(t *testing.T) {
	h := NewMenuHandler(testCatalog())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/api/menu?category=entree", nil))

	var resp menuResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 2 || resp.Items[0].ID != 1 || resp.Items[1].ID != 3 {
		t.Errorf("expected entrees 1 and 3 in order, got %+v", resp.Items)
	}
}

func TestMenuList_UnknownCategory(t *testing.T) {
	h := NewMenuHandler(testCatalog())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/api/menu?category=Sushi", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestMenuList_NilCatalog(t *testing.T) {
	h := NewMenuHandler(nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/api/menu", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp menuResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("expected empty menu, got %d items", len(resp.Items))
	}
}
