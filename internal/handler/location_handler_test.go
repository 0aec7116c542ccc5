package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bbqgrill/backend/internal/model"
	"github.com/bbqgrill/backend/internal/service"
	"github.com/jackc/pgx/v5/pgtype"
)

type mockLocationService struct {
	searchFunc func(ctx context.Context, text string) service.LocationSearchResult
}

func (m *mockLocationService) Search(ctx context.Context, text string) service.LocationSearchResult {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, text)
	}
	return service.LocationsNotFound{Message: service.MsgSearchNotFound}
}

func locationTable() model.Table {
	return model.Table{
		Columns: []string{"LocationId", "Name", "Address", "City", "State", "ZipCode", "OpeningTime", "ClosingTime", "IsActive"},
		Rows: [][]any{{
			int32(1), "Downtown Pit", "12 Main St", "Austin", "TX", "78701",
			pgtype.Time{Microseconds: 11 * 3600 * 1e6, Valid: true},
			pgtype.Time{Microseconds: 22 * 3600 * 1e6, Valid: true},
			true,
		}},
	}
}

func TestLocationSearch_Found(t *testing.T) {
	var gotText string
	svc := &mockLocationService{
		searchFunc: func(ctx context.Context, text string) service.LocationSearchResult {
			gotText = text
			return service.LocationsFound{Data: &model.DataSet{Tables: []model.Table{locationTable()}}}
		},
	}
	h := NewLocationHandler(svc)

	req := httptest.NewRequest("GET", "/api/locations?q=78701", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotText != "78701" {
		t.Errorf("expected query 78701 to reach the service, got %q", gotText)
	}

	var resp struct {
		Status    string `json:"status"`
		Locations []struct {
			ID          int64  `json:"id"`
			Name        string `json:"name"`
			FullAddress string `json:"full_address"`
			Hours       string `json:"hours"`
		} `json:"locations"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "found" || len(resp.Locations) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	loc := resp.Locations[0]
	if loc.ID != 1 || loc.Name != "Downtown Pit" {
		t.Errorf("unexpected location: %+v", loc)
	}
	if loc.FullAddress != "12 Main St, Austin, TX 78701" {
		t.Errorf("full_address: got %q", loc.FullAddress)
	}
	if loc.Hours != "11:00 - 22:00" {
		t.Errorf("hours: got %q", loc.Hours)
	}
}

func TestLocationSearch_NotFound(t *testing.T) {
	h := NewLocationHandler(&mockLocationService{})

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest("GET", "/api/locations?q=Nowhere", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp locationSearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "not_found" || resp.Message != service.MsgSearchNotFound {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestLocationSearch_Failed(t *testing.T) {
	h := NewLocationHandler(&mockLocationService{
		searchFunc: func(ctx context.Context, text string) service.LocationSearchResult {
			return service.LocationSearchFailed{Message: service.MsgSearchBlank}
		},
	})

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest("GET", "/api/locations", nil))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp locationSearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "error" || resp.Message != service.MsgSearchBlank {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestLocationSearch_UndecodableRows(t *testing.T) {
	table := model.Table{Columns: []string{"LocationId"}, Rows: [][]any{{"not a number"}}}
	h := NewLocationHandler(&mockLocationService{
		searchFunc: func(ctx context.Context, text string) service.LocationSearchResult {
			return service.LocationsFound{Data: &model.DataSet{Tables: []model.Table{table}}}
		},
	})

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest("GET", "/api/locations?q=Austin", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
