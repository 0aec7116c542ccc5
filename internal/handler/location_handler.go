package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bbqgrill/backend/internal/metrics"
	"github.com/bbqgrill/backend/internal/model"
	"github.com/bbqgrill/backend/internal/service"
)

// LocationHandler exposes the location search.
type LocationHandler struct {
	locationService service.LocationService
}

func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

type locationView struct {
	model.Location
	FullAddress string `json:"full_address"`
	Hours       string `json:"hours"`
}

type locationSearchResponse struct {
	Status    string         `json:"status"`
	Message   string         `json:"message,omitempty"`
	Locations []locationView `json:"locations,omitempty"`
}

// Search handles GET /api/locations?q=.
func (h *LocationHandler) Search(w http.ResponseWriter, r *http.Request) {
	result := h.locationService.Search(r.Context(), r.URL.Query().Get("q"))

	switch res := result.(type) {
	case service.LocationsFound:
		views, err := locationViews(res.Data)
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to decode locations", "error", err)
			metrics.ObserveSearch(metrics.OutcomeError)
			writeJSON(w, http.StatusInternalServerError, locationSearchResponse{
				Status:  "error",
				Message: service.MsgSearchUnavailable,
			})
			return
		}
		metrics.ObserveSearch(metrics.OutcomeFound)
		writeJSON(w, http.StatusOK, locationSearchResponse{Status: "found", Locations: views})
	case service.LocationsNotFound:
		metrics.ObserveSearch(metrics.OutcomeNotFound)
		writeJSON(w, http.StatusNotFound, locationSearchResponse{Status: "not_found", Message: res.Message})
	case service.LocationSearchFailed:
		metrics.ObserveSearch(metrics.OutcomeError)
		writeJSON(w, http.StatusUnprocessableEntity, locationSearchResponse{Status: "error", Message: res.Message})
	default:
		slog.ErrorContext(r.Context(), "unknown search result", "type", fmt.Sprintf("%T", result))
		writeJSON(w, http.StatusInternalServerError, locationSearchResponse{Status: "error", Message: service.MsgSearchUnavailable})
	}
}

func locationViews(ds *model.DataSet) ([]locationView, error) {
	var views []locationView
	for _, t := range ds.Tables {
		locs, err := model.LocationsFromTable(t)
		if err != nil {
			return nil, err
		}
		for _, l := range locs {
			views = append(views, locationView{
				Location:    l,
				FullAddress: l.FullAddress(),
				Hours:       l.FormattedHours(),
			})
		}
	}
	return views, nil
}
