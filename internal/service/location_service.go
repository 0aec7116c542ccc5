package service

import (
	"context"

	"github.com/bbqgrill/backend/internal/model"
)

// LocationService resolves free-text queries into restaurant locations.
type LocationService interface {
	// Search classifies text as a zip code or a city/state name and looks up
	// matching locations. It never returns an error; failures are reported
	// through the LocationSearchFailed variant.
	Search(ctx context.Context, text string) LocationSearchResult
}

// LocationSearchResult is one of LocationsFound, LocationsNotFound or
// LocationSearchFailed.
type LocationSearchResult interface {
	isLocationSearchResult()
}

// LocationsFound carries the non-empty result of the lookup.
type LocationsFound struct {
	Data *model.DataSet
}

// LocationsNotFound means the lookup ran and matched nothing.
type LocationsNotFound struct {
	Message string
}

// LocationSearchFailed means the query was rejected or the store failed.
type LocationSearchFailed struct {
	Message string
}

func (LocationsFound) isLocationSearchResult()       {}
func (LocationsNotFound) isLocationSearchResult()    {}
func (LocationSearchFailed) isLocationSearchResult() {}
