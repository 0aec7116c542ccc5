package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bbqgrill/backend/internal/repository"
)

// Stored procedures backing the search.
const (
	ProcLocationByZip       = "Get_Location"
	ProcLocationByCityState = "Get_Location_By_City_State"
)

// User-facing search messages.
const (
	MsgSearchBlank       = "Please enter either a valid zip code, a city, or a state"
	MsgSearchNotFound    = "Sorry, we did not find any location close to your area."
	MsgSearchInvalid     = "Please enter either a valid zip, state or city"
	MsgSearchUnavailable = "We were unable to check our repository. Please try again later."
)

// zipPrefixLen is the number of leading digits used for area matching.
const zipPrefixLen = 3

// ErrQueryRange is returned when a zip prefix cannot be taken from the query.
var ErrQueryRange = errors.New("search text out of range")

// locationServiceImpl is the production implementation of LocationService.
type locationServiceImpl struct {
	runner repository.ProcedureRunner
}

// NewLocationService creates a LocationService backed by the given runner.
func NewLocationService(runner repository.ProcedureRunner) LocationService {
	return &locationServiceImpl{runner: runner}
}

func (s *locationServiceImpl) Search(ctx context.Context, text string) (result LocationSearchResult) {
	text = strings.TrimSpace(text)
	if text == "" {
		return LocationSearchFailed{Message: MsgSearchBlank}
	}

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "location search panicked", "query", text, "panic", r)
			result = LocationSearchFailed{Message: MsgSearchUnavailable}
		}
	}()

	procedure, param, err := classifyQuery(text)
	if err != nil {
		if errors.Is(err, ErrQueryRange) {
			return LocationSearchFailed{Message: MsgSearchInvalid}
		}
		slog.ErrorContext(ctx, "location query classification failed", "query", text, "error", err)
		return LocationSearchFailed{Message: MsgSearchUnavailable}
	}

	data, err := s.runner.Query(ctx, procedure, param)
	if err != nil {
		slog.ErrorContext(ctx, "location lookup failed",
			"procedure", procedure,
			"query", text,
			"error", err,
		)
		return LocationSearchFailed{Message: MsgSearchUnavailable}
	}

	if data.IsEmpty() {
		return LocationsNotFound{Message: MsgSearchNotFound}
	}
	return LocationsFound{Data: data}
}

// classifyQuery picks the procedure and its single parameter. Text that
// parses as a 32-bit integer and is at least three characters long is a
// zip code and only its first three characters are sent. Everything else,
// including numbers shorter than three characters, is a city or state name.
func classifyQuery(text string) (procedure, param string, err error) {
	if isZipLike(text) {
		prefix, err := zipPrefix(text)
		if err != nil {
			return "", "", err
		}
		return ProcLocationByZip, prefix, nil
	}
	return ProcLocationByCityState, text, nil
}

func isZipLike(text string) bool {
	_, err := strconv.ParseInt(text, 10, 32)
	return err == nil && len(text) >= zipPrefixLen
}

func zipPrefix(text string) (string, error) {
	if len(text) < zipPrefixLen {
		return "", fmt.Errorf("%w: %q has fewer than %d characters", ErrQueryRange, text, zipPrefixLen)
	}
	return text[:zipPrefixLen], nil
}
