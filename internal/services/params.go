package services

import (
	"fmt"
	"strings"
	"time"

	"flight-meetup-service/internal/domain"
)

// Per-traveler offer ceilings. Zero values mean "no limit" except MaxStops,
// where zero means nonstop only.
type TravelerFilters struct {
	MaxPrice    float64
	MaxStops    int
	MaxDuration time.Duration

	// Departure-time floors as "HH:MM" clock times (UTC), separate for the
	// outbound and return legs. Empty means no floor.
	MinDepartureOutbound string
	MinDepartureReturn   string
}

// SearchRequest carries every recognized option of one meetup search run.
// It is plain data: the composition roots populate it from their own
// configuration sources.
type SearchRequest struct {
	Origin1 string
	Origin2 string

	DepartureDate string // YYYY-MM-DD
	ReturnDate    string // required for round_trip and one_way_return
	Mode          domain.TripMode

	Tolerance time.Duration
	Traveler1 TravelerFilters
	Traveler2 TravelerFilters

	// Nearby-airport fan-out radii: origin side and destination/return side.
	// Zero disables the expansion.
	NearbyRadiusKM int
	ReturnRadiusKM int

	// Explicit destination list; when set, discovery is skipped entirely.
	Destinations []string

	UseDynamicDestinations bool
	MaxDestinations        int
	PreValidate            bool
	EarlyExit              bool

	Adults            int
	MaxOffersPerQuery int
	Concurrency       int
	TopN              int
}

// ValidationError marks malformed input parameters: fatal, surfaced
// immediately, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (r *SearchRequest) Validate() error {
	if !isIATACode(r.Origin1) {
		return &ValidationError{Field: "origin1", Reason: "must be a 3-letter IATA code"}
	}
	if !isIATACode(r.Origin2) {
		return &ValidationError{Field: "origin2", Reason: "must be a 3-letter IATA code"}
	}
	if strings.EqualFold(r.Origin1, r.Origin2) {
		return &ValidationError{Field: "origin2", Reason: "origins must be distinct"}
	}

	if _, err := time.Parse("2006-01-02", r.DepartureDate); err != nil {
		return &ValidationError{Field: "departure_date", Reason: "must be YYYY-MM-DD"}
	}
	if r.Mode == domain.TripRoundTrip || r.Mode == domain.TripOneWayReturn {
		if _, err := time.Parse("2006-01-02", r.ReturnDate); err != nil {
			return &ValidationError{Field: "return_date", Reason: "required as YYYY-MM-DD for mode " + string(r.Mode)}
		}
	}

	if r.Tolerance < 0 {
		return &ValidationError{Field: "tolerance", Reason: "must not be negative"}
	}
	for _, f := range []struct {
		name  string
		value string
	}{
		{"traveler1.min_departure_outbound", r.Traveler1.MinDepartureOutbound},
		{"traveler1.min_departure_return", r.Traveler1.MinDepartureReturn},
		{"traveler2.min_departure_outbound", r.Traveler2.MinDepartureOutbound},
		{"traveler2.min_departure_return", r.Traveler2.MinDepartureReturn},
	} {
		if f.value == "" {
			continue
		}
		if _, _, err := parseClock(f.value); err != nil {
			return &ValidationError{Field: f.name, Reason: "must be HH:MM"}
		}
	}

	if r.Traveler1.MaxStops < 0 || r.Traveler2.MaxStops < 0 {
		return &ValidationError{Field: "max_stops", Reason: "must not be negative"}
	}
	if r.Traveler1.MaxPrice < 0 || r.Traveler2.MaxPrice < 0 {
		return &ValidationError{Field: "max_price", Reason: "must not be negative"}
	}

	return nil
}

func isIATACode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// parseClock parses an "HH:MM" clock time.
func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}
