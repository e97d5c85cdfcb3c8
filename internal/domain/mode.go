package domain

import (
	"fmt"
	"time"
)

// TripMode selects which legs are searched and which instant two travelers
// must synchronize on.
type TripMode string

const (
	// Outbound and return legs, synchronized on outbound arrival.
	TripRoundTrip TripMode = "round_trip"
	// Outbound leg only, synchronized on arrival.
	TripOneWayOutbound TripMode = "one_way_outbound"
	// Single leg home from the meeting city, synchronized on departure.
	TripOneWayReturn TripMode = "one_way_return"
)

// ParseTripMode validates a wire-level mode string.
func ParseTripMode(s string) (TripMode, error) {
	switch TripMode(s) {
	case TripRoundTrip, TripOneWayOutbound, TripOneWayReturn:
		return TripMode(s), nil
	case "":
		return TripRoundTrip, nil
	}
	return "", fmt.Errorf("unknown trip mode %q", s)
}

// SyncInstant returns the instant of the offer that must coincide between
// the two travelers: departure from the shared destination in one-way-return
// mode, outbound arrival otherwise.
func (m TripMode) SyncInstant(o FlightOffer) time.Time {
	if m == TripOneWayReturn {
		return o.Outbound.Departure
	}
	return o.Outbound.Arrival
}

// HasReturnLeg reports whether offers in this mode carry a second leg.
func (m TripMode) HasReturnLeg() bool { return m == TripRoundTrip }
