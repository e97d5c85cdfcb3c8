package domain

import (
	"strings"
	"time"
)

// One carrier-operated flight within a leg.
type Segment struct {
	CarrierCode string
	Number      string
	Origin      string
	Destination string
	Departure   time.Time
	Arrival     time.Time
}

// Leg is one directional itinerary (outbound or return) for one traveler.
// Invariants enforced at the provider boundary: Arrival is after Departure
// and Segments is non-empty.
type Leg struct {
	Origin      string
	Destination string
	Departure   time.Time
	Arrival     time.Time
	Duration    time.Duration
	Segments    []Segment
}

// Stops returns the number of intermediate stops: one fewer than the
// segment count.
func (l Leg) Stops() int {
	if len(l.Segments) == 0 {
		return 0
	}
	return len(l.Segments) - 1
}

// identity fingerprints the leg by its flight schedule.
func (l Leg) identity() string {
	parts := make([]string, 0, len(l.Segments))
	for _, s := range l.Segments {
		parts = append(parts,
			s.CarrierCode+s.Number+"@"+
				s.Departure.UTC().Format(time.RFC3339)+">"+
				s.Arrival.UTC().Format(time.RFC3339))
	}
	return strings.Join(parts, "/")
}

// Monetary amount with its currency code.
type Price struct {
	Amount   float64
	Currency string
}

// FlightOffer is one priced itinerary for one traveler as returned by the
// provider. Return is nil for one-way searches. Offers are immutable after
// construction; filtering discards offers, it never edits them.
type FlightOffer struct {
	Outbound  Leg
	Return    *Leg
	Price     Price
	FareBasis string

	// SearchOrigin records which airport the fan-out query actually used,
	// which may differ from Outbound.Origin's nominal airport.
	SearchOrigin string
}

// Identity fingerprints the offer by schedule only: carriers, times and
// segment sequence across both legs. Price and fare class are deliberately
// excluded so the same flight seen at two cached prices collapses to one.
func (o FlightOffer) Identity() string {
	id := o.Outbound.identity()
	if o.Return != nil {
		id += "|" + o.Return.identity()
	}
	return id
}
