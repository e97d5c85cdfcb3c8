package ports

import "flight-meetup-service/internal/domain"

// AirportLocator is a pure data lookup for airport metadata. It backs the
// nearby-airport search (which needs coordinates) and presentation-side
// name/timezone resolution; it never performs network calls.
type AirportLocator interface {
	Locate(code string) (domain.Airport, bool)
}
