package ports

import (
	"context"

	"flight-meetup-service/internal/domain"
)

// Parameters for one priced-offer search against the provider.
type OfferQuery struct {
	Origin        string
	Destination   string
	DepartureDate string // YYYY-MM-DD
	ReturnDate    string // empty for one-way searches
	Adults        int
	MaxResults    int
}

// Date window for destination discovery, inclusive.
type DateRange struct {
	Start string
	End   string
}

// FlightProvider is the capability contract for the external flight-data
// provider. There is one implementation per environment (production HTTP
// client, scripted mock); selection happens in the composition root, never
// by conditional branching inside business logic.
type FlightProvider interface {
	// Return priced offers ordered by the provider's own ranking.
	SearchOffers(ctx context.Context, q OfferQuery) ([]domain.FlightOffer, error)

	// Return destination codes reachable from origin inside the window,
	// optionally constrained to nonstop routes.
	DiscoverDestinations(ctx context.Context, origin string, window DateRange, nonStop bool) ([]string, error)

	// Return destinations with direct connectivity from origin. This is the
	// cheap call backing route pre-validation.
	ListDirectRoutes(ctx context.Context, origin string) ([]string, error)

	// Return airport codes within radiusKM of the given airport, always
	// including the airport itself. A non-positive radius disables the
	// lookup and returns just the input code.
	ListNearbyAirports(ctx context.Context, code string, radiusKM int) ([]string, error)
}
