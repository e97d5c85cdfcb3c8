package amadeus

import (
	"context"
	"sync"

	"flight-meetup-service/internal/domain"
	"flight-meetup-service/internal/ports"
)

// MockProvider is a scripted ports.FlightProvider for tests. Every endpoint
// counts its calls so tests can assert on request budgets (cache hits and
// early exit are verified by call counts, not by timing).
type MockProvider struct {
	mu sync.Mutex

	// Offers and OfferErrs key by "origin|destination".
	Offers    map[string][]domain.FlightOffer
	OfferErrs map[string]error

	// Destinations and DestinationErrs key by origin.
	Destinations    map[string][]string
	DestinationErrs map[string]error

	// DirectRoutes keys by origin; RouteErr fails every route listing.
	DirectRoutes map[string][]string
	RouteErr     error

	// Nearby keys by airport code; unset codes fall back to the code itself.
	Nearby map[string][]string

	OfferCalls     int
	OfferCallLog   []string
	OfferQueries   []ports.OfferQuery
	DiscoveryCalls int
	RouteCalls     int
	NearbyCalls    int

	// NonStopSeen records the nonStop flag of each discovery call.
	NonStopSeen []bool
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		Offers:          make(map[string][]domain.FlightOffer),
		OfferErrs:       make(map[string]error),
		Destinations:    make(map[string][]string),
		DestinationErrs: make(map[string]error),
		DirectRoutes:    make(map[string][]string),
		Nearby:          make(map[string][]string),
	}
}

func (m *MockProvider) SearchOffers(_ context.Context, q ports.OfferQuery) ([]domain.FlightOffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := q.Origin + "|" + q.Destination
	m.OfferCalls++
	m.OfferCallLog = append(m.OfferCallLog, key)
	m.OfferQueries = append(m.OfferQueries, q)

	if err, ok := m.OfferErrs[key]; ok {
		return nil, err
	}
	return m.Offers[key], nil
}

func (m *MockProvider) DiscoverDestinations(_ context.Context, origin string, _ ports.DateRange, nonStop bool) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DiscoveryCalls++
	m.NonStopSeen = append(m.NonStopSeen, nonStop)

	if err, ok := m.DestinationErrs[origin]; ok {
		return nil, err
	}
	return m.Destinations[origin], nil
}

func (m *MockProvider) ListDirectRoutes(_ context.Context, origin string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RouteCalls++
	if m.RouteErr != nil {
		return nil, m.RouteErr
	}
	return m.DirectRoutes[origin], nil
}

func (m *MockProvider) ListNearbyAirports(_ context.Context, code string, radiusKM int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.NearbyCalls++
	if radiusKM <= 0 {
		return []string{code}, nil
	}
	if nearby, ok := m.Nearby[code]; ok {
		return nearby, nil
	}
	return []string{code}, nil
}
