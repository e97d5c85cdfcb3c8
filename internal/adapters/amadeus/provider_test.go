package amadeus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"flight-meetup-service/internal/adapters/airportdata"
	"flight-meetup-service/internal/ports"
)

const offersBody = `{
	"data": [{
		"itineraries": [{
			"duration": "PT4H30M",
			"segments": [{
				"departure": {"iataCode": "TLV", "at": "2026-10-12T08:00:00"},
				"arrival": {"iataCode": "ALC", "at": "2026-10-12T12:30:00"},
				"carrierCode": "IB",
				"number": "6200"
			}]
		}],
		"price": {"total": "215.40", "currency": "EUR"}
	}]
}`

// newTestProvider points a provider at a scripted API server. The token
// endpoint is always served; offersFn scripts everything else.
func newTestProvider(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Provider, *atomic.Int32) {
	t.Helper()

	var tokenRequests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			tokenRequests.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token": "tok-1", "expires_in": 1799}`))
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("missing bearer token, got %q", got)
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	p, err := NewProvider("key", "secret", "test", 1000, airportdata.NewStaticLocator())
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	p.baseURL = srv.URL
	return p, &tokenRequests
}

func TestSearchOffersParsesResponse(t *testing.T) {
	p, tokenRequests := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/shopping/flight-offers" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("originLocationCode") != "TLV" || q.Get("destinationLocationCode") != "ALC" {
			t.Errorf("route params = %s -> %s", q.Get("originLocationCode"), q.Get("destinationLocationCode"))
		}
		if q.Get("returnDate") != "2026-10-16" {
			t.Errorf("returnDate = %q", q.Get("returnDate"))
		}
		if q.Get("adults") != "1" || q.Get("max") != "30" {
			t.Errorf("adults=%s max=%s", q.Get("adults"), q.Get("max"))
		}
		w.Write([]byte(offersBody))
	})

	offers, err := p.SearchOffers(context.Background(), ports.OfferQuery{
		Origin:        "tlv",
		Destination:   "alc",
		DepartureDate: "2026-10-12",
		ReturnDate:    "2026-10-16",
		Adults:        1,
		MaxResults:    30,
	})
	if err != nil {
		t.Fatalf("SearchOffers: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(offers))
	}
	if offers[0].Price.Amount != 215.40 {
		t.Errorf("price = %v", offers[0].Price.Amount)
	}
	if offers[0].SearchOrigin != "TLV" {
		t.Errorf("search origin = %q", offers[0].SearchOrigin)
	}
	if got := tokenRequests.Load(); got != 1 {
		t.Errorf("token requests = %d, want 1", got)
	}
}

func TestSearchOffersSkipsUnparseableEntries(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"data": [
				{"itineraries": [], "price": {"total": "10.00"}},
				{
					"itineraries": [{
						"segments": [{
							"departure": {"iataCode": "TLV", "at": "2026-10-12T08:00:00"},
							"arrival": {"iataCode": "ALC", "at": "2026-10-12T12:30:00"},
							"carrierCode": "IB",
							"number": "6200"
						}]
					}],
					"price": {"total": "215.40", "currency": "EUR"}
				}
			]
		}`))
	})

	offers, err := p.SearchOffers(context.Background(), ports.OfferQuery{
		Origin:        "TLV",
		Destination:   "ALC",
		DepartureDate: "2026-10-12",
	})
	if err != nil {
		t.Fatalf("SearchOffers: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected the malformed entry to be skipped, got %d offers", len(offers))
	}
}

func TestTokenRefreshedOnceOn401(t *testing.T) {
	var calls atomic.Int32
	p, tokenRequests := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, `{"error": "expired"}`, http.StatusUnauthorized)
			return
		}
		w.Write([]byte(offersBody))
	})

	offers, err := p.SearchOffers(context.Background(), ports.OfferQuery{
		Origin:        "TLV",
		Destination:   "ALC",
		DepartureDate: "2026-10-12",
	})
	if err != nil {
		t.Fatalf("SearchOffers after refresh: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(offers))
	}
	if got := tokenRequests.Load(); got != 2 {
		t.Errorf("token requests = %d, want 2 (initial plus refresh)", got)
	}
}

func TestPersistent401MapsToAuthenticationError(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid"}`, http.StatusUnauthorized)
	})

	_, err := p.SearchOffers(context.Background(), ports.OfferQuery{
		Origin:        "TLV",
		Destination:   "ALC",
		DepartureDate: "2026-10-12",
	})
	if !errors.Is(err, ports.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestBadCredentialsMapToAuthenticationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid_client"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	p, err := NewProvider("key", "wrong", "test", 1000, airportdata.NewStaticLocator())
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	p.baseURL = srv.URL

	_, err = p.SearchOffers(context.Background(), ports.OfferQuery{
		Origin:        "TLV",
		Destination:   "ALC",
		DepartureDate: "2026-10-12",
	})
	if !errors.Is(err, ports.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication from token endpoint, got %v", err)
	}
}

func Test404MapsToNotFound(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "no route"}`, http.StatusNotFound)
	})

	_, err := p.SearchOffers(context.Background(), ports.OfferQuery{
		Origin:        "TLV",
		Destination:   "XXX",
		DepartureDate: "2026-10-12",
	})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExhausted429MapsToRateLimited(t *testing.T) {
	var calls atomic.Int32
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error": "slow down"}`, http.StatusTooManyRequests)
	})

	_, err := p.SearchOffers(context.Background(), ports.OfferQuery{
		Origin:        "TLV",
		Destination:   "ALC",
		DepartureDate: "2026-10-12",
	})
	if !errors.Is(err, ports.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if got := calls.Load(); got != 4 {
		t.Errorf("attempts = %d, want 4", got)
	}
}

func TestServerErrorsAreRetried(t *testing.T) {
	var calls atomic.Int32
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
			return
		}
		w.Write([]byte(offersBody))
	})

	offers, err := p.SearchOffers(context.Background(), ports.OfferQuery{
		Origin:        "TLV",
		Destination:   "ALC",
		DepartureDate: "2026-10-12",
	})
	if err != nil {
		t.Fatalf("SearchOffers after retries: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(offers))
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestDiscoverDestinationsDeduplicates(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/shopping/flight-destinations" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("nonStop") != "true" {
			t.Errorf("nonStop = %q", q.Get("nonStop"))
		}
		if q.Get("departureDate") != "2026-10-12,2026-10-16" {
			t.Errorf("departureDate = %q", q.Get("departureDate"))
		}
		w.Write([]byte(`{"data": [
			{"destination": "ALC"},
			{"destination": "alc"},
			{"destination": "BCN"},
			{"destination": ""}
		]}`))
	})

	codes, err := p.DiscoverDestinations(context.Background(), "TLV",
		ports.DateRange{Start: "2026-10-12", End: "2026-10-16"}, true)
	if err != nil {
		t.Fatalf("DiscoverDestinations: %v", err)
	}
	if len(codes) != 2 || codes[0] != "ALC" || codes[1] != "BCN" {
		t.Fatalf("codes = %v, want [ALC BCN]", codes)
	}
}

func TestListNearbyAirportsLeadsWithInput(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/reference-data/locations/airports" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"data": [
			{"iataCode": "BVA"},
			{"iataCode": "CDG"},
			{"iataCode": "ORY"}
		]}`))
	})

	codes, err := p.ListNearbyAirports(context.Background(), "CDG", 100)
	if err != nil {
		t.Fatalf("ListNearbyAirports: %v", err)
	}
	if len(codes) == 0 || codes[0] != "CDG" {
		t.Fatalf("codes = %v, want CDG first", codes)
	}
	// The server copy of CDG must not duplicate the lead entry.
	count := 0
	for _, c := range codes {
		if c == "CDG" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("CDG appeared %d times", count)
	}
}

func TestListNearbyAirportsZeroRadiusSkipsProvider(t *testing.T) {
	p, tokenRequests := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for a zero radius")
	})

	codes, err := p.ListNearbyAirports(context.Background(), "TLV", 0)
	if err != nil {
		t.Fatalf("ListNearbyAirports: %v", err)
	}
	if len(codes) != 1 || codes[0] != "TLV" {
		t.Fatalf("codes = %v, want [TLV]", codes)
	}
	if got := tokenRequests.Load(); got != 0 {
		t.Errorf("token requests = %d, want 0", got)
	}
}
