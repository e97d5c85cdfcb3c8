package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"flight-meetup-service/internal/adapters/cachestore"
	"flight-meetup-service/internal/domain"
	"flight-meetup-service/internal/ports"
)

// One traveler's leg search: from their home origin to the meeting city.
// In one-way-return mode the searched flight runs the other way (meeting
// city back home); the retriever handles that inversion itself so callers
// always speak in home/meeting terms.
type LegQuery struct {
	Origin        string // traveler's home airport
	Destination   string // meeting city
	DepartureDate string
	ReturnDate    string
	Mode          domain.TripMode

	NearbyRadiusKM int // fan-out radius on the home side
	ReturnRadiusKM int // fan-out radius on the meeting-city side

	// Per-request overrides; non-positive values fall back to the
	// retriever's configured defaults.
	Adults     int
	MaxResults int
}

// OfferRetriever performs one cached, filtered offer search per
// (origin, destination, dates, traveler) query. The raw merged offer set is
// the cached unit; traveler filters are re-applied on every read so they
// may tighten without invalidating the cache.
type OfferRetriever struct {
	Provider ports.FlightProvider
	Cache    ports.CacheStore
	// TTL for raw offer sets. Prices churn fast, so this spans at most the
	// same business day.
	TTL        time.Duration
	Adults     int
	MaxResults int
}

// Search returns the filtered, ranked offers for one traveler and one
// destination. A route without data yields an empty list, not an error;
// only authentication failures (fatal) and cancellation propagate.
func (r *OfferRetriever) Search(ctx context.Context, q LegQuery, f TravelerFilters) ([]domain.FlightOffer, error) {
	adults := q.Adults
	if adults <= 0 {
		adults = r.Adults
	}
	if adults <= 0 {
		adults = 1
	}
	maxResults := q.MaxResults
	if maxResults <= 0 {
		maxResults = r.MaxResults
	}
	if maxResults <= 0 {
		maxResults = 50
	}

	signature := cachestore.OfferSignature(
		q.Origin, q.Destination, q.DepartureDate, q.ReturnDate,
		q.Mode, adults, maxResults, q.NearbyRadiusKM, q.ReturnRadiusKM,
	)

	if raw, ok := r.cacheGet(ctx, signature); ok {
		return rankOffers(filterOffers(raw, f, q.Mode)), nil
	}

	raw, err := r.fetch(ctx, q, adults, maxResults)
	if err != nil {
		return nil, err
	}

	r.cachePut(ctx, signature, raw)
	return rankOffers(filterOffers(raw, f, q.Mode)), nil
}

// fetch merges provider results across the nearby-airport fan-out. Any
// sub-query failure short of an authentication error is logged and skipped
// without aborting the merge.
func (r *OfferRetriever) fetch(ctx context.Context, q LegQuery, adults, maxResults int) ([]domain.FlightOffer, error) {
	var searchOrigins, searchDests []string
	var departureDate, returnDate string

	switch q.Mode {
	case domain.TripOneWayReturn:
		// The travelers are flying home: the leg departs the meeting city.
		searchOrigins = r.nearby(ctx, q.Destination, q.ReturnRadiusKM)
		searchDests = r.nearby(ctx, q.Origin, q.NearbyRadiusKM)
		departureDate = q.ReturnDate
	case domain.TripRoundTrip:
		searchOrigins = r.nearby(ctx, q.Origin, q.NearbyRadiusKM)
		searchDests = r.nearby(ctx, q.Destination, q.ReturnRadiusKM)
		departureDate = q.DepartureDate
		returnDate = q.ReturnDate
	default: // one-way outbound
		searchOrigins = r.nearby(ctx, q.Origin, q.NearbyRadiusKM)
		searchDests = []string{q.Destination}
		departureDate = q.DepartureDate
	}

	merged := make([]domain.FlightOffer, 0)
	for _, origin := range searchOrigins {
		for _, dest := range searchDests {
			offers, err := r.Provider.SearchOffers(ctx, ports.OfferQuery{
				Origin:        origin,
				Destination:   dest,
				DepartureDate: departureDate,
				ReturnDate:    returnDate,
				Adults:        adults,
				MaxResults:    maxResults,
			})
			switch {
			case err == nil:
				merged = append(merged, offers...)
			case errors.Is(err, ports.ErrAuthentication):
				return nil, fmt.Errorf("search offers %s -> %s: %w", origin, dest, err)
			case errors.Is(err, ctx.Err()) && ctx.Err() != nil:
				return nil, err
			case errors.Is(err, ports.ErrNotFound):
				// No offers on this sub-route; nothing to log loudly.
			default:
				log.Printf("op=retrieve subquery=%s->%s skipped err=%v", origin, dest, err)
			}
		}
	}

	return merged, nil
}

func (r *OfferRetriever) nearby(ctx context.Context, code string, radiusKM int) []string {
	if radiusKM <= 0 {
		return []string{code}
	}
	airports, err := r.Provider.ListNearbyAirports(ctx, code, radiusKM)
	if err != nil || len(airports) == 0 {
		log.Printf("op=retrieve nearby_lookup_failed code=%s err=%v", code, err)
		return []string{code}
	}
	return airports
}

func (r *OfferRetriever) cacheGet(ctx context.Context, signature string) ([]domain.FlightOffer, bool) {
	if r.Cache == nil {
		return nil, false
	}
	payload, ok, err := r.Cache.Get(ctx, signature)
	if err != nil {
		log.Printf("op=retrieve cache_get_failed signature=%s err=%v", signature, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var offers []domain.FlightOffer
	if err := json.Unmarshal(payload, &offers); err != nil {
		log.Printf("op=retrieve cache_decode_failed signature=%s err=%v", signature, err)
		return nil, false
	}
	return offers, true
}

func (r *OfferRetriever) cachePut(ctx context.Context, signature string, offers []domain.FlightOffer) {
	if r.Cache == nil {
		return
	}
	payload, err := json.Marshal(offers)
	if err != nil {
		log.Printf("op=retrieve cache_encode_failed signature=%s err=%v", signature, err)
		return
	}
	if err := r.Cache.Put(ctx, signature, payload, r.TTL); err != nil {
		log.Printf("op=retrieve cache_put_failed signature=%s err=%v", signature, err)
	}
}

// filterOffers applies the traveler's stop-count, duration and
// departure-floor ceilings. Price is deliberately not filtered here: the
// match engine filters prices jointly so pairing context is preserved.
func filterOffers(offers []domain.FlightOffer, f TravelerFilters, mode domain.TripMode) []domain.FlightOffer {
	out := make([]domain.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if !offerPassesFilters(o, f, mode) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func offerPassesFilters(o domain.FlightOffer, f TravelerFilters, mode domain.TripMode) bool {
	if o.Outbound.Stops() > f.MaxStops {
		return false
	}
	if o.Return != nil && o.Return.Stops() > f.MaxStops {
		return false
	}

	if f.MaxDuration > 0 {
		if o.Outbound.Duration > f.MaxDuration {
			return false
		}
		if o.Return != nil && o.Return.Duration > f.MaxDuration {
			return false
		}
	}

	// In one-way-return mode the single searched leg is the return leg, so
	// the return floor governs it.
	outboundFloor := f.MinDepartureOutbound
	if mode == domain.TripOneWayReturn {
		outboundFloor = f.MinDepartureReturn
	}
	if !meetsDepartureFloor(o.Outbound, outboundFloor) {
		return false
	}
	if o.Return != nil && !meetsDepartureFloor(*o.Return, f.MinDepartureReturn) {
		return false
	}

	return true
}

func meetsDepartureFloor(leg domain.Leg, floor string) bool {
	if floor == "" {
		return true
	}
	hour, minute, err := parseClock(floor)
	if err != nil {
		return true
	}
	dep := leg.Departure.UTC()
	return dep.Hour() > hour || (dep.Hour() == hour && dep.Minute() >= minute)
}

// rankOffers orders ascending by total price, ties broken by shorter
// outbound duration.
func rankOffers(offers []domain.FlightOffer) []domain.FlightOffer {
	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].Price.Amount != offers[j].Price.Amount {
			return offers[i].Price.Amount < offers[j].Price.Amount
		}
		return offers[i].Outbound.Duration < offers[j].Outbound.Duration
	})
	return offers
}
