package services

import (
	"time"

	"flight-meetup-service/internal/domain"
)

// MatchOffers combines two travelers' offer sets for one destination into
// valid pairs. A pair is accepted when both sides pass their own price
// ceiling, both offers are priced in the same currency, and the
// synchronization gap is within tolerance; boundary equality
// (gap == tolerance) is a match.
//
// Stop-count, duration and departure-floor ceilings were already applied
// per offer by the retriever; price is checked here so a cheap leg can
// still pair with any counterpart.
//
// The cross product is O(n*m); both sides are bounded by the per-query
// result cap. The computation is side-effect-free and safe to run in
// parallel across destinations.
func MatchOffers(
	destination string,
	offers1, offers2 []domain.FlightOffer,
	limits1, limits2 TravelerFilters,
	tolerance time.Duration,
	mode domain.TripMode,
) []domain.MatchedPair {
	pairs := make([]domain.MatchedPair, 0)

	for _, o1 := range offers1 {
		if exceedsPrice(o1, limits1) {
			continue
		}
		t1 := mode.SyncInstant(o1)

		for _, o2 := range offers2 {
			if exceedsPrice(o2, limits2) {
				continue
			}
			// A summed total is meaningless across currencies.
			if o1.Price.Currency != o2.Price.Currency {
				continue
			}

			gap := t1.Sub(mode.SyncInstant(o2))
			if gap < 0 {
				gap = -gap
			}
			if gap > tolerance {
				continue
			}

			pairs = append(pairs, domain.MatchedPair{
				Destination: destination,
				Offer1:      o1,
				Offer2:      o2,
				TotalPrice:  o1.Price.Amount + o2.Price.Amount,
				Currency:    o1.Price.Currency,
				Gap:         gap,
			})
		}
	}

	return pairs
}

func exceedsPrice(o domain.FlightOffer, limits TravelerFilters) bool {
	return limits.MaxPrice > 0 && o.Price.Amount > limits.MaxPrice
}
