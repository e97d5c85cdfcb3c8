package domain

import "time"

// MatchedPair is one valid meeting option: a traveler-1 offer and a
// traveler-2 offer into the same destination whose synchronization gap is
// within tolerance. Pairs are computed transiently per run and never cached
// (prices are volatile).
type MatchedPair struct {
	Destination string
	Offer1      FlightOffer
	Offer2      FlightOffer
	TotalPrice  float64
	Currency    string
	// Gap is the absolute difference between the two travelers'
	// synchronization instants.
	Gap time.Duration
}

// Identity keys deduplication: two pairs over the same destination and the
// same underlying flight schedules are the same meeting option, however
// they were discovered.
func (p MatchedPair) Identity() string {
	return p.Destination + "|" + p.Offer1.Identity() + "|" + p.Offer2.Identity()
}
