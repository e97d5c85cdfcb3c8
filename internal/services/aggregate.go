package services

import (
	"sort"
	"sync"

	"flight-meetup-service/internal/domain"
)

// Aggregator deduplicates and ranks matched pairs across destinations.
// Pairs over identical flight schedules (found, say, via both the nominal
// and a nearby-airport search) collapse to one; the first seen wins. Safe
// for concurrent Add from destination workers.
type Aggregator struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	pairs []domain.MatchedPair
}

func NewAggregator() *Aggregator {
	return &Aggregator{seen: make(map[string]struct{})}
}

func (a *Aggregator) Add(pairs ...domain.MatchedPair) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, p := range pairs {
		id := p.Identity()
		if _, ok := a.seen[id]; ok {
			continue
		}
		a.seen[id] = struct{}{}
		a.pairs = append(a.pairs, p)
	}
}

// Ranked returns every deduplicated pair ordered ascending by total price,
// ties broken by ascending gap, then destination code for full determinism.
// The full list stays available for collaborators that want more than the
// presentation cap (file exporters, for one).
func (a *Aggregator) Ranked() []domain.MatchedPair {
	a.mu.Lock()
	out := make([]domain.MatchedPair, len(a.pairs))
	copy(out, a.pairs)
	a.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPrice != out[j].TotalPrice {
			return out[i].TotalPrice < out[j].TotalPrice
		}
		if out[i].Gap != out[j].Gap {
			return out[i].Gap < out[j].Gap
		}
		return out[i].Destination < out[j].Destination
	})
	return out
}

// Top returns the ranked list truncated to n. A non-positive n means no cap.
func (a *Aggregator) Top(n int) []domain.MatchedPair {
	ranked := a.Ranked()
	if n > 0 && len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}
