package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"flight-meetup-service/internal/adapters/cachestore"
	"flight-meetup-service/internal/domain"
	"flight-meetup-service/internal/ports"
)

// Curated fallback destinations used when dynamic discovery fails or comes
// back empty for either origin. Ordered by likelihood of connectivity from
// both origins; the offer search validates actual reachability.
var DefaultFallbackDestinations = []string{
	"LON", "PAR", "MAD", "BCN", "AMS", "BER", "ROM", "FCO",
	"VIE", "PRG", "ATH", "LIS", "DUB", "CPH", "STO", "OSL",
	"MIL", "VEN", "NAP", "PMO", "AGP", "SEV", "ZUR", "BRU",
	"WAR", "BUD", "ZAG", "SPL", "DBV",
	"HEL", "REK", "OPO",
}

// Discoverer produces the candidate destination set common to both origins.
// Dynamic discovery is a cheap, cached hint; its failure is never fatal to
// a run.
type Discoverer struct {
	Provider ports.FlightProvider
	Cache    ports.CacheStore
	// TTL for resolved destination sets. Route existence churns far slower
	// than prices, so this is multi-day.
	TTL      time.Duration
	Fallback []string
}

type cachedDestinations struct {
	Codes  []string               `json:"codes"`
	Source domain.DiscoverySource `json:"source"`
}

// Discover resolves the ordered destination candidates for one origin pair.
// fellBack reports that dynamic discovery degraded to the curated list, so
// callers can surface the degradation instead of hiding it.
func (d *Discoverer) Discover(ctx context.Context, req SearchRequest) (candidates []domain.DestinationCandidate, fellBack bool, err error) {
	// An explicit list skips discovery and caching entirely.
	if len(req.Destinations) > 0 {
		return makeCandidates(truncate(normalizeCodes(req.Destinations), req.MaxDestinations), domain.SourceStatic), false, nil
	}

	if !req.UseDynamicDestinations {
		return d.fallbackCandidates(req.MaxDestinations), false, nil
	}

	signature := cachestore.DiscoverySignature(req.Origin1, req.Origin2, req.Mode, d.nonStopOnly(req))
	if cached, ok := d.cacheGet(ctx, signature); ok {
		return makeCandidates(truncate(cached.Codes, req.MaxDestinations), cached.Source), cached.Source == domain.SourceStatic, nil
	}

	window := ports.DateRange{Start: req.DepartureDate, End: req.ReturnDate}
	nonStop := d.nonStopOnly(req)

	dest1, err1 := d.Provider.DiscoverDestinations(ctx, req.Origin1, window, nonStop)
	if err1 != nil || len(dest1) == 0 {
		// Not-found, auth failure and empty results all degrade the same
		// way here: the offer search is the authority on reachability.
		log.Printf("op=discover origin=%s fallback=static reason=%v results=%d", req.Origin1, err1, len(dest1))
		return d.resolveFallback(ctx, signature, req.MaxDestinations), true, nil
	}

	dest2, err2 := d.Provider.DiscoverDestinations(ctx, req.Origin2, window, nonStop)
	if err2 != nil || len(dest2) == 0 {
		log.Printf("op=discover origin=%s fallback=static reason=%v results=%d", req.Origin2, err2, len(dest2))
		return d.resolveFallback(ctx, signature, req.MaxDestinations), true, nil
	}

	// Intersection ordered by first appearance in origin-1's list keeps
	// repeated runs reproducible.
	common := intersect(dest1, dest2)
	if len(common) == 0 {
		// Both lists non-empty but disjoint: the provider's discovery data
		// is incomplete more often than routes genuinely never meet, so
		// widen to the union and let the offer search decide.
		log.Printf("op=discover origins=%s,%s intersection=0 using=union", req.Origin1, req.Origin2)
		common = union(dest1, dest2)
	}

	d.cachePut(ctx, signature, cachedDestinations{Codes: common, Source: domain.SourceDynamic})
	return makeCandidates(truncate(common, req.MaxDestinations), domain.SourceDynamic), false, nil
}

// nonStopOnly requests nonstop-only discovery when both travelers cap stops
// at zero; destinations needing a connection could never match anyway.
func (d *Discoverer) nonStopOnly(req SearchRequest) bool {
	return req.Traveler1.MaxStops == 0 && req.Traveler2.MaxStops == 0
}

func (d *Discoverer) fallback() []string {
	if len(d.Fallback) > 0 {
		return d.Fallback
	}
	return DefaultFallbackDestinations
}

func (d *Discoverer) fallbackCandidates(max int) []domain.DestinationCandidate {
	return makeCandidates(truncate(normalizeCodes(d.fallback()), max), domain.SourceStatic)
}

// resolveFallback caches the static resolution too: a provider that cannot
// discover for this origin pair today will not suddenly manage it on the
// next run minutes later.
func (d *Discoverer) resolveFallback(ctx context.Context, signature string, max int) []domain.DestinationCandidate {
	codes := normalizeCodes(d.fallback())
	d.cachePut(ctx, signature, cachedDestinations{Codes: codes, Source: domain.SourceStatic})
	return makeCandidates(truncate(codes, max), domain.SourceStatic)
}

func (d *Discoverer) cacheGet(ctx context.Context, signature string) (cachedDestinations, bool) {
	if d.Cache == nil {
		return cachedDestinations{}, false
	}
	payload, ok, err := d.Cache.Get(ctx, signature)
	if err != nil {
		log.Printf("op=discover cache_get_failed signature=%s err=%v", signature, err)
		return cachedDestinations{}, false
	}
	if !ok {
		return cachedDestinations{}, false
	}
	var cached cachedDestinations
	if err := json.Unmarshal(payload, &cached); err != nil {
		log.Printf("op=discover cache_decode_failed signature=%s err=%v", signature, err)
		return cachedDestinations{}, false
	}
	return cached, true
}

func (d *Discoverer) cachePut(ctx context.Context, signature string, value cachedDestinations) {
	if d.Cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("op=discover cache_encode_failed signature=%s err=%v", signature, err)
		return
	}
	if err := d.Cache.Put(ctx, signature, payload, d.TTL); err != nil {
		log.Printf("op=discover cache_put_failed signature=%s err=%v", signature, err)
	}
}

func makeCandidates(codes []string, source domain.DiscoverySource) []domain.DestinationCandidate {
	out := make([]domain.DestinationCandidate, 0, len(codes))
	for _, c := range codes {
		out = append(out, domain.DestinationCandidate{Code: c, Source: source})
	}
	return out
}

func normalizeCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func intersect(first, second []string) []string {
	inSecond := make(map[string]struct{}, len(second))
	for _, c := range second {
		inSecond[c] = struct{}{}
	}
	out := make([]string, 0, len(first))
	for _, c := range first {
		if _, ok := inSecond[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func union(first, second []string) []string {
	seen := make(map[string]struct{}, len(first)+len(second))
	out := make([]string, 0, len(first)+len(second))
	for _, c := range append(append([]string{}, first...), second...) {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// truncate bounds the candidate count to cap downstream provider usage.
// A non-positive max means unbounded.
func truncate(codes []string, max int) []string {
	if max > 0 && len(codes) > max {
		return codes[:max]
	}
	return codes
}
