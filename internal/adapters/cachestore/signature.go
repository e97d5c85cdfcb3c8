package cachestore

import (
	"fmt"
	"strings"

	"flight-meetup-service/internal/domain"
)

// Request signatures are deterministic fingerprints of every parameter that
// affects the cached payload. Traveler filters (stops, duration, departure
// floors) are deliberately absent from offer signatures: the raw merged
// offer set is the cached unit and is re-filtered on every read, so filters
// may tighten between writes and reads without invalidating the cache.

// offers:{origin}:{dest}:{dep}:{ret}:mode={m}:adults={n}:max={n}:radius={km}:retradius={km}
func OfferSignature(
	origin, destination, departureDate, returnDate string,
	mode domain.TripMode,
	adults, maxResults, radiusKM, returnRadiusKM int,
) string {
	ret := strings.TrimSpace(returnDate)
	if ret == "" {
		ret = "none"
	}
	return fmt.Sprintf(
		"offers:%s:%s:%s:%s:mode=%s:adults=%d:max=%d:radius=%d:retradius=%d",
		code(origin), code(destination),
		strings.TrimSpace(departureDate), ret,
		mode, adults, maxResults, radiusKM, returnRadiusKM,
	)
}

// destinations:{origin1}:{origin2}:mode={m}:nonstop={bool}
func DiscoverySignature(origin1, origin2 string, mode domain.TripMode, nonStop bool) string {
	return fmt.Sprintf(
		"destinations:%s:%s:mode=%s:nonstop=%t",
		code(origin1), code(origin2), mode, nonStop,
	)
}

// routes:{origin}
func DirectRoutesSignature(origin string) string {
	return "routes:" + code(origin)
}

func code(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
