package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"flight-meetup-service/internal/adapters/cachestore"
	"flight-meetup-service/internal/ports"
)

// RouteValidator is a cheap existence check for an origin->destination
// route, backed by one coarse direct-routes listing per origin. It exists
// purely to skip the expensive offer search for routes that provably do not
// exist; any doubt fails open so the offer search stays authoritative.
type RouteValidator struct {
	Provider ports.FlightProvider
	Cache    ports.CacheStore
	TTL      time.Duration
	Enabled  bool
}

// Exists reports whether a direct route origin->destination is known.
// Disabled validation, a failed listing, or an empty listing all report
// true: dropping a viable destination costs more than one wasted search.
func (v *RouteValidator) Exists(ctx context.Context, origin, destination string) bool {
	if !v.Enabled {
		return true
	}

	origin = strings.ToUpper(strings.TrimSpace(origin))
	destination = strings.ToUpper(strings.TrimSpace(destination))

	routes, ok := v.routesFor(ctx, origin)
	if !ok || len(routes) == 0 {
		return true
	}

	for _, r := range routes {
		if r == destination {
			return true
		}
	}
	return false
}

func (v *RouteValidator) routesFor(ctx context.Context, origin string) ([]string, bool) {
	signature := cachestore.DirectRoutesSignature(origin)

	if v.Cache != nil {
		payload, ok, err := v.Cache.Get(ctx, signature)
		if err != nil {
			log.Printf("op=prevalidate cache_get_failed origin=%s err=%v", origin, err)
		} else if ok {
			var routes []string
			if err := json.Unmarshal(payload, &routes); err == nil {
				return routes, true
			}
			log.Printf("op=prevalidate cache_decode_failed origin=%s err=%v", origin, err)
		}
	}

	routes, err := v.Provider.ListDirectRoutes(ctx, origin)
	if err != nil {
		log.Printf("op=prevalidate list_routes_failed origin=%s err=%v fail_open=true", origin, err)
		return nil, false
	}

	if v.Cache != nil && len(routes) > 0 {
		payload, err := json.Marshal(routes)
		if err == nil {
			if err := v.Cache.Put(ctx, signature, payload, v.TTL); err != nil {
				log.Printf("op=prevalidate cache_put_failed origin=%s err=%v", origin, err)
			}
		}
	}

	return routes, true
}
