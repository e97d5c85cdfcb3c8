package amadeus

import (
	"context"
	"fmt"
	"strings"

	"flight-meetup-service/internal/platform/obs"
)

type directRoutesResponse struct {
	Data []struct {
		IataCode string `json:"iataCode"`
	} `json:"data"`
}

// ListDirectRoutes returns the destinations with direct connectivity from
// origin, via the airport direct-destinations endpoint. One coarse call per
// origin; the pre-validator caches the result next to discovery data.
func (p *Provider) ListDirectRoutes(ctx context.Context, origin string) (_ []string, err error) {
	defer obs.Time(ctx, "amadeus.ListDirectRoutes")(&err)

	if len(origin) != 3 {
		return nil, fmt.Errorf("list direct routes: origin must be an IATA code, got %q", origin)
	}

	query := map[string]string{
		"departureAirportCode": strings.ToUpper(origin),
	}

	var decoded directRoutesResponse
	if err := p.getJSON(ctx, "/v1/airport/direct-destinations", query, &decoded); err != nil {
		return nil, fmt.Errorf("list direct routes from %s: %w", origin, err)
	}

	codes := make([]string, 0, len(decoded.Data))
	for _, d := range decoded.Data {
		code := strings.ToUpper(strings.TrimSpace(d.IataCode))
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes, nil
}
