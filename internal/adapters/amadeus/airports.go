package amadeus

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"flight-meetup-service/internal/platform/obs"
)

type nearbyAirportsResponse struct {
	Data []struct {
		IataCode string `json:"iataCode"`
	} `json:"data"`
}

// ListNearbyAirports returns the airports within radiusKM of the given
// airport, resolving its coordinates through the injected locator. The
// input airport always leads the result; an unknown code or disabled
// radius degrades to just the input so fan-out never loses the nominal
// airport.
func (p *Provider) ListNearbyAirports(ctx context.Context, airportCode string, radiusKM int) (_ []string, err error) {
	defer obs.Time(ctx, "amadeus.ListNearbyAirports")(&err)

	code := strings.ToUpper(strings.TrimSpace(airportCode))
	if len(code) != 3 {
		return nil, fmt.Errorf("list nearby airports: %q is not an IATA code", airportCode)
	}
	if radiusKM <= 0 {
		return []string{code}, nil
	}

	airport, ok := p.locator.Locate(code)
	if !ok {
		// No coordinates means no radius query; the nominal airport still
		// gets searched.
		return []string{code}, nil
	}

	query := map[string]string{
		"latitude":  strconv.FormatFloat(airport.Coords.Lat, 'f', 3, 64),
		"longitude": strconv.FormatFloat(airport.Coords.Lon, 'f', 3, 64),
		"radius":    strconv.Itoa(radiusKM),
	}

	var decoded nearbyAirportsResponse
	if err := p.getJSON(ctx, "/v1/reference-data/locations/airports", query, &decoded); err != nil {
		return nil, fmt.Errorf("list nearby airports for %s: %w", code, err)
	}

	out := []string{code}
	seen := map[string]struct{}{code: {}}
	for _, a := range decoded.Data {
		c := strings.ToUpper(strings.TrimSpace(a.IataCode))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}
