package amadeus

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"flight-meetup-service/internal/platform/obs"
	"flight-meetup-service/internal/ports"
)

type destinationsResponse struct {
	Data []struct {
		Destination string `json:"destination"`
	} `json:"data"`
}

// DiscoverDestinations queries the flight-destinations (inspiration search)
// endpoint for codes reachable from origin within the date window. The
// endpoint serves cached provider data; an empty list is a normal outcome
// and the caller decides how to degrade.
func (p *Provider) DiscoverDestinations(
	ctx context.Context,
	origin string,
	window ports.DateRange,
	nonStop bool,
) (_ []string, err error) {
	defer obs.Time(ctx, "amadeus.DiscoverDestinations")(&err)

	if len(origin) != 3 {
		return nil, fmt.Errorf("discover destinations: origin must be an IATA code, got %q", origin)
	}

	query := map[string]string{
		"origin": strings.ToUpper(origin),
		"viewBy": "DESTINATION",
	}
	if window.Start != "" {
		departureDate := window.Start
		if window.End != "" {
			departureDate += "," + window.End
		}
		query["departureDate"] = departureDate
	}
	if nonStop {
		query["nonStop"] = strconv.FormatBool(nonStop)
	}

	var decoded destinationsResponse
	if err := p.getJSON(ctx, "/v1/shopping/flight-destinations", query, &decoded); err != nil {
		return nil, fmt.Errorf("discover destinations from %s: %w", origin, err)
	}

	codes := make([]string, 0, len(decoded.Data))
	seen := make(map[string]struct{}, len(decoded.Data))
	for _, d := range decoded.Data {
		code := strings.ToUpper(strings.TrimSpace(d.Destination))
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	return codes, nil
}
