package amadeus

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"flight-meetup-service/internal/domain"
	"flight-meetup-service/internal/platform/obs"
	"flight-meetup-service/internal/ports"
)

type offersResponse struct {
	Data []offerJSON `json:"data"`
}

type offerJSON struct {
	Itineraries      []itineraryJSON       `json:"itineraries"`
	Price            priceJSON             `json:"price"`
	TravelerPricings []travelerPricingJSON `json:"travelerPricings"`
}

type itineraryJSON struct {
	Duration string        `json:"duration"`
	Segments []segmentJSON `json:"segments"`
}

type segmentJSON struct {
	Departure   endpointJSON `json:"departure"`
	Arrival     endpointJSON `json:"arrival"`
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number"`
}

type endpointJSON struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

type priceJSON struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type travelerPricingJSON struct {
	FareDetailsBySegment []struct {
		FareBasis string `json:"fareBasis"`
	} `json:"fareDetailsBySegment"`
}

// SearchOffers queries the flight-offers-search endpoint for one
// origin/destination/date combination and maps the response into strict
// FlightOffer values. Offers that fail parse-and-validate are skipped and
// logged, never returned half-populated.
func (p *Provider) SearchOffers(ctx context.Context, q ports.OfferQuery) (_ []domain.FlightOffer, err error) {
	defer obs.Time(ctx, "amadeus.SearchOffers")(&err)

	if len(q.Origin) != 3 || len(q.Destination) != 3 {
		return nil, fmt.Errorf("search offers: origin and destination must be IATA codes, got %q -> %q", q.Origin, q.Destination)
	}
	if q.DepartureDate == "" {
		return nil, errors.New("search offers: departure date must be set")
	}

	adults := q.Adults
	if adults <= 0 {
		adults = 1
	}
	maxResults := q.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	query := map[string]string{
		"originLocationCode":      strings.ToUpper(q.Origin),
		"destinationLocationCode": strings.ToUpper(q.Destination),
		"departureDate":           q.DepartureDate,
		"adults":                  strconv.Itoa(adults),
		"max":                     strconv.Itoa(maxResults),
	}
	if q.ReturnDate != "" {
		query["returnDate"] = q.ReturnDate
	}

	var decoded offersResponse
	if err := p.getJSON(ctx, "/v2/shopping/flight-offers", query, &decoded); err != nil {
		return nil, fmt.Errorf("search offers %s -> %s: %w", q.Origin, q.Destination, err)
	}

	offers := make([]domain.FlightOffer, 0, len(decoded.Data))
	skipped := 0
	for _, raw := range decoded.Data {
		offer, err := parseOffer(raw, strings.ToUpper(q.Origin))
		if err != nil {
			skipped++
			continue
		}
		offers = append(offers, offer)
	}
	if skipped > 0 {
		log.Printf("op=amadeus.SearchOffers origin=%s destination=%s skipped=%d reason=unparseable",
			q.Origin, q.Destination, skipped)
	}

	return offers, nil
}
