package amadeus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"flight-meetup-service/internal/domain"
)

func decodeJSON(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}

// parseOffer maps one loosely-typed provider offer into a strict
// domain.FlightOffer. Field presence varies by route and environment, so
// every required field is checked; a failure rejects the whole offer.
func parseOffer(raw offerJSON, searchOrigin string) (domain.FlightOffer, error) {
	if len(raw.Itineraries) == 0 {
		return domain.FlightOffer{}, errors.New("offer has no itineraries")
	}

	outbound, err := parseLeg(raw.Itineraries[0])
	if err != nil {
		return domain.FlightOffer{}, fmt.Errorf("outbound itinerary: %w", err)
	}

	var ret *domain.Leg
	if len(raw.Itineraries) > 1 {
		leg, err := parseLeg(raw.Itineraries[1])
		if err != nil {
			return domain.FlightOffer{}, fmt.Errorf("return itinerary: %w", err)
		}
		ret = &leg
	}

	amount, err := strconv.ParseFloat(raw.Price.Total, 64)
	if err != nil {
		return domain.FlightOffer{}, fmt.Errorf("parse price %q: %w", raw.Price.Total, err)
	}
	if amount < 0 {
		return domain.FlightOffer{}, fmt.Errorf("negative price %v", amount)
	}
	currency := raw.Price.Currency
	if currency == "" {
		currency = "EUR"
	}

	fareBasis := ""
	if len(raw.TravelerPricings) > 0 && len(raw.TravelerPricings[0].FareDetailsBySegment) > 0 {
		fareBasis = raw.TravelerPricings[0].FareDetailsBySegment[0].FareBasis
	}

	return domain.FlightOffer{
		Outbound:     outbound,
		Return:       ret,
		Price:        domain.Price{Amount: amount, Currency: currency},
		FareBasis:    fareBasis,
		SearchOrigin: searchOrigin,
	}, nil
}

func parseLeg(raw itineraryJSON) (domain.Leg, error) {
	if len(raw.Segments) == 0 {
		return domain.Leg{}, errors.New("itinerary has no segments")
	}

	segments := make([]domain.Segment, 0, len(raw.Segments))
	for i, s := range raw.Segments {
		dep, err := parseInstant(s.Departure.At)
		if err != nil {
			return domain.Leg{}, fmt.Errorf("segment %d departure: %w", i, err)
		}
		arr, err := parseInstant(s.Arrival.At)
		if err != nil {
			return domain.Leg{}, fmt.Errorf("segment %d arrival: %w", i, err)
		}
		if s.Departure.IataCode == "" || s.Arrival.IataCode == "" {
			return domain.Leg{}, fmt.Errorf("segment %d is missing airport codes", i)
		}

		segments = append(segments, domain.Segment{
			CarrierCode: s.CarrierCode,
			Number:      s.Number,
			Origin:      s.Departure.IataCode,
			Destination: s.Arrival.IataCode,
			Departure:   dep,
			Arrival:     arr,
		})
	}

	first := segments[0]
	last := segments[len(segments)-1]
	if !last.Arrival.After(first.Departure) {
		return domain.Leg{}, fmt.Errorf("arrival %v is not after departure %v", last.Arrival, first.Departure)
	}

	duration, err := parseISODuration(raw.Duration)
	if err != nil {
		// Some routes omit the itinerary duration; derive it from the
		// segment endpoints instead of rejecting the offer.
		duration = last.Arrival.Sub(first.Departure)
	}

	return domain.Leg{
		Origin:      first.Origin,
		Destination: last.Destination,
		Departure:   first.Departure,
		Arrival:     last.Arrival,
		Duration:    duration,
		Segments:    segments,
	}, nil
}

// parseInstant accepts the provider's timestamp variants: RFC 3339 with an
// offset, or a zone-less local form that is normalized to UTC.
func parseInstant(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// parseISODuration parses the ISO-8601 duration subset the provider emits
// (PnDTnHnMnS, e.g. "PT2H30M").
func parseISODuration(s string) (time.Duration, error) {
	if s == "" || s[0] != 'P' {
		return 0, fmt.Errorf("invalid ISO duration %q", s)
	}

	var total time.Duration
	inTime := false
	num := strings.Builder{}

	for _, r := range s[1:] {
		switch {
		case r == 'T':
			inTime = true
		case r >= '0' && r <= '9' || r == '.':
			num.WriteRune(r)
		default:
			v, err := strconv.ParseFloat(num.String(), 64)
			if err != nil {
				return 0, fmt.Errorf("invalid ISO duration %q", s)
			}
			num.Reset()

			switch {
			case r == 'D' && !inTime:
				total += time.Duration(v * 24 * float64(time.Hour))
			case r == 'H' && inTime:
				total += time.Duration(v * float64(time.Hour))
			case r == 'M' && inTime:
				total += time.Duration(v * float64(time.Minute))
			case r == 'S' && inTime:
				total += time.Duration(v * float64(time.Second))
			default:
				return 0, fmt.Errorf("invalid ISO duration %q", s)
			}
		}
	}
	if num.Len() > 0 {
		return 0, fmt.Errorf("invalid ISO duration %q", s)
	}

	return total, nil
}
