package services

import (
	"time"

	"flight-meetup-service/internal/domain"
)

// testLeg builds a leg with the requested segment count whose identity is
// fully determined by carrier, number and times.
func testLeg(origin, destination string, departure time.Time, duration time.Duration, segments int) domain.Leg {
	leg := domain.Leg{
		Origin:      origin,
		Destination: destination,
		Departure:   departure,
		Arrival:     departure.Add(duration),
		Duration:    duration,
	}
	step := duration / time.Duration(segments)
	for i := 0; i < segments; i++ {
		leg.Segments = append(leg.Segments, domain.Segment{
			CarrierCode: "IB",
			Number:      "620" + string(rune('0'+i)),
			Origin:      origin,
			Destination: destination,
			Departure:   departure.Add(time.Duration(i) * step),
			Arrival:     departure.Add(time.Duration(i+1) * step),
		})
	}
	return leg
}

func testOffer(origin, destination string, departure time.Time, duration time.Duration, price float64) domain.FlightOffer {
	return domain.FlightOffer{
		Outbound:     testLeg(origin, destination, departure, duration, 1),
		Price:        domain.Price{Amount: price, Currency: "EUR"},
		SearchOrigin: origin,
	}
}

func day(hour, minute int) time.Time {
	return time.Date(2026, 10, 12, hour, minute, 0, 0, time.UTC)
}
