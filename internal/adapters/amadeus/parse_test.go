package amadeus

import (
	"testing"
	"time"
)

func sampleItinerary(duration, depAt, arrAt string) itineraryJSON {
	return itineraryJSON{
		Duration: duration,
		Segments: []segmentJSON{{
			Departure:   endpointJSON{IataCode: "TLV", At: depAt},
			Arrival:     endpointJSON{IataCode: "ALC", At: arrAt},
			CarrierCode: "IB",
			Number:      "6200",
		}},
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"PT2H30M", 2*time.Hour + 30*time.Minute, false},
		{"PT45M", 45 * time.Minute, false},
		{"PT2H", 2 * time.Hour, false},
		{"P1DT2H", 26 * time.Hour, false},
		{"PT1H30M15S", time.Hour + 30*time.Minute + 15*time.Second, false},
		{"", 0, true},
		{"2H30M", 0, true},
		{"PT2X", 0, true},
		{"PT2H30", 0, true},
	}
	for _, tc := range tests {
		got, err := parseISODuration(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseISODuration(%q) expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseISODuration(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseISODuration(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseInstant(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2026-10-12T08:30:00+03:00", time.Date(2026, 10, 12, 5, 30, 0, 0, time.UTC), false},
		{"2026-10-12T08:30:00Z", time.Date(2026, 10, 12, 8, 30, 0, 0, time.UTC), false},
		{"2026-10-12T08:30:00", time.Date(2026, 10, 12, 8, 30, 0, 0, time.UTC), false},
		{"", time.Time{}, true},
		{"12/10/2026 08:30", time.Time{}, true},
	}
	for _, tc := range tests {
		got, err := parseInstant(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseInstant(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseInstant(%q): %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("parseInstant(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseOffer(t *testing.T) {
	raw := offerJSON{
		Itineraries: []itineraryJSON{
			sampleItinerary("PT4H30M", "2026-10-12T08:00:00", "2026-10-12T12:30:00"),
		},
		Price: priceJSON{Total: "215.40", Currency: "EUR"},
	}
	raw.TravelerPricings = []travelerPricingJSON{{
		FareDetailsBySegment: []struct {
			FareBasis string `json:"fareBasis"`
		}{{FareBasis: "YLOW"}},
	}}

	offer, err := parseOffer(raw, "TLV")
	if err != nil {
		t.Fatalf("parseOffer: %v", err)
	}
	if offer.Price.Amount != 215.40 || offer.Price.Currency != "EUR" {
		t.Errorf("price = %+v", offer.Price)
	}
	if offer.FareBasis != "YLOW" {
		t.Errorf("fare basis = %q", offer.FareBasis)
	}
	if offer.SearchOrigin != "TLV" {
		t.Errorf("search origin = %q", offer.SearchOrigin)
	}
	if offer.Return != nil {
		t.Error("one itinerary must not produce a return leg")
	}
	if offer.Outbound.Duration != 4*time.Hour+30*time.Minute {
		t.Errorf("duration = %v", offer.Outbound.Duration)
	}
}

func TestParseOfferRoundTrip(t *testing.T) {
	raw := offerJSON{
		Itineraries: []itineraryJSON{
			sampleItinerary("PT4H", "2026-10-12T08:00:00", "2026-10-12T12:00:00"),
			sampleItinerary("PT4H", "2026-10-16T18:00:00", "2026-10-16T22:00:00"),
		},
		Price: priceJSON{Total: "340.00", Currency: "USD"},
	}

	offer, err := parseOffer(raw, "TLV")
	if err != nil {
		t.Fatalf("parseOffer: %v", err)
	}
	if offer.Return == nil {
		t.Fatal("two itineraries must produce a return leg")
	}
	if !offer.Return.Departure.Equal(time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC)) {
		t.Errorf("return departure = %v", offer.Return.Departure)
	}
}

func TestParseOfferRejectsMalformed(t *testing.T) {
	valid := offerJSON{
		Itineraries: []itineraryJSON{
			sampleItinerary("PT4H", "2026-10-12T08:00:00", "2026-10-12T12:00:00"),
		},
		Price: priceJSON{Total: "100.00", Currency: "EUR"},
	}

	tests := []struct {
		name   string
		mutate func(*offerJSON)
	}{
		{"no itineraries", func(o *offerJSON) { o.Itineraries = nil }},
		{"no segments", func(o *offerJSON) { o.Itineraries[0].Segments = nil }},
		{"unparseable price", func(o *offerJSON) { o.Price.Total = "free" }},
		{"negative price", func(o *offerJSON) { o.Price.Total = "-3" }},
		{"arrival before departure", func(o *offerJSON) {
			o.Itineraries[0].Segments[0].Arrival.At = "2026-10-12T07:00:00"
		}},
		{"missing airport code", func(o *offerJSON) {
			o.Itineraries[0].Segments[0].Arrival.IataCode = ""
		}},
		{"missing timestamp", func(o *offerJSON) {
			o.Itineraries[0].Segments[0].Departure.At = ""
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := valid
			raw.Itineraries = []itineraryJSON{
				sampleItinerary("PT4H", "2026-10-12T08:00:00", "2026-10-12T12:00:00"),
			}
			tc.mutate(&raw)
			if _, err := parseOffer(raw, "TLV"); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestParseOfferDefaultsCurrency(t *testing.T) {
	raw := offerJSON{
		Itineraries: []itineraryJSON{
			sampleItinerary("PT4H", "2026-10-12T08:00:00", "2026-10-12T12:00:00"),
		},
		Price: priceJSON{Total: "99.00"},
	}
	offer, err := parseOffer(raw, "TLV")
	if err != nil {
		t.Fatalf("parseOffer: %v", err)
	}
	if offer.Price.Currency != "EUR" {
		t.Errorf("currency = %q, want the EUR default", offer.Price.Currency)
	}
}

func TestParseLegDerivesMissingDuration(t *testing.T) {
	raw := sampleItinerary("", "2026-10-12T08:00:00", "2026-10-12T12:30:00")

	leg, err := parseLeg(raw)
	if err != nil {
		t.Fatalf("parseLeg: %v", err)
	}
	if leg.Duration != 4*time.Hour+30*time.Minute {
		t.Errorf("derived duration = %v, want 4h30m", leg.Duration)
	}
}

func TestParseLegMultiSegment(t *testing.T) {
	raw := itineraryJSON{
		Duration: "PT7H",
		Segments: []segmentJSON{
			{
				Departure:   endpointJSON{IataCode: "TLV", At: "2026-10-12T08:00:00"},
				Arrival:     endpointJSON{IataCode: "ATH", At: "2026-10-12T10:00:00"},
				CarrierCode: "A3",
				Number:      "921",
			},
			{
				Departure:   endpointJSON{IataCode: "ATH", At: "2026-10-12T11:30:00"},
				Arrival:     endpointJSON{IataCode: "ALC", At: "2026-10-12T15:00:00"},
				CarrierCode: "A3",
				Number:      "710",
			},
		},
	}

	leg, err := parseLeg(raw)
	if err != nil {
		t.Fatalf("parseLeg: %v", err)
	}
	if leg.Origin != "TLV" || leg.Destination != "ALC" {
		t.Errorf("endpoints = %s -> %s", leg.Origin, leg.Destination)
	}
	if leg.Stops() != 1 {
		t.Errorf("stops = %d, want 1", leg.Stops())
	}
}
