package cachestore

import (
	"testing"

	"flight-meetup-service/internal/domain"
)

func TestOfferSignatureDeterministic(t *testing.T) {
	a := OfferSignature("tlv", "ALC", "2026-10-12", "2026-10-16", domain.TripRoundTrip, 1, 30, 0, 0)
	b := OfferSignature(" TLV ", "alc", "2026-10-12", "2026-10-16", domain.TripRoundTrip, 1, 30, 0, 0)

	if a != b {
		t.Errorf("case and whitespace must not change the signature: %q vs %q", a, b)
	}
}

func TestOfferSignatureVariesByQueryShape(t *testing.T) {
	base := OfferSignature("TLV", "ALC", "2026-10-12", "2026-10-16", domain.TripRoundTrip, 1, 30, 0, 0)

	variants := []string{
		OfferSignature("TLV", "BCN", "2026-10-12", "2026-10-16", domain.TripRoundTrip, 1, 30, 0, 0),
		OfferSignature("TLV", "ALC", "2026-10-13", "2026-10-16", domain.TripRoundTrip, 1, 30, 0, 0),
		OfferSignature("TLV", "ALC", "2026-10-12", "2026-10-16", domain.TripOneWayReturn, 1, 30, 0, 0),
		OfferSignature("TLV", "ALC", "2026-10-12", "2026-10-16", domain.TripRoundTrip, 2, 30, 0, 0),
		OfferSignature("TLV", "ALC", "2026-10-12", "2026-10-16", domain.TripRoundTrip, 1, 50, 0, 0),
		OfferSignature("TLV", "ALC", "2026-10-12", "2026-10-16", domain.TripRoundTrip, 1, 30, 100, 0),
		OfferSignature("TLV", "ALC", "2026-10-12", "2026-10-16", domain.TripRoundTrip, 1, 30, 0, 100),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collided with the base signature %q", i, base)
		}
	}
}

func TestOfferSignatureEmptyReturnDate(t *testing.T) {
	oneWay := OfferSignature("TLV", "ALC", "2026-10-12", "", domain.TripOneWayOutbound, 1, 30, 0, 0)
	roundTrip := OfferSignature("TLV", "ALC", "2026-10-12", "2026-10-16", domain.TripOneWayOutbound, 1, 30, 0, 0)

	if oneWay == roundTrip {
		t.Error("missing return date must produce a distinct signature")
	}
}

func TestDiscoverySignature(t *testing.T) {
	a := DiscoverySignature("tlv", "bva", domain.TripRoundTrip, true)
	b := DiscoverySignature("TLV", "BVA", domain.TripRoundTrip, true)
	if a != b {
		t.Errorf("case must not change the signature: %q vs %q", a, b)
	}

	if a == DiscoverySignature("TLV", "BVA", domain.TripRoundTrip, false) {
		t.Error("nonstop flag must be part of the signature")
	}
	if a == DiscoverySignature("TLV", "BVA", domain.TripOneWayOutbound, true) {
		t.Error("trip mode must be part of the signature")
	}
}

func TestDirectRoutesSignature(t *testing.T) {
	if got := DirectRoutesSignature(" tlv "); got != "routes:TLV" {
		t.Errorf("DirectRoutesSignature = %q, want routes:TLV", got)
	}
}
