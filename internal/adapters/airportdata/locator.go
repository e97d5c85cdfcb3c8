package airportdata

import (
	"strings"

	"flight-meetup-service/internal/domain"
)

// StaticLocator serves airport metadata from a fixed in-process table.
// It implements ports.AirportLocator as a pure data lookup; coverage is the
// origin and fallback-destination set the searcher works with, not a full
// worldwide registry.
type StaticLocator struct {
	byCode map[string]domain.Airport
}

func NewStaticLocator() *StaticLocator {
	l := &StaticLocator{byCode: make(map[string]domain.Airport, len(airports))}
	for _, a := range airports {
		l.byCode[a.Code] = a
	}
	return l
}

func (l *StaticLocator) Locate(code string) (domain.Airport, bool) {
	a, ok := l.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}

var airports = []domain.Airport{
	{Code: "TLV", Name: "Tel Aviv", Coords: domain.Coordinates{Lon: 34.886, Lat: 32.011}, Timezone: "Asia/Jerusalem"},
	{Code: "ALC", Name: "Alicante", Coords: domain.Coordinates{Lon: -0.558, Lat: 38.282}, Timezone: "Europe/Madrid"},
	{Code: "LON", Name: "London", Coords: domain.Coordinates{Lon: -0.454, Lat: 51.470}, Timezone: "Europe/London"},
	{Code: "PAR", Name: "Paris", Coords: domain.Coordinates{Lon: 2.548, Lat: 49.010}, Timezone: "Europe/Paris"},
	{Code: "MAD", Name: "Madrid", Coords: domain.Coordinates{Lon: -3.567, Lat: 40.494}, Timezone: "Europe/Madrid"},
	{Code: "BCN", Name: "Barcelona", Coords: domain.Coordinates{Lon: 2.078, Lat: 41.297}, Timezone: "Europe/Madrid"},
	{Code: "AMS", Name: "Amsterdam", Coords: domain.Coordinates{Lon: 4.764, Lat: 52.308}, Timezone: "Europe/Amsterdam"},
	{Code: "BER", Name: "Berlin", Coords: domain.Coordinates{Lon: 13.501, Lat: 52.362}, Timezone: "Europe/Berlin"},
	{Code: "MUC", Name: "Munich", Coords: domain.Coordinates{Lon: 11.786, Lat: 48.354}, Timezone: "Europe/Berlin"},
	{Code: "ROM", Name: "Rome", Coords: domain.Coordinates{Lon: 12.251, Lat: 41.800}, Timezone: "Europe/Rome"},
	{Code: "FCO", Name: "Rome Fiumicino", Coords: domain.Coordinates{Lon: 12.251, Lat: 41.800}, Timezone: "Europe/Rome"},
	{Code: "MIL", Name: "Milan", Coords: domain.Coordinates{Lon: 8.728, Lat: 45.630}, Timezone: "Europe/Rome"},
	{Code: "VEN", Name: "Venice", Coords: domain.Coordinates{Lon: 12.352, Lat: 45.505}, Timezone: "Europe/Rome"},
	{Code: "NAP", Name: "Naples", Coords: domain.Coordinates{Lon: 14.291, Lat: 40.886}, Timezone: "Europe/Rome"},
	{Code: "PMO", Name: "Palermo", Coords: domain.Coordinates{Lon: 13.091, Lat: 38.176}, Timezone: "Europe/Rome"},
	{Code: "VIE", Name: "Vienna", Coords: domain.Coordinates{Lon: 16.570, Lat: 48.110}, Timezone: "Europe/Vienna"},
	{Code: "PRG", Name: "Prague", Coords: domain.Coordinates{Lon: 14.260, Lat: 50.101}, Timezone: "Europe/Prague"},
	{Code: "ATH", Name: "Athens", Coords: domain.Coordinates{Lon: 23.944, Lat: 37.936}, Timezone: "Europe/Athens"},
	{Code: "LIS", Name: "Lisbon", Coords: domain.Coordinates{Lon: -9.134, Lat: 38.774}, Timezone: "Europe/Lisbon"},
	{Code: "OPO", Name: "Porto", Coords: domain.Coordinates{Lon: -8.681, Lat: 41.248}, Timezone: "Europe/Lisbon"},
	{Code: "DUB", Name: "Dublin", Coords: domain.Coordinates{Lon: -6.270, Lat: 53.421}, Timezone: "Europe/Dublin"},
	{Code: "CPH", Name: "Copenhagen", Coords: domain.Coordinates{Lon: 12.656, Lat: 55.618}, Timezone: "Europe/Copenhagen"},
	{Code: "STO", Name: "Stockholm", Coords: domain.Coordinates{Lon: 17.919, Lat: 59.652}, Timezone: "Europe/Stockholm"},
	{Code: "OSL", Name: "Oslo", Coords: domain.Coordinates{Lon: 11.100, Lat: 60.194}, Timezone: "Europe/Oslo"},
	{Code: "HEL", Name: "Helsinki", Coords: domain.Coordinates{Lon: 24.963, Lat: 60.317}, Timezone: "Europe/Helsinki"},
	{Code: "REK", Name: "Reykjavik", Coords: domain.Coordinates{Lon: -22.606, Lat: 63.985}, Timezone: "Atlantic/Reykjavik"},
	{Code: "AGP", Name: "Malaga", Coords: domain.Coordinates{Lon: -4.499, Lat: 36.675}, Timezone: "Europe/Madrid"},
	{Code: "SEV", Name: "Seville", Coords: domain.Coordinates{Lon: -5.893, Lat: 37.418}, Timezone: "Europe/Madrid"},
	{Code: "ZUR", Name: "Zurich", Coords: domain.Coordinates{Lon: 8.549, Lat: 47.465}, Timezone: "Europe/Zurich"},
	{Code: "BRU", Name: "Brussels", Coords: domain.Coordinates{Lon: 4.484, Lat: 50.901}, Timezone: "Europe/Brussels"},
	{Code: "WAR", Name: "Warsaw", Coords: domain.Coordinates{Lon: 20.967, Lat: 52.166}, Timezone: "Europe/Warsaw"},
	{Code: "BUD", Name: "Budapest", Coords: domain.Coordinates{Lon: 19.256, Lat: 47.437}, Timezone: "Europe/Budapest"},
	{Code: "ZAG", Name: "Zagreb", Coords: domain.Coordinates{Lon: 16.069, Lat: 45.743}, Timezone: "Europe/Zagreb"},
	{Code: "SPL", Name: "Split", Coords: domain.Coordinates{Lon: 16.298, Lat: 43.539}, Timezone: "Europe/Zagreb"},
	{Code: "DBV", Name: "Dubrovnik", Coords: domain.Coordinates{Lon: 18.268, Lat: 42.561}, Timezone: "Europe/Zagreb"},
}
