package domain

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Airport is a queryable location identified by its IATA code.
// A code maps to exactly one timezone.
type Airport struct {
	Code     string
	Name     string
	Coords   Coordinates
	Timezone string
}
