package dto

type TravelerFiltersRequest struct {
	MaxPrice             float64 `json:"max_price"`
	MaxStops             int     `json:"max_stops"`
	MaxDurationHours     float64 `json:"max_duration_hours"`
	MinDepartureOutbound string  `json:"min_departure_outbound"`
	MinDepartureReturn   string  `json:"min_departure_return"`
}

type SearchRequest struct {
	Origin1 string `json:"origin1"`
	Origin2 string `json:"origin2"`

	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	Mode          string `json:"mode"`

	// Optional overrides are pointers so an explicit zero is
	// distinguishable from an absent field and still overrides the
	// server-side default.
	ToleranceHours *float64               `json:"tolerance_hours"`
	Traveler1      TravelerFiltersRequest `json:"traveler1"`
	Traveler2      TravelerFiltersRequest `json:"traveler2"`

	NearbyRadiusKM *int `json:"nearby_radius_km"`
	ReturnRadiusKM *int `json:"return_radius_km"`

	Destinations           []string `json:"destinations"`
	UseDynamicDestinations *bool    `json:"use_dynamic_destinations"`
	MaxDestinations        *int     `json:"max_destinations"`
	PreValidate            *bool    `json:"pre_validate"`
	EarlyExit              *bool    `json:"early_exit"`

	MaxOffersPerQuery *int `json:"max_offers_per_query"`
	TopN              *int `json:"top_n"`
}

type SegmentResponse struct {
	Carrier     string `json:"carrier"`
	Number      string `json:"number"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
}

type LegResponse struct {
	Origin        string            `json:"origin"`
	Destination   string            `json:"destination"`
	Departure     string            `json:"departure"`
	Arrival       string            `json:"arrival"`
	DurationMins  int               `json:"duration_minutes"`
	Stops         int               `json:"stops"`
	Segments      []SegmentResponse `json:"segments"`
}

type OfferResponse struct {
	Outbound     LegResponse  `json:"outbound"`
	Return       *LegResponse `json:"return,omitempty"`
	Price        float64      `json:"price"`
	Currency     string       `json:"currency"`
	FareBasis    string       `json:"fare_basis,omitempty"`
	SearchOrigin string       `json:"search_origin"`
}

type MatchedPairResponse struct {
	Destination string        `json:"destination"`
	Traveler1   OfferResponse `json:"traveler1"`
	Traveler2   OfferResponse `json:"traveler2"`
	TotalPrice  float64       `json:"total_price"`
	Currency    string        `json:"currency"`
	GapMinutes  int           `json:"gap_minutes"`
}

type SearchStatsResponse struct {
	DestinationsPlanned    int  `json:"destinations_planned"`
	DestinationsSearched   int  `json:"destinations_searched"`
	DestinationsSkipped    int  `json:"destinations_skipped"`
	DestinationsWithOffers int  `json:"destinations_with_offers"`
	DestinationsMatched    int  `json:"destinations_matched"`
	UsedFallbackList       bool `json:"used_fallback_list"`
}

type SearchResponse struct {
	Pairs []MatchedPairResponse `json:"pairs"`
	Stats SearchStatsResponse   `json:"stats"`
}
