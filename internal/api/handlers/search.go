package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"flight-meetup-service/internal/api/dto"
	"flight-meetup-service/internal/domain"
	"flight-meetup-service/internal/ports"
	"flight-meetup-service/internal/services"
)

// SearchHandler exposes the meetup search pipeline over HTTP. Defaults fill
// in every toggle the request body leaves unset, so the wire contract stays
// small while the full option set remains reachable.
type SearchHandler struct {
	Search   *services.MeetupSearch
	Defaults services.SearchRequest
}

func (h *SearchHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SearchRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq, err := h.buildRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.Search.Run(r.Context(), svcReq)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, r, http.StatusBadRequest, verr.Error())
		case errors.Is(err, ports.ErrAuthentication):
			log.Printf("search aborted: %v", err)
			writeError(w, r, http.StatusBadGateway, "flight provider rejected credentials")
		default:
			log.Printf("search failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toSearchResponse(report))
}

func (h *SearchHandler) buildRequest(req dto.SearchRequest) (services.SearchRequest, error) {
	mode, err := domain.ParseTripMode(req.Mode)
	if err != nil {
		return services.SearchRequest{}, err
	}

	out := h.Defaults
	out.Origin1 = req.Origin1
	out.Origin2 = req.Origin2
	out.DepartureDate = req.DepartureDate
	out.ReturnDate = req.ReturnDate
	out.Mode = mode
	out.Traveler1 = toFilters(req.Traveler1)
	out.Traveler2 = toFilters(req.Traveler2)
	out.Destinations = req.Destinations

	if req.ToleranceHours != nil {
		out.Tolerance = time.Duration(*req.ToleranceHours * float64(time.Hour))
	}
	if req.NearbyRadiusKM != nil {
		out.NearbyRadiusKM = *req.NearbyRadiusKM
	}
	if req.ReturnRadiusKM != nil {
		out.ReturnRadiusKM = *req.ReturnRadiusKM
	}
	if req.MaxDestinations != nil {
		out.MaxDestinations = *req.MaxDestinations
	}
	if req.MaxOffersPerQuery != nil {
		out.MaxOffersPerQuery = *req.MaxOffersPerQuery
	}
	if req.TopN != nil {
		out.TopN = *req.TopN
	}
	if req.UseDynamicDestinations != nil {
		out.UseDynamicDestinations = *req.UseDynamicDestinations
	}
	if req.PreValidate != nil {
		out.PreValidate = *req.PreValidate
	}
	if req.EarlyExit != nil {
		out.EarlyExit = *req.EarlyExit
	}

	return out, nil
}

func toFilters(f dto.TravelerFiltersRequest) services.TravelerFilters {
	return services.TravelerFilters{
		MaxPrice:             f.MaxPrice,
		MaxStops:             f.MaxStops,
		MaxDuration:          time.Duration(f.MaxDurationHours * float64(time.Hour)),
		MinDepartureOutbound: f.MinDepartureOutbound,
		MinDepartureReturn:   f.MinDepartureReturn,
	}
}

func toSearchResponse(report *services.SearchReport) dto.SearchResponse {
	res := dto.SearchResponse{
		Pairs: make([]dto.MatchedPairResponse, 0, len(report.Pairs)),
		Stats: dto.SearchStatsResponse{
			DestinationsPlanned:    report.Stats.DestinationsPlanned,
			DestinationsSearched:   report.Stats.DestinationsSearched,
			DestinationsSkipped:    report.Stats.DestinationsSkipped,
			DestinationsWithOffers: report.Stats.DestinationsWithOffers,
			DestinationsMatched:    report.Stats.DestinationsMatched,
			UsedFallbackList:       report.Stats.UsedFallbackList,
		},
	}

	for _, p := range report.Pairs {
		res.Pairs = append(res.Pairs, dto.MatchedPairResponse{
			Destination: p.Destination,
			Traveler1:   toOfferResponse(p.Offer1),
			Traveler2:   toOfferResponse(p.Offer2),
			TotalPrice:  p.TotalPrice,
			Currency:    p.Currency,
			GapMinutes:  int(p.Gap.Minutes()),
		})
	}
	return res
}

func toOfferResponse(o domain.FlightOffer) dto.OfferResponse {
	res := dto.OfferResponse{
		Outbound:     toLegResponse(o.Outbound),
		Price:        o.Price.Amount,
		Currency:     o.Price.Currency,
		FareBasis:    o.FareBasis,
		SearchOrigin: o.SearchOrigin,
	}
	if o.Return != nil {
		leg := toLegResponse(*o.Return)
		res.Return = &leg
	}
	return res
}

func toLegResponse(l domain.Leg) dto.LegResponse {
	segments := make([]dto.SegmentResponse, 0, len(l.Segments))
	for _, s := range l.Segments {
		segments = append(segments, dto.SegmentResponse{
			Carrier:     s.CarrierCode,
			Number:      s.Number,
			Origin:      s.Origin,
			Destination: s.Destination,
			Departure:   s.Departure.UTC().Format(time.RFC3339),
			Arrival:     s.Arrival.UTC().Format(time.RFC3339),
		})
	}
	return dto.LegResponse{
		Origin:       l.Origin,
		Destination:  l.Destination,
		Departure:    l.Departure.UTC().Format(time.RFC3339),
		Arrival:      l.Arrival.UTC().Format(time.RFC3339),
		DurationMins: int(l.Duration.Minutes()),
		Stops:        l.Stops(),
		Segments:     segments,
	}
}
