package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"flight-meetup-service/internal/domain"

	"golang.org/x/sync/errgroup"
)

// Run statistics reported with every search so degradation (fallbacks,
// skipped or empty destinations) is visible to the caller even though it is
// never fatal.
type SearchStats struct {
	DestinationsPlanned    int
	DestinationsSearched   int
	DestinationsSkipped    int // rejected by route pre-validation
	DestinationsWithOffers int
	DestinationsMatched    int
	UsedFallbackList       bool
}

// SearchReport is the produced interface of a run: the full ranked pair
// list plus stats. Rendering belongs to external collaborators.
type SearchReport struct {
	Pairs []domain.MatchedPair
	Stats SearchStats
}

// MeetupSearch orchestrates the pipeline: discovery, per-destination
// pre-validation, traveler searches, matching and aggregation.
type MeetupSearch struct {
	Discoverer *Discoverer
	Validator  *RouteValidator
	Retriever  *OfferRetriever

	// CallTimeout bounds each traveler search; a timed-out call degrades
	// to an empty result like any other provider error.
	CallTimeout time.Duration
}

// Run evaluates every candidate destination concurrently under a bounded
// worker pool. Within one destination the two traveler queries stay
// strictly sequential: with early exit enabled, traveler 2's query must not
// be issued until traveler 1's result is known. Per-destination failures
// are isolated; only authentication failures abort the run, cancelling all
// in-flight and queued work.
func (s *MeetupSearch) Run(ctx context.Context, req SearchRequest) (*SearchReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	candidates, fellBack, err := s.Discoverer.Discover(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search meetups: discover destinations: %w", err)
	}

	agg := NewAggregator()
	stats := SearchStats{
		DestinationsPlanned: len(candidates),
		UsedFallbackList:    fellBack,
	}
	var statsMu sync.Mutex

	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, cand := range candidates {
		cand := cand
		g.Go(func() error {
			outcome, err := s.searchDestination(gctx, req, cand, agg)
			if err != nil {
				return err
			}

			statsMu.Lock()
			switch outcome {
			case destinationSkipped:
				stats.DestinationsSkipped++
			case destinationEmpty:
				stats.DestinationsSearched++
			case destinationHadOffers:
				stats.DestinationsSearched++
				stats.DestinationsWithOffers++
			case destinationMatched:
				stats.DestinationsSearched++
				stats.DestinationsWithOffers++
				stats.DestinationsMatched++
			}
			statsMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search meetups: %w", err)
	}

	report := &SearchReport{
		Pairs: agg.Top(req.TopN),
		Stats: stats,
	}

	log.Printf(
		"op=search planned=%d searched=%d skipped=%d with_offers=%d matched=%d pairs=%d fallback=%t",
		stats.DestinationsPlanned, stats.DestinationsSearched, stats.DestinationsSkipped,
		stats.DestinationsWithOffers, stats.DestinationsMatched, len(report.Pairs), fellBack,
	)

	return report, nil
}

type destinationOutcome int

const (
	destinationSkipped destinationOutcome = iota
	destinationEmpty
	destinationHadOffers
	destinationMatched
)

func (s *MeetupSearch) searchDestination(
	ctx context.Context,
	req SearchRequest,
	cand domain.DestinationCandidate,
	agg *Aggregator,
) (destinationOutcome, error) {
	if req.PreValidate && s.Validator != nil {
		if !s.Validator.Exists(ctx, req.Origin1, cand.Code) || !s.Validator.Exists(ctx, req.Origin2, cand.Code) {
			log.Printf("op=search destination=%s skipped=prevalidation", cand.Code)
			return destinationSkipped, nil
		}
	}

	offers1, err := s.searchLeg(ctx, req, req.Origin1, cand.Code, req.Traveler1)
	if err != nil {
		return 0, err
	}

	if len(offers1) == 0 && req.EarlyExit {
		// The dominant cost-saving rule: no viable route for traveler 1
		// makes traveler 2's search moot.
		log.Printf("op=search destination=%s early_exit=true", cand.Code)
		return destinationEmpty, nil
	}

	offers2, err := s.searchLeg(ctx, req, req.Origin2, cand.Code, req.Traveler2)
	if err != nil {
		return 0, err
	}

	if len(offers1) == 0 || len(offers2) == 0 {
		if len(offers1) > 0 || len(offers2) > 0 {
			return destinationHadOffers, nil
		}
		return destinationEmpty, nil
	}

	pairs := MatchOffers(cand.Code, offers1, offers2, req.Traveler1, req.Traveler2, req.Tolerance, req.Mode)
	if len(pairs) == 0 {
		return destinationHadOffers, nil
	}

	agg.Add(pairs...)
	return destinationMatched, nil
}

func (s *MeetupSearch) searchLeg(
	ctx context.Context,
	req SearchRequest,
	origin, destination string,
	filters TravelerFilters,
) ([]domain.FlightOffer, error) {
	callCtx := ctx
	if s.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.CallTimeout)
		defer cancel()
	}

	offers, err := s.Retriever.Search(callCtx, LegQuery{
		Origin:         origin,
		Destination:    destination,
		DepartureDate:  req.DepartureDate,
		ReturnDate:     req.ReturnDate,
		Mode:           req.Mode,
		NearbyRadiusKM: req.NearbyRadiusKM,
		ReturnRadiusKM: req.ReturnRadiusKM,
		Adults:         req.Adults,
		MaxResults:     req.MaxOffersPerQuery,
	}, filters)
	if err != nil {
		// The call's own deadline is a provider timeout: degrade this leg
		// to empty. Cancellation of the surrounding run still propagates.
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			log.Printf("op=search leg=%s->%s timeout", origin, destination)
			return nil, nil
		}
		return nil, err
	}
	return offers, nil
}
