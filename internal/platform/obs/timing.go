package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RunIDKey tags log lines belonging to one search run.
const RunIDKey ctxKey = "run_id"

// WithRunID attaches a run identifier for downstream Time calls.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// Time logs an operation's duration (and error, if any) when the returned
// func runs. Intended as `defer obs.Time(ctx, "amadeus.SearchOffers")(&err)`
// around network-facing operations.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	runID, _ := ctx.Value(RunIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("run_id=%s op=%s dur=%dms err=%v", runID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("run_id=%s op=%s dur=%dms", runID, name, dur.Milliseconds())
	}
}
