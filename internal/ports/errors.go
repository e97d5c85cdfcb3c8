package ports

import "errors"

// Provider failure taxonomy. Adapters map transport-level failures onto
// these sentinels so services can decide with errors.Is instead of
// inspecting status codes.
var (
	// Fatal: no meaningful search is possible without valid credentials.
	// Callers abort the whole run and cancel in-flight work.
	ErrAuthentication = errors.New("provider authentication failed")

	// Benign: the provider has no data for this query. Callers degrade to
	// an empty result.
	ErrNotFound = errors.New("no data for query")

	// The provider throttled the call and bounded retries were exhausted.
	// Callers degrade that one query to an empty result.
	ErrRateLimited = errors.New("provider rate limit exceeded")
)
