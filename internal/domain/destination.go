package domain

// How a destination candidate was produced.
type DiscoverySource string

const (
	SourceDynamic DiscoverySource = "dynamic"
	SourceStatic  DiscoverySource = "static"
)

// DestinationCandidate is a possible meeting city. Candidates are created
// once per discovery run and are immutable afterwards; matching only
// proceeds for candidates reachable from both origins.
type DestinationCandidate struct {
	Code   string
	Source DiscoverySource
}
