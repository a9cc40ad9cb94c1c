// Package resolver implements the fallback-driven data resolution chains:
// financial profile, asset location and ESG score. Resolvers never return
// errors; every failure degrades to the next tier and the orchestrator
// only ever observes degraded-confidence results.
package resolver

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/georisk-cli/pkg/nominatim"
	"github.com/sells-group/georisk-cli/pkg/yahoo"
)

// FailureKind classifies an external-call failure at a resolver boundary.
// Both kinds degrade identically today, but keeping them distinct lets
// tests tell "service said no" from "service was unreachable".
type FailureKind string

const (
	FailureTransport      FailureKind = "transport_failure"
	FailureNoMatch        FailureKind = "no_match"
	FailureDataIncomplete FailureKind = "data_incomplete"
)

// Classify maps a client error to the failure taxonomy.
func Classify(err error) FailureKind {
	if eris.Is(err, yahoo.ErrNoMatch) || eris.Is(err, nominatim.ErrNoMatch) {
		return FailureNoMatch
	}
	// Everything else (network error, HTTP status, malformed body,
	// cancelled context) is transport-level from the resolver's view.
	return FailureTransport
}
