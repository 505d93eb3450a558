// Package layouterr defines the engine's error taxonomy.
//
// InvalidGraph and UnknownAlgorithm abort the operation that raised them.
// SimulationDiverged and CollisionUnresolved are non-fatal: the engine
// recovers locally and the caller only sees them if it asked to.
package layouterr

// Code identifies a member of the engine's error taxonomy.
type Code string

const (
	// InvalidGraph: missing edge endpoint, duplicate id, non-finite
	// coordinate, or non-positive width/height. Surfaced immediately;
	// no positions are produced.
	InvalidGraph Code = "INVALID_GRAPH"

	// UnknownAlgorithm: the algorithm tag is not one of the four
	// recognised values. Surfaced immediately.
	UnknownAlgorithm Code = "UNKNOWN_ALGORITHM"

	// SimulationDiverged (non-fatal): a node's position magnitude
	// exceeded the divergence bound after a tick. The engine clamps
	// the position and continues.
	SimulationDiverged Code = "SIMULATION_DIVERGED"

	// CollisionUnresolved (non-fatal): resolve_collisions exhausted
	// max_iters with overlaps remaining. Positions are still returned.
	CollisionUnresolved Code = "COLLISION_UNRESOLVED"
)

// fatal reports whether a code aborts the operation that raised it.
func (c Code) fatal() bool {
	return c == InvalidGraph || c == UnknownAlgorithm
}

// Error is a structured engine error carrying a taxonomy code and
// enough detail for a caller (or the demo HTTP layer) to react without
// parsing a message string.
type Error struct {
	Code    Code
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Fatal reports whether this error aborted the call that produced it.
// Non-fatal errors (SimulationDiverged, CollisionUnresolved) are
// reported out-of-band; the caller still received positions.
func (e *Error) Fatal() bool {
	return e.Code.fatal()
}

// WithDetails attaches structured context (e.g. the offending node id)
// and returns the same error for chaining.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

func newErr(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewInvalidGraph builds an InvalidGraph error.
func NewInvalidGraph(message string) *Error {
	if message == "" {
		message = "graph is not well-formed"
	}
	return newErr(InvalidGraph, message)
}

// NewUnknownAlgorithm builds an UnknownAlgorithm error for the given tag.
func NewUnknownAlgorithm(algorithm string) *Error {
	return newErr(UnknownAlgorithm, "unrecognised layout algorithm: "+algorithm).
		WithDetails(map[string]any{"algorithm": algorithm})
}

// NewSimulationDiverged builds a SimulationDiverged report for a node
// whose position was clamped.
func NewSimulationDiverged(nodeID string, magnitude float64) *Error {
	return newErr(SimulationDiverged, "node position exceeded divergence bound and was clamped").
		WithDetails(map[string]any{"node_id": nodeID, "magnitude": magnitude})
}

// NewCollisionUnresolved builds a CollisionUnresolved report after the
// resolver exhausted its iteration budget.
func NewCollisionUnresolved(iterations int, remainingOverlaps int) *Error {
	return newErr(CollisionUnresolved, "collision resolution exhausted max_iters with overlaps remaining").
		WithDetails(map[string]any{"iterations": iterations, "remaining_overlaps": remainingOverlaps})
}
