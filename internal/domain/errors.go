package domain

import "errors"

// Error kinds surfaced to callers. Adapters wrap provider errors with one of
// these so handlers can map them to status codes with errors.Is.
var (
	// ErrInvalidInput: a required field is missing or empty. Rejected
	// before any side effect.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound: record or session lookup miss.
	ErrNotFound = errors.New("not found")

	// ErrGatewayUnavailable: the real-time provider's control plane failed
	// or timed out.
	ErrGatewayUnavailable = errors.New("gateway unavailable")

	// ErrSummaryUnavailable: the text-generation provider failed and no
	// mock is configured.
	ErrSummaryUnavailable = errors.New("summary unavailable")

	// ErrNoActiveSession: agent operation on a room with no running
	// session.
	ErrNoActiveSession = errors.New("no active agent session")
)
