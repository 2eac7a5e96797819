// Copyright © 2026 Orrery contributors.

package orrery

// errors.go implements the error taxonomy from §7: InvalidInput,
// NumericalDegenerate, ResourceExhaustion, and CorruptPersistedState.
// Only InvalidInput, InvalidConfiguration and CorruptPersistedState are
// ever returned to a caller — NumericalDegenerate and ResourceExhaustion are handled locally
// by every pipeline stage and never surface (§7). The shape is adapted
// from a typed API-error pattern seen elsewhere in the retrieval corpus
// (a Code + Message + helper-constructor struct), stripped of its HTTP
// status code and request-id fields since a physics library has no
// request boundary.

// ErrorKind classifies a failure returned by the core.
type ErrorKind string

const (
	// InvalidInput marks a rejected body construction or malformed
	// persisted state: non-finite or negative mass/radius, a zero-length
	// vector where a direction was required, and similar refusals. The
	// offending operation is refused and prior state is unchanged.
	InvalidInput ErrorKind = "INVALID_INPUT"

	// InvalidConfiguration marks a SimulationEngine missing one of its
	// four required pipeline stages (§4.1).
	InvalidConfiguration ErrorKind = "INVALID_CONFIGURATION"

	// NumericalDegenerate marks a zero squared distance or a zero
	// denominator encountered mid-computation. Never returned to a
	// caller: every stage that can hit this condition degrades locally
	// (zero force, an arbitrary separation axis) instead.
	NumericalDegenerate ErrorKind = "NUMERICAL_DEGENERATE"

	// ResourceExhaustion marks a pool cap being exceeded. Never returned
	// to a caller: the pool falls back to a fresh allocation instead of
	// failing or blocking.
	ResourceExhaustion ErrorKind = "RESOURCE_EXHAUSTION"

	// CorruptPersistedState marks a JSON parse or semantic validation
	// failure on load. The load operation fails and the world passed to
	// it is left untouched.
	CorruptPersistedState ErrorKind = "CORRUPT_PERSISTED_STATE"
)

// Error is the error type returned by core operations that can fail
// synchronously.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string { return string(e.Kind) + ": " + e.Message }

// NewError constructs an Error with the given kind and message.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewInvalidInput constructs an InvalidInput error.
func NewInvalidInput(message string) *Error {
	return NewError(InvalidInput, message)
}

// NewInvalidConfiguration constructs an InvalidConfiguration error.
func NewInvalidConfiguration(message string) *Error {
	return NewError(InvalidConfiguration, message)
}

// KindOf extracts the ErrorKind from err, returning ok=false if err is nil
// or not one produced by this package.
func KindOf(err error) (kind ErrorKind, ok bool) {
	if e, isErr := err.(*Error); isErr {
		return e.Kind, true
	}
	return "", false
}
