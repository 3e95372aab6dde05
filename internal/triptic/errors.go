package triptic

import "errors"

// Sentinel errors returned by the core components. Callers match them with
// errors.Is; the transport layer translates them to status codes.
var (
	// ErrNotFound indicates a group, playlist, version or blob is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a duplicate id on create or rename.
	ErrConflict = errors.New("already exists")

	// ErrInvalidArgument indicates an out-of-range version ordinal, unknown
	// slot name, or an empty required field.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStateViolation indicates an operation that is illegal in the
	// current state, such as deleting the last remaining version.
	ErrStateViolation = errors.New("state violation")
)
