package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrEmptyQuery indicates the query was empty after trimming.
	// No lookups are attempted for an empty query.
	ErrEmptyQuery = errors.New("empty query")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrScopeNotAllowed indicates the role may not search a scope.
	ErrScopeNotAllowed = errors.New("scope not allowed for role")

	// ErrBackendUnavailable indicates a connectivity-class failure talking
	// to the school backend. The only failure surfaced to the user; every
	// other lookup failure degrades to fewer results.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrMalformedResponse indicates a backend payload that failed to
	// decode into its expected shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// IsConnectivity reports whether the error chain contains a
// connectivity-class failure.
func IsConnectivity(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}
