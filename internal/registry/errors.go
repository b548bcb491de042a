package registry

import "errors"

// Sentinel errors for the algorithm registry. Callers match them with
// errors.Is; the transport layer maps each kind to a status.
var (
	ErrUnknownAlgorithm   = errors.New("algorithm not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrExecutionFault     = errors.New("execution failed")
	ErrDuplicateAlgorithm = errors.New("algorithm already registered")
	ErrInvalidEntry       = errors.New("invalid registry entry")
	ErrSourceUnavailable  = errors.New("source unavailable")
)
