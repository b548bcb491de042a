package app

import "errors"

var (
	// ErrStreamAborted ends a stream whose consumer went away or could not
	// be written to.
	ErrStreamAborted = errors.New("stream aborted")
	// ErrStepBudgetExceeded rejects inputs whose run would exceed the
	// configured step budget.
	ErrStepBudgetExceeded = errors.New("step budget exceeded")
)
