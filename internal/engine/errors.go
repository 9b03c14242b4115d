package engine

import "errors"

var (
	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a plan session was not found.
	ErrNotFound = errors.New("not found")

	// ErrNothingToCommit indicates a commit of a plan without changes.
	ErrNothingToCommit = errors.New("nothing to commit")

	// ErrPlanExists indicates init of a plan that already exists.
	ErrPlanExists = errors.New("plan already exists")
)
