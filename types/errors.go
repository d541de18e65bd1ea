package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core error taxonomy. Callers match these with
// errors.Is to decide how a failure is surfaced.
var (
	// ErrValidation marks malformed input (non-positive period, empty
	// required fields). Rejected synchronously, never partially applied.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound marks a lookup that resolved to no goal, day, or task.
	ErrNotFound = errors.New("not found")

	// ErrStorage marks a durable-store read/write failure. Fatal for the
	// triggering operation; no partial record is persisted.
	ErrStorage = errors.New("storage failure")
)

// GenerationError records a remote plan-generation failure after all
// retries were exhausted. It is recoverable: the create-goal flow falls
// back to the local template and surfaces an advisory instead of failing.
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("plan generation failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
