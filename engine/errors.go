/*
errors.go - Centralized error types for stores built around the engine

PURPOSE:
  The four core functions (Expand, Derive, Check/Score, Reconcile) are total
  over well-formed inputs and never return errors; malformed input is coerced
  at the normalization boundary. The errors here belong to the collaborator
  surface - profile, catalog and task stores - so every implementation agrees
  on the same sentinels.

USAGE:
  if errors.Is(err, engine.ErrClientNotFound) { ... }

SEE ALSO:
  - store.go: Interfaces returning these errors
  - store/memory.go, store/sqlite: Implementations
*/
package engine

import "errors"

var (
	// ErrClientNotFound is returned when no profile exists for a client ID.
	ErrClientNotFound = errors.New("client not found")

	// ErrTaskNotFound is returned when a tracked item ID does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrDefinitionNotFound is returned when a catalog definition ID does not exist.
	ErrDefinitionNotFound = errors.New("definition not found")
)

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrDefinitionNotFound)
}
