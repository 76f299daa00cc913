package catalog

import "context"

// Store persists the obligation catalog. The contract is deliberately small:
// the catalog is read whole and replaced whole (admin edits ship the full
// set), which keeps definition ordering and deletion semantics trivial.
type Store interface {
	// ListDefinitions returns the full catalog in stored order.
	ListDefinitions(ctx context.Context) ([]ObligationDefinition, error)

	// ReplaceCatalog atomically replaces the full catalog.
	ReplaceCatalog(ctx context.Context, defs []ObligationDefinition) error
}
