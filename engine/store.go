/*
store.go - Persistence interfaces for the engine's external collaborators

PURPOSE:
  The engine itself is pure; profiles and tracked items arrive from outside.
  These interfaces define the contract those suppliers implement. Catalog
  persistence lives in the catalog package (it owns ObligationDefinition).

IMPLEMENTATIONS:
  - store/memory.go: In-memory, for tests and dev
  - store/sqlite (repo root): SQLite-backed production store
*/
package engine

import "context"

// ProfileStore supplies regulatory profiles by client identifier.
// Profiles are superseded on save, never deleted while the client exists.
type ProfileStore interface {
	// SaveProfile creates or supersedes the profile for its ClientID.
	SaveProfile(ctx context.Context, p RegulatoryProfile) error

	// GetProfile returns ErrClientNotFound when the client is unknown.
	GetProfile(ctx context.Context, clientID string) (RegulatoryProfile, error)

	// ListProfiles returns all profiles, ordered by client ID.
	ListProfiles(ctx context.Context) ([]RegulatoryProfile, error)
}

// TaskStore supplies the tracked work items reconciled against derived
// obligations.
type TaskStore interface {
	SaveTask(ctx context.Context, clientID string, item TrackedItem) error

	// ListTasks returns the client's tracked items, ordered by ID.
	ListTasks(ctx context.Context, clientID string) ([]TrackedItem, error)

	// DeleteTask returns ErrTaskNotFound when the item does not exist.
	DeleteTask(ctx context.Context, clientID, taskID string) error
}
