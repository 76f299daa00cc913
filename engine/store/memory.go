// Package store provides in-memory implementations of the persistence
// interfaces, for tests and development.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/compliance-engine/catalog"
	"github.com/warp/compliance-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements engine.ProfileStore, engine.TaskStore and catalog.Store.
type Memory struct {
	mu       sync.RWMutex
	profiles map[string]engine.RegulatoryProfile
	tasks    map[string][]engine.TrackedItem // keyed by client ID
	defs     []catalog.ObligationDefinition
}

func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[string]engine.RegulatoryProfile),
		tasks:    make(map[string][]engine.TrackedItem),
	}
}

// -----------------------------------------------------------------------------
// ProfileStore
// -----------------------------------------------------------------------------

func (m *Memory) SaveProfile(_ context.Context, p engine.RegulatoryProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ClientID] = p
	return nil
}

func (m *Memory) GetProfile(_ context.Context, clientID string) (engine.RegulatoryProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[clientID]
	if !ok {
		return engine.RegulatoryProfile{}, engine.ErrClientNotFound
	}
	return p, nil
}

func (m *Memory) ListProfiles(_ context.Context) ([]engine.RegulatoryProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]engine.RegulatoryProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientID < out[j].ClientID })
	return out, nil
}

// -----------------------------------------------------------------------------
// TaskStore
// -----------------------------------------------------------------------------

func (m *Memory) SaveTask(_ context.Context, clientID string, item engine.TrackedItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.tasks[clientID]
	for i, existing := range items {
		if existing.ID == item.ID {
			items[i] = item
			return nil
		}
	}
	m.tasks[clientID] = append(items, item)
	return nil
}

func (m *Memory) ListTasks(_ context.Context, clientID string) ([]engine.TrackedItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := m.tasks[clientID]
	out := make([]engine.TrackedItem, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteTask(_ context.Context, clientID, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.tasks[clientID]
	for i, existing := range items {
		if existing.ID == taskID {
			m.tasks[clientID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return engine.ErrTaskNotFound
}

// -----------------------------------------------------------------------------
// catalog.Store
// -----------------------------------------------------------------------------

func (m *Memory) ListDefinitions(_ context.Context) ([]catalog.ObligationDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]catalog.ObligationDefinition, len(m.defs))
	copy(out, m.defs)
	return out, nil
}

func (m *Memory) ReplaceCatalog(_ context.Context, defs []catalog.ObligationDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.defs = make([]catalog.ObligationDefinition, len(defs))
	copy(m.defs, defs)
	return nil
}
