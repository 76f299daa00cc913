/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements engine.ProfileStore, engine.TaskStore and catalog.Store using
  SQLite, plus persistence for materialized risk snapshots. In production the
  same patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  client_profiles:         One row per client; profile stored as JSON, superseded
                           in place (never deleted while the client exists)
  obligation_definitions:  The catalog, stored as ordered JSON configs and
                           replaced whole (read/replace-all contract)
  tasks:                   Tracked work items per client
  risk_snapshots:          Materialized copies of engine risk output; always a
                           cache, never an input to the engine

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block and crash recovery is cleaner.

USAGE:
  store, err := sqlite.New("./data/compliance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/store.go, catalog/store.go: Interface definitions
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/compliance-engine/catalog"
	"github.com/warp/compliance-engine/engine"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS client_profiles (
		client_id TEXT PRIMARY KEY,
		profile_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS obligation_definitions (
		position INTEGER PRIMARY KEY,
		config_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT NOT NULL,
		client_id TEXT NOT NULL,
		title TEXT NOT NULL,
		status TEXT NOT NULL,
		due_date TEXT,
		PRIMARY KEY (client_id, id)
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_client ON tasks(client_id);

	CREATE TABLE IF NOT EXISTS risk_snapshots (
		client_id TEXT PRIMARY KEY,
		score INTEGER NOT NULL,
		label TEXT NOT NULL,
		findings_json TEXT NOT NULL,
		computed_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PROFILE STORE
// =============================================================================

func (s *Store) SaveProfile(ctx context.Context, p engine.RegulatoryProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO client_profiles (client_id, profile_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET
			profile_json = excluded.profile_json,
			updated_at = excluded.updated_at`,
		p.ClientID, string(payload), p.UpdatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetProfile(ctx context.Context, clientID string) (engine.RegulatoryProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile_json FROM client_profiles WHERE client_id = ?`, clientID).Scan(&payload)
	if err == sql.ErrNoRows {
		return engine.RegulatoryProfile{}, engine.ErrClientNotFound
	}
	if err != nil {
		return engine.RegulatoryProfile{}, err
	}

	var p engine.RegulatoryProfile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return engine.RegulatoryProfile{}, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return p, nil
}

func (s *Store) ListProfiles(ctx context.Context) ([]engine.RegulatoryProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT profile_json FROM client_profiles ORDER BY client_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []engine.RegulatoryProfile
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var p engine.RegulatoryProfile
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// =============================================================================
// CATALOG STORE - read/replace-all
// =============================================================================

func (s *Store) ListDefinitions(ctx context.Context) ([]catalog.ObligationDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT config_json FROM obligation_definitions ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []catalog.ObligationDefinition
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		def, err := catalog.ParseDefinition(payload)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func (s *Store) ReplaceCatalog(ctx context.Context, defs []catalog.ObligationDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM obligation_definitions`); err != nil {
		return err
	}
	for i, def := range defs {
		payload, err := json.Marshal(catalog.ToJSON(def))
		if err != nil {
			return fmt.Errorf("failed to marshal definition %q: %w", def.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO obligation_definitions (position, config_json) VALUES (?, ?)`,
			i, string(payload)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// =============================================================================
// TASK STORE
// =============================================================================

func (s *Store) SaveTask(ctx context.Context, clientID string, item engine.TrackedItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due any
	if !item.DueDate.IsZero() {
		due = item.DueDate.String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, client_id, title, status, due_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(client_id, id) DO UPDATE SET
			title = excluded.title,
			status = excluded.status,
			due_date = excluded.due_date`,
		item.ID, clientID, item.Title, item.Status, due)
	return err
}

func (s *Store) ListTasks(ctx context.Context, clientID string) ([]engine.TrackedItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, status, due_date FROM tasks WHERE client_id = ? ORDER BY id`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []engine.TrackedItem
	for rows.Next() {
		var item engine.TrackedItem
		var due sql.NullString
		if err := rows.Scan(&item.ID, &item.Title, &item.Status, &due); err != nil {
			return nil, err
		}
		if due.Valid {
			d, err := engine.ParseDate(due.String)
			if err != nil {
				return nil, fmt.Errorf("invalid due date for task %q: %w", item.ID, err)
			}
			item.DueDate = d
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) DeleteTask(ctx context.Context, clientID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE client_id = ? AND id = ?`, clientID, taskID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return engine.ErrTaskNotFound
	}
	return nil
}

// =============================================================================
// RISK SNAPSHOTS - Materialized engine output (cache only)
// =============================================================================

// RiskSnapshot is a stored copy of the risk checker's output for a client.
type RiskSnapshot struct {
	ClientID   string               `json:"clientId"`
	Score      engine.RiskScore     `json:"score"`
	Findings   []engine.RiskFinding `json:"findings"`
	ComputedAt time.Time            `json:"computedAt"`
}

func (s *Store) SaveRiskSnapshot(ctx context.Context, snap RiskSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	findings, err := json.Marshal(snap.Findings)
	if err != nil {
		return fmt.Errorf("failed to marshal findings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO risk_snapshots (client_id, score, label, findings_json, computed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET
			score = excluded.score,
			label = excluded.label,
			findings_json = excluded.findings_json,
			computed_at = excluded.computed_at`,
		snap.ClientID, snap.Score.Value, string(snap.Score.Label),
		string(findings), snap.ComputedAt.Format(time.RFC3339))
	return err
}

// GetRiskSnapshot returns nil when no snapshot has been computed yet.
func (s *Store) GetRiskSnapshot(ctx context.Context, clientID string) (*RiskSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		snap       RiskSnapshot
		label      string
		findings   string
		computedAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT client_id, score, label, findings_json, computed_at
		FROM risk_snapshots WHERE client_id = ?`, clientID).
		Scan(&snap.ClientID, &snap.Score.Value, &label, &findings, &computedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	snap.Score.Label = engine.RiskLabel(label)
	if err := json.Unmarshal([]byte(findings), &snap.Findings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal findings: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, computedAt); err == nil {
		snap.ComputedAt = t
	}
	return &snap, nil
}

// Reset clears all tables. Dev/test only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"client_profiles", "obligation_definitions", "tasks", "risk_snapshots"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
