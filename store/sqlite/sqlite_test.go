package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/compliance-engine/catalog"
	"github.com/warp/compliance-engine/engine"
	"github.com/warp/compliance-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// =============================================================================
// PROFILES
// =============================================================================

func TestProfileRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	profile := engine.RegulatoryProfile{
		ClientID:     "acme",
		EntityType:   engine.EntityLegalEntity,
		TaxRegime:    engine.RegimeSimplifiedIncomeExpense,
		VATMode:      engine.VATNone,
		Payroll:      engine.Payroll{Enabled: true, Headcount: 4, PayDays: []int{10, 25}},
		BankAccounts: 2,
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, store.SaveProfile(ctx, profile))

	got, err := store.GetProfile(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, profile.TaxRegime, got.TaxRegime)
	assert.Equal(t, profile.Payroll, got.Payroll)

	// Saving again supersedes in place.
	profile.VATMode = engine.VATStandard
	require.NoError(t, store.SaveProfile(ctx, profile))

	got, err = store.GetProfile(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, engine.VATStandard, got.VATMode)

	list, err := store.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGetProfile_Unknown(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, engine.ErrClientNotFound)
}

// =============================================================================
// CATALOG
// =============================================================================

func TestCatalogReplaceAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceCatalog(ctx, catalog.DefaultCatalog()))

	defs, err := store.ListDefinitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultCatalog(), defs, "order and content survive persistence")

	// Replacing shrinks the catalog wholesale.
	require.NoError(t, store.ReplaceCatalog(ctx, catalog.DefaultCatalog()[:2]))

	defs, err = store.ListDefinitions(ctx)
	require.NoError(t, err)
	assert.Len(t, defs, 2)
}

// =============================================================================
// TASKS
// =============================================================================

func TestTaskLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	withDue := engine.TrackedItem{
		ID:      "t1",
		Title:   "VAT reporting Q1",
		Status:  "open",
		DueDate: engine.NewDate(2024, time.April, 25),
	}
	noDue := engine.TrackedItem{ID: "t2", Title: "Bank statement", Status: "open"}

	require.NoError(t, store.SaveTask(ctx, "acme", withDue))
	require.NoError(t, store.SaveTask(ctx, "acme", noDue))

	items, err := store.ListTasks(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, withDue.DueDate, items[0].DueDate)
	assert.True(t, items[1].DueDate.IsZero(), "null due date round-trips as zero")

	// Tasks are scoped per client.
	other, err := store.ListTasks(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, store.DeleteTask(ctx, "acme", "t1"))
	err = store.DeleteTask(ctx, "acme", "t1")
	assert.ErrorIs(t, err, engine.ErrTaskNotFound)
}

// =============================================================================
// RISK SNAPSHOTS
// =============================================================================

func TestRiskSnapshotRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// No snapshot yet.
	snap, err := store.GetRiskSnapshot(ctx, "acme")
	require.NoError(t, err)
	assert.Nil(t, snap)

	saved := sqlite.RiskSnapshot{
		ClientID: "acme",
		Score:    engine.RiskScore{Value: 66, Label: engine.LabelHigh},
		Findings: []engine.RiskFinding{{
			Kind:     engine.RiskInconsistent,
			Key:      engine.KeyRiskPayrollHeadcount,
			Title:    "Payroll enabled but headcount is zero",
			Severity: 3,
		}},
		ComputedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.SaveRiskSnapshot(ctx, saved))

	snap, err = store.GetRiskSnapshot(ctx, "acme")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, saved.Score, snap.Score)
	assert.Equal(t, saved.Findings, snap.Findings)
	assert.True(t, saved.ComputedAt.Equal(snap.ComputedAt))
}
