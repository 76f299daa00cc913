package api_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/compliance-engine/api"
	"github.com/warp/compliance-engine/engine"
	"github.com/warp/compliance-engine/store/sqlite"
)

func TestScheduler_RefreshAll(t *testing.T) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.SaveProfile(ctx, engine.RegulatoryProfile{
		ClientID:  "acme",
		TaxRegime: engine.RegimeSimplifiedIncomeExpense,
		Payroll:   engine.Payroll{Enabled: true, Headcount: 0},
	}))

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	scheduler := api.NewScheduler(store, store, log)
	scheduler.RefreshAll(ctx)

	snap, err := store.GetRiskSnapshot(ctx, "acme")
	require.NoError(t, err)
	require.NotNil(t, snap)

	// Payroll without headcount is a severity-3 finding: 3*20 + 3*2 = 66.
	assert.Equal(t, 66, snap.Score.Value)
	assert.Equal(t, engine.LabelHigh, snap.Score.Label)
	require.Len(t, snap.Findings, 1)
	assert.Equal(t, engine.KeyRiskPayrollHeadcount, snap.Findings[0].Key)
	assert.False(t, snap.ComputedAt.IsZero())
}

func TestScheduler_InvalidCronSpec(t *testing.T) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	scheduler := api.NewScheduler(store, store, nil)
	assert.Error(t, scheduler.Start("not a cron spec"))
}
