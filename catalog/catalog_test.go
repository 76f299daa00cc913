package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/compliance-engine/catalog"
	"github.com/warp/compliance-engine/engine"
)

// =============================================================================
// FACTORY - JSON conversion and coercion
// =============================================================================

func TestParseDefinition_Quarterly(t *testing.T) {
	def, err := catalog.ParseDefinition(`{
		"id": "usn-advance",
		"title": "USN advance payment",
		"category": "reporting",
		"lead_days": 7,
		"rule": {"type": "quarterly", "months": [4, 7, 10], "day": 25}
	}`)
	require.NoError(t, err)

	assert.Equal(t, "usn-advance", def.ID)
	assert.Equal(t, catalog.CategoryReporting, def.Category)
	assert.Equal(t, 7, def.LeadDays)

	rule, ok := def.Rule.(engine.Quarterly)
	require.True(t, ok, "expected a quarterly rule, got %T", def.Rule)
	assert.Equal(t, []time.Month{time.April, time.July, time.October}, rule.Months)
	assert.Equal(t, 25, rule.Day)
}

func TestParseDefinition_InvalidJSON(t *testing.T) {
	_, err := catalog.ParseDefinition(`{not json`)
	assert.Error(t, err)
}

func TestFromJSON_CoercesMalformedFields(t *testing.T) {
	def := catalog.FromJSON(catalog.DefinitionJSON{
		ID:       "weird",
		Title:    "Weird entry",
		Category: "fiscal-ops", // unknown
		LeadDays: -5,
		Rule:     catalog.RuleJSON{Type: "biweekly", Day: 99}, // unknown type
	})

	assert.Equal(t, catalog.CategoryInternal, def.Category, "unknown category defaults to internal")
	assert.Equal(t, 0, def.LeadDays, "negative lead time clamps to zero")
	assert.Equal(t, engine.Monthly{Day: 1}, def.Rule, "unknown rule type falls back to monthly day 1")
}

func TestFromJSON_DropsOutOfRangeMonths(t *testing.T) {
	def := catalog.FromJSON(catalog.DefinitionJSON{
		ID:   "q",
		Rule: catalog.RuleJSON{Type: "quarterly", Months: []int{0, 4, 13, 7}, Day: 25},
	})

	rule, ok := def.Rule.(engine.Quarterly)
	require.True(t, ok)
	assert.Equal(t, []time.Month{time.April, time.July}, rule.Months)
}

func TestToJSON_RoundTrip(t *testing.T) {
	for _, def := range catalog.DefaultCatalog() {
		back := catalog.FromJSON(catalog.ToJSON(def))
		assert.Equal(t, def, back, "definition %s must survive the wire form", def.ID)
	}
}

// =============================================================================
// DEFAULT CATALOG
// =============================================================================

func TestDefaultCatalog_UniqueIDsAndValidRules(t *testing.T) {
	defs := catalog.DefaultCatalog()
	require.NotEmpty(t, defs)

	seen := map[string]bool{}
	for _, def := range defs {
		assert.False(t, seen[def.ID], "duplicate definition ID %s", def.ID)
		seen[def.ID] = true

		assert.NotEmpty(t, def.Title, "%s has no title", def.ID)
		assert.NotNil(t, def.Rule, "%s has no rule", def.ID)
		assert.GreaterOrEqual(t, def.LeadDays, 0, "%s has negative lead time", def.ID)
	}
}

// =============================================================================
// SCHEDULE PROJECTION
// =============================================================================

func TestSchedule_StartByAppliesLeadTime(t *testing.T) {
	defs := []catalog.ObligationDefinition{{
		ID:       "usn-advance",
		Title:    "USN advance payment",
		Category: catalog.CategoryReporting,
		LeadDays: 7,
		Rule:     engine.Quarterly{Months: []time.Month{time.April}, Day: 25},
	}}

	scheduled := catalog.Schedule(defs, engine.NewDate(2024, time.January, 1), 6)
	require.Len(t, scheduled, 1)

	// Apr 25 2024 is a Thursday - no weekend shift.
	assert.Equal(t, engine.NewDate(2024, time.April, 25), scheduled[0].Due)
	assert.Equal(t, engine.NewDate(2024, time.April, 18), scheduled[0].StartBy)
}

func TestSchedule_OrderedByDueThenID(t *testing.T) {
	defs := []catalog.ObligationDefinition{
		{ID: "b-entry", Title: "B", Rule: engine.Monthly{Day: 5}},
		{ID: "a-entry", Title: "A", Rule: engine.Monthly{Day: 5}},
		{ID: "earlier", Title: "E", Rule: engine.Monthly{Day: 2}},
	}

	scheduled := catalog.Schedule(defs, engine.NewDate(2024, time.January, 1), 1)
	require.Len(t, scheduled, 3)

	// Jan 2 before Jan 5; equal dates tie-break on definition ID.
	assert.Equal(t, "earlier", scheduled[0].DefinitionID)
	assert.Equal(t, "a-entry", scheduled[1].DefinitionID)
	assert.Equal(t, "b-entry", scheduled[2].DefinitionID)
}

func TestSchedule_EmptyCatalog(t *testing.T) {
	scheduled := catalog.Schedule(nil, engine.NewDate(2024, time.January, 1), 12)
	assert.Empty(t, scheduled)
}
