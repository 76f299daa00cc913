/*
schedule.go - Catalog projection over a horizon

PURPOSE:
  Turns a set of obligation definitions into the concrete deadlines they
  produce over a rolling horizon, each paired with the date work should
  start (deadline minus lead time). This is what the dashboard's calendar
  and the snapshot scheduler consume.

SEE ALSO:
  - engine/recurrence.go: Per-rule expansion
  - api/scheduler.go: Periodic snapshot refresh using this projection
*/
package catalog

import (
	"sort"

	"github.com/warp/compliance-engine/engine"
)

// ScheduledObligation is one concrete deadline produced by a definition.
type ScheduledObligation struct {
	DefinitionID string      `json:"definitionId"`
	Title        string      `json:"title"`
	Category     Category    `json:"category"`
	Due          engine.Date `json:"due"`
	StartBy      engine.Date `json:"startBy"`
}

// Schedule expands every definition over the horizon and merges the results,
// ordered by due date, then definition ID for a stable tie-break.
func Schedule(defs []ObligationDefinition, horizonStart engine.Date, horizonMonths int) []ScheduledObligation {
	var out []ScheduledObligation
	for _, def := range defs {
		for _, due := range engine.Expand(def.Rule, horizonStart, horizonMonths) {
			out = append(out, ScheduledObligation{
				DefinitionID: def.ID,
				Title:        def.Title,
				Category:     def.Category,
				Due:          due,
				StartBy:      due.AddDays(-def.LeadDays),
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Due.Equal(out[j].Due) {
			return out[i].Due.Before(out[j].Due)
		}
		return out[i].DefinitionID < out[j].DefinitionID
	})
	return out
}
