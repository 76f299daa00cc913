/*
recurrence.go - Recurrence rule expansion

PURPOSE:
  Expands a declarative recurrence rule into the concrete calendar dates it
  fires on over a rolling horizon, with a business-day adjustment.

RULE SHAPES:
  Monthly:      fires every month on a fixed day
  Quarterly:    fires on a fixed day in each listed month
  Annual:       fires once per year; YearOffset supports "filed in the year
                following the tax year" patterns
  CustomMonths: arbitrary month subset, same shape as Quarterly

EDGE POLICY:
  If the rule's day exceeds the number of days in a target month, that
  occurrence is DISCARDED - it never rolls over into the next month. A
  monthly day-31 rule produces nothing in April. This is deliberate and
  must be preserved for compatibility with existing persisted definitions.

WEEKEND SHIFT:
  Candidates falling on Saturday or Sunday shift backward one day at a time
  until they land on a weekday. Holidays are not modeled.

EXAMPLE:
  rule := engine.Quarterly{Months: []time.Month{time.April, time.July}, Day: 25}
  dates := engine.Expand(rule, engine.NewDate(2024, time.January, 1), 12)

SEE ALSO:
  - time.go: Date arithmetic and business-day helpers
  - catalog/schedule.go: Projects whole definition sets using Expand
*/
package engine

import (
	"sort"
	"time"
)

// =============================================================================
// RECURRENCE RULE - Closed sum over the four rule shapes
// =============================================================================

// RecurrenceRule is a sealed interface; the only implementations are Monthly,
// Quarterly, Annual and CustomMonths. Adding a rule kind means implementing
// occurrence() and Kind(), so new shapes are a compile-time decision rather
// than a silent no-op in a type switch.
type RecurrenceRule interface {
	// occurrence returns the candidate date for the window month (year, month),
	// or false when the rule does not fire in that month.
	occurrence(year int, month time.Month) (Date, bool)

	// Kind returns the rule's wire tag.
	Kind() RuleKind
}

type RuleKind string

const (
	KindMonthly      RuleKind = "monthly"
	KindQuarterly    RuleKind = "quarterly"
	KindAnnual       RuleKind = "annual"
	KindCustomMonths RuleKind = "custom_months"
)

// Monthly fires every month on Day.
type Monthly struct {
	Day int
}

func (r Monthly) Kind() RuleKind { return KindMonthly }

func (r Monthly) occurrence(year int, month time.Month) (Date, bool) {
	return candidate(year, month, r.Day)
}

// Quarterly fires on Day in each listed month.
type Quarterly struct {
	Months []time.Month
	Day    int
}

func (r Quarterly) Kind() RuleKind { return KindQuarterly }

func (r Quarterly) occurrence(year int, month time.Month) (Date, bool) {
	if !containsMonth(r.Months, month) {
		return Date{}, false
	}
	return candidate(year, month, r.Day)
}

// Annual fires once per year in Month on Day. YearOffset is added to the
// window year, so an offset of 1 models obligations filed the year after the
// period they cover.
type Annual struct {
	Month      time.Month
	Day        int
	YearOffset int
}

func (r Annual) Kind() RuleKind { return KindAnnual }

func (r Annual) occurrence(year int, month time.Month) (Date, bool) {
	if month != r.Month {
		return Date{}, false
	}
	return candidate(year+r.YearOffset, month, r.Day)
}

// CustomMonths fires on Day in an arbitrary subset of months.
type CustomMonths struct {
	Months []time.Month
	Day    int
}

func (r CustomMonths) Kind() RuleKind { return KindCustomMonths }

func (r CustomMonths) occurrence(year int, month time.Month) (Date, bool) {
	if !containsMonth(r.Months, month) {
		return Date{}, false
	}
	return candidate(year, month, r.Day)
}

// candidate builds (year, month, day) with the month-end discard policy and
// the backward weekend shift. Day is clamped into 1..31 before evaluation;
// values beyond the month's length discard the occurrence.
func candidate(year int, month time.Month, day int) (Date, bool) {
	day = ClampDay(day)
	if day > DaysInMonth(year, month) {
		return Date{}, false
	}
	return NewDate(year, month, day).PreviousBusinessDay(), true
}

// ClampDay coerces a configured day-of-month into the valid 1..31 range.
func ClampDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > 31 {
		return 31
	}
	return day
}

func containsMonth(months []time.Month, m time.Month) bool {
	for _, candidate := range months {
		if candidate == m {
			return true
		}
	}
	return false
}

// =============================================================================
// EXPANSION - Rule + horizon -> ordered, deduplicated dates
// =============================================================================

// Expand iterates horizonMonths consecutive calendar months starting at the
// first day of horizonStart's month and collects every occurrence of the rule.
// Output is ascending and deduplicated. A nil rule or non-positive horizon
// yields no dates.
func Expand(rule RecurrenceRule, horizonStart Date, horizonMonths int) []Date {
	if rule == nil || horizonMonths <= 0 {
		return nil
	}

	cursor := StartOfMonth(horizonStart.Year(), horizonStart.Month())

	var dates []Date
	for i := 0; i < horizonMonths; i++ {
		m := cursor.AddMonths(i)
		if d, ok := rule.occurrence(m.Year(), m.Month()); ok {
			dates = append(dates, d)
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	// Weekend shifts can collide adjacent occurrences; drop duplicates.
	deduped := dates[:0]
	for i, d := range dates {
		if i == 0 || !d.Equal(dates[i-1]) {
			deduped = append(deduped, d)
		}
	}
	return deduped
}
