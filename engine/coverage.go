/*
coverage.go - Reconciliation of derived obligations against tracked items

PURPOSE:
  Partitions the derived obligation set against the user's actually-tracked
  work items: what is covered, what is missing, what is untracked extra work.

MATCHING:
  Title-based and fuzzy, not key-based - tracked items are free text and do
  not carry derived keys. Titles are normalized (lower-case, non-alphanumeric
  runs collapsed to single spaces, trimmed), then two titles match when:
    - they are equal, or
    - the tracked title contains the derived title, or
    - the derived title contains the tracked title AND the shorter side is at
      least 6 characters (guards short substrings like "VAT" against matching
      everything).
  Empty normalized titles never match.

  The policy is intentionally a substring heuristic, not a scored similarity
  metric. Whether token-set matching would cut false positives in production
  is an open product question; behavior stays as-is until that is decided.

SEE ALSO:
  - types.go: CoverageResult shape
  - derive.go: Produces the derived input
*/
package engine

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const minContainmentLen = 6

// Reconcile partitions derived obligations into present/missing and tracked
// items into matched/unexpected. The partition is exact: len(Present) +
// len(Missing) == len(derived), and every tracked item appears either in some
// Present entry's matches or in Unexpected, never both.
func Reconcile(derived []DerivedObligation, tracked []TrackedItem) CoverageResult {
	result := CoverageResult{}

	matched := make([]bool, len(tracked))

	for _, ob := range derived {
		var matches []TrackedItem
		for i, item := range tracked {
			if titlesMatch(ob.Title, item.Title) {
				matches = append(matches, item)
				matched[i] = true
			}
		}
		if len(matches) > 0 {
			result.Present = append(result.Present, CoveredObligation{Obligation: ob, Matches: matches})
		} else {
			result.Missing = append(result.Missing, ob)
		}
	}

	for i, item := range tracked {
		if !matched[i] {
			result.Unexpected = append(result.Unexpected, item)
		}
	}

	return result
}

func titlesMatch(derivedTitle, trackedTitle string) bool {
	d := NormalizeTitle(derivedTitle)
	t := NormalizeTitle(trackedTitle)
	if d == "" || t == "" {
		return false
	}
	if d == t {
		return true
	}
	if strings.Contains(t, d) {
		return true
	}
	if strings.Contains(d, t) && len(t) >= minContainmentLen {
		return true
	}
	return false
}

// NormalizeTitle lower-cases, replaces every non-letter/digit run with a
// single space, and trims.
func NormalizeTitle(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// =============================================================================
// AGGREGATE STATS - Derived from the partition, never recounted
// =============================================================================

// CoverageStats summarizes a CoverageResult. The counts come straight from
// the partition lengths so they cannot drift from it.
type CoverageStats struct {
	Covered      int `json:"covered"`
	Uncovered    int `json:"uncovered"`
	DerivedTotal int `json:"derivedTotal"`
}

func (r CoverageResult) Stats() CoverageStats {
	return CoverageStats{
		Covered:      len(r.Present),
		Uncovered:    len(r.Missing),
		DerivedTotal: len(r.Present) + len(r.Missing),
	}
}

// Percent returns covered/derivedTotal as an exact percentage, rounded to two
// decimal places. Zero derived obligations yields zero.
func (s CoverageStats) Percent() decimal.Decimal {
	if s.DerivedTotal == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.Covered)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(s.DerivedTotal))).
		Round(2)
}
