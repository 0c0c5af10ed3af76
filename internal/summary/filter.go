package summary

import (
	"math"
	"strings"

	"vibmerge/internal/mode"
)

// Predicate selects summary rows. Predicates are stateless; composition is
// logical AND via Filter.
type Predicate interface {
	Matches(m mode.MergedMode) bool
}

// FrequencyRange keeps rows with Low <= frequency <= High (inclusive bounds).
type FrequencyRange struct {
	Low  float64
	High float64
}

func (p FrequencyRange) Matches(m mode.MergedMode) bool {
	return m.FrequencyCm1 >= p.Low && m.FrequencyCm1 <= p.High
}

// FrequencySet keeps rows whose frequency equals one of the listed values at
// display precision (two decimals), mirroring how frequencies are shown and
// re-entered by users.
type FrequencySet struct {
	FrequenciesCm1 []float64
}

func (p FrequencySet) Matches(m mode.MergedMode) bool {
	for _, f := range p.FrequenciesCm1 {
		if math.Abs(m.FrequencyCm1-f) < 0.005 {
			return true
		}
	}
	return false
}

// AtomGroup keeps rows where at least one contribution includes every atom of
// the group. By default only the top contributions are searched; AnyRank
// widens the search to the full decomposition. Atom labels compare
// case-insensitively.
type AtomGroup struct {
	Atoms   []string
	AnyRank bool
}

func (p AtomGroup) Matches(m mode.MergedMode) bool {
	contribs := m.TopContributions
	if p.AnyRank {
		contribs = m.Contributions
	}
	for _, c := range contribs {
		if containsAllAtoms(c.Atoms, p.Atoms) {
			return true
		}
	}
	return false
}

func containsAllAtoms(have, want []string) bool {
	if len(want) == 0 {
		return false
	}
	for _, w := range want {
		found := false
		for _, h := range have {
			if strings.EqualFold(h, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Filter returns a new table containing only rows matching every predicate,
// preserving the original's relative order. No predicates returns an equal
// table; an empty result is a valid zero-row table, not an error.
func Filter(t mode.SummaryTable, preds ...Predicate) mode.SummaryTable {
	rows := t.Rows()
	kept := make([]mode.MergedMode, 0, len(rows))
	for _, row := range rows {
		keep := true
		for _, p := range preds {
			if !p.Matches(row) {
				keep = false
				break
			}
		}
		if keep {
			kept = append(kept, row)
		}
	}
	return mode.NewSummaryTable(kept)
}
