package mode

import (
	"fmt"
	"sort"
	"strings"
)

// ContributionType classifies an internal coordinate.
//
// The declared order (BOND < ANGLE < OUT < TORSION) is part of the model: it is
// the secondary tie-break when ranking contributions of equal weight, and the
// column order of the per-type count columns.
type ContributionType uint8

const (
	Bond ContributionType = iota
	Angle
	Out
	Torsion

	numContributionTypes = 4
)

// ContributionTypes returns all types in declared order.
func ContributionTypes() []ContributionType {
	return []ContributionType{Bond, Angle, Out, Torsion}
}

func (t ContributionType) String() string {
	switch t {
	case Bond:
		return "BOND"
	case Angle:
		return "ANGLE"
	case Out:
		return "OUT"
	case Torsion:
		return "TORSION"
	default:
		return fmt.Sprintf("ContributionType(%d)", uint8(t))
	}
}

// ParseContributionType maps the decomposition tool's type token to the enum.
// Matching is case-insensitive; unknown tokens are rejected.
func ParseContributionType(s string) (ContributionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BOND":
		return Bond, nil
	case "ANGLE":
		return Angle, nil
	case "OUT":
		return Out, nil
	case "TORSION":
		return Torsion, nil
	default:
		return 0, fmt.Errorf("unknown contribution type %q", s)
	}
}

// ContributionRecord is one internal-coordinate share of a mode's motion.
//
// Weight is a normalized share in [0,1]. The records of one mode need not sum
// to exactly 1: the upstream tool truncates small terms.
type ContributionRecord struct {
	Type   ContributionType
	Atoms  []string
	Weight float64
}

// atomKey is the lexical tie-break key for equal-weight, equal-type records.
func (c ContributionRecord) atomKey() string { return strings.Join(c.Atoms, " ") }

// Less is the total ranking order: weight descending, then type in declared
// order, then atom labels lexically. It makes top-N selection deterministic
// for near-degenerate weights.
func (c ContributionRecord) Less(o ContributionRecord) bool {
	if c.Weight != o.Weight {
		return c.Weight > o.Weight
	}
	if c.Type != o.Type {
		return c.Type < o.Type
	}
	return c.atomKey() < o.atomKey()
}

// IntensityRecord is one mode from the high-fidelity intensity source.
//
// FrequencyCm1 is the natural join key; ModeIndex is informational only since
// the two sources need not number modes identically.
type IntensityRecord struct {
	ModeIndex    int
	FrequencyCm1 float64
	IRIntensity  float64 // km/mol
}

// ModeDecomposition is one mode from the decomposition tool.
//
// FittedIntensity comes from the tool's regression fit and is treated as
// lower-fidelity; merging replaces it with the matched IntensityRecord value.
type ModeDecomposition struct {
	ModeIndex       int
	FrequencyCm1    float64
	FittedIntensity float64
	Contributions   []ContributionRecord
}

// ContributionCounts holds the per-type contribution count of one mode.
// All four types are always present (zero when absent).
type ContributionCounts [numContributionTypes]int

// Of returns the count for one type.
func (c ContributionCounts) Of(t ContributionType) int { return c[t] }

// CountContributions groups contributions by type.
func CountContributions(contribs []ContributionRecord) ContributionCounts {
	var counts ContributionCounts
	for _, c := range contribs {
		counts[c.Type]++
	}
	return counts
}

// MergedMode is the central entity: one decomposition mode enriched with the
// authoritative intensity of its frequency-matched IntensityRecord.
//
// ModeIndex and FrequencyCm1 come from the decomposition source (traceability
// and display continuity). IRIntensity is nil when the mode found no intensity
// candidate within tolerance and the run policy retains such rows flagged.
type MergedMode struct {
	ModeIndex          int
	FrequencyCm1       float64
	IRIntensity        *float64 // km/mol; nil = unmatched, flagged
	ContributionCounts ContributionCounts
	TopContributions   []ContributionRecord

	// Contributions is the full ranked decomposition, retained so filters can
	// optionally look past the top-N cut.
	Contributions []ContributionRecord
}

// Matched reports whether an authoritative intensity was substituted.
func (m MergedMode) Matched() bool { return m.IRIntensity != nil }

// SummaryTable is an ordered, read-only sequence of MergedMode rows.
//
// Rows are ordered by ModeIndex ascending; the ordering is enforced at
// construction. Filtering produces a new table, never mutating the original.
type SummaryTable struct {
	rows []MergedMode
}

// NewSummaryTable copies and orders the given rows by ModeIndex ascending.
func NewSummaryTable(rows []MergedMode) SummaryTable {
	out := make([]MergedMode, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ModeIndex < out[j].ModeIndex })
	return SummaryTable{rows: out}
}

// Len returns the row count.
func (t SummaryTable) Len() int { return len(t.rows) }

// Rows returns the rows in table order.
func (t SummaryTable) Rows() []MergedMode {
	out := make([]MergedMode, len(t.rows))
	copy(out, t.rows)
	return out
}
