package match

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"vibmerge/internal/mode"
)

// DefaultToleranceCm1 is the default absolute frequency tolerance for
// considering two modes from different sources the same physical mode.
const DefaultToleranceCm1 = 0.05

// UnmatchedPolicy decides what a later stage does with decomposition modes
// that found no intensity candidate within tolerance.
//
// The policy changes downstream row counts, so it is always an explicit
// configuration, never an assumed default.
type UnmatchedPolicy string

const (
	// PolicyDrop excludes unmatched modes from the summary table.
	PolicyDrop UnmatchedPolicy = "drop"
	// PolicyIncludeFlagged retains unmatched modes with a nil intensity and a
	// visible flag.
	PolicyIncludeFlagged UnmatchedPolicy = "include_flagged"
)

// ParseUnmatchedPolicy parses a policy name.
func ParseUnmatchedPolicy(raw string) (UnmatchedPolicy, error) {
	switch UnmatchedPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case PolicyDrop:
		return PolicyDrop, nil
	case PolicyIncludeFlagged:
		return PolicyIncludeFlagged, nil
	default:
		return "", fmt.Errorf("invalid unmatched-mode policy %q (expected drop|include_flagged)", raw)
	}
}

// Options configures the matching stage. Stages receive options explicitly;
// there are no process-wide mutable defaults.
type Options struct {
	// ToleranceCm1 is the inclusive absolute frequency tolerance.
	ToleranceCm1 float64
}

// Pair is one decomposition mode with its matched intensity record, or nil
// when no candidate was within tolerance.
type Pair struct {
	Decomposition mode.ModeDecomposition
	Intensity     *mode.IntensityRecord
}

// Match aligns decomposition modes with intensity records by nearest
// frequency within the inclusive tolerance.
//
// Modes are processed in ascending decomposition frequency (mode index as the
// stable secondary key), and each intensity record is consumed by at most one
// mode, so the assignment is injective and independent of input order. When
// two or more candidates tie at the minimal distance within tolerance, the
// lowest unconsumed intensity mode index wins and the decision is recorded as
// an AmbiguousMatch diagnostic.
//
// The returned pairs cover every decomposition mode (unmatched ones carry a
// nil Intensity) and are ordered by decomposition mode index ascending. The
// report is canonicalized.
func Match(intensities []mode.IntensityRecord, decomps []mode.ModeDecomposition, opts Options) ([]Pair, Report, error) {
	var report Report
	if len(intensities) == 0 {
		return nil, report, mode.NoModesf("intensity source is empty")
	}
	if len(decomps) == 0 {
		return nil, report, mode.NoModesf("decomposition source is empty")
	}
	if opts.ToleranceCm1 < 0 {
		return nil, report, fmt.Errorf("frequency tolerance must be non-negative (got %g)", opts.ToleranceCm1)
	}

	// Candidate pool, sorted by frequency with mode index as a stable
	// secondary key. Consumed candidates are removed.
	pool := make([]mode.IntensityRecord, len(intensities))
	copy(pool, intensities)
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].FrequencyCm1 != pool[j].FrequencyCm1 {
			return pool[i].FrequencyCm1 < pool[j].FrequencyCm1
		}
		return pool[i].ModeIndex < pool[j].ModeIndex
	})

	// Matching order: ascending decomposition frequency.
	order := make([]int, len(decomps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		da, db := decomps[order[a]], decomps[order[b]]
		if da.FrequencyCm1 != db.FrequencyCm1 {
			return da.FrequencyCm1 < db.FrequencyCm1
		}
		return da.ModeIndex < db.ModeIndex
	})

	pairs := make([]Pair, len(decomps))
	for _, di := range order {
		d := decomps[di]
		pairs[di] = Pair{Decomposition: d}

		chosen, ties, dist := nearest(pool, d.FrequencyCm1)
		if chosen < 0 || dist > opts.ToleranceCm1 {
			report.Unmatched++
			report.Diagnostics = append(report.Diagnostics, Diagnostic{
				Kind:               DiagnosticUnmatchedMode,
				ModeIndex:          d.ModeIndex,
				FrequencyCm1:       d.FrequencyCm1,
				NearestDistanceCm1: dist,
			})
			continue
		}

		rec := pool[chosen]
		pairs[di].Intensity = &rec
		report.Matched++
		if len(ties) > 1 {
			rejected := make([]int, 0, len(ties)-1)
			for _, t := range ties {
				if t != chosen {
					rejected = append(rejected, pool[t].ModeIndex)
				}
			}
			report.Diagnostics = append(report.Diagnostics, Diagnostic{
				Kind:                DiagnosticAmbiguousMatch,
				ModeIndex:           d.ModeIndex,
				FrequencyCm1:        d.FrequencyCm1,
				ChosenModeIndex:     rec.ModeIndex,
				RejectedModeIndexes: rejected,
				NearestDistanceCm1:  dist,
			})
		}
		pool = append(pool[:chosen], pool[chosen+1:]...)
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Decomposition.ModeIndex < pairs[j].Decomposition.ModeIndex
	})
	report.Canonicalize()
	return pairs, report, nil
}

// nearest finds the pool index with minimal absolute frequency distance to
// freq, along with every index tied at that distance. Among ties the index
// with the lowest ModeIndex is chosen. Returns (-1, nil, -1) on an empty pool.
func nearest(pool []mode.IntensityRecord, freq float64) (chosen int, ties []int, dist float64) {
	if len(pool) == 0 {
		return -1, nil, -1
	}

	// First candidate at or above freq; its left neighbor is the only other
	// distance minimum, modulo duplicates of either frequency.
	hi := sort.Search(len(pool), func(i int) bool { return pool[i].FrequencyCm1 >= freq })

	dist = math.Inf(1)
	if hi < len(pool) {
		dist = pool[hi].FrequencyCm1 - freq
	}
	if hi > 0 {
		if d := freq - pool[hi-1].FrequencyCm1; d < dist {
			dist = d
		}
	}

	// Collect every candidate at exactly the minimal distance: duplicates of
	// freq-dist on the left, duplicates of freq+dist on the right.
	for i := hi - 1; i >= 0 && freq-pool[i].FrequencyCm1 == dist; i-- {
		ties = append(ties, i)
	}
	for i := hi; i < len(pool) && pool[i].FrequencyCm1-freq == dist; i++ {
		ties = append(ties, i)
	}

	chosen = ties[0]
	for _, t := range ties[1:] {
		if pool[t].ModeIndex < pool[chosen].ModeIndex {
			chosen = t
		}
	}
	return chosen, ties, dist
}
