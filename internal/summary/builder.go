package summary

import (
	"fmt"

	"vibmerge/internal/match"
	"vibmerge/internal/mode"
)

// Options configures table assembly.
type Options struct {
	// TopN is the maximum number of top contributions retained per mode.
	TopN int
	// UnmatchedPolicy decides whether unmatched modes are dropped or retained
	// flagged with a nil intensity.
	UnmatchedPolicy match.UnmatchedPolicy
}

// Build assembles the summary table from matched pairs.
//
// Each retained pair becomes exactly one MergedMode carrying the
// authoritative intensity, the full ranked decomposition, per-type counts and
// the top-N contributions. Rows are ordered by mode index ascending.
func Build(pairs []match.Pair, opts Options) (mode.SummaryTable, error) {
	switch opts.UnmatchedPolicy {
	case match.PolicyDrop, match.PolicyIncludeFlagged:
	default:
		return mode.SummaryTable{}, fmt.Errorf("invalid unmatched-mode policy %q", opts.UnmatchedPolicy)
	}

	rows := make([]mode.MergedMode, 0, len(pairs))
	for _, p := range pairs {
		if p.Intensity == nil && opts.UnmatchedPolicy == match.PolicyDrop {
			continue
		}
		d := p.Decomposition
		row := mode.MergedMode{
			ModeIndex:          d.ModeIndex,
			FrequencyCm1:       d.FrequencyCm1,
			ContributionCounts: mode.CountContributions(d.Contributions),
			TopContributions:   TopContributions(d.Contributions, opts.TopN),
			Contributions:      RankContributions(d.Contributions),
		}
		if p.Intensity != nil {
			ir := p.Intensity.IRIntensity
			row.IRIntensity = &ir
		}
		rows = append(rows, row)
	}
	return mode.NewSummaryTable(rows), nil
}
