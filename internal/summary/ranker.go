package summary

import (
	"sort"

	"vibmerge/internal/mode"
)

// DefaultTopN is the default number of top contributions retained per mode.
const DefaultTopN = 2

// RankContributions returns the contributions sorted by weight descending,
// ties broken by type declared order then atom-label lexical order.
func RankContributions(contribs []mode.ContributionRecord) []mode.ContributionRecord {
	ranked := make([]mode.ContributionRecord, len(contribs))
	copy(ranked, contribs)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Less(ranked[j]) })
	return ranked
}

// TopContributions returns the topN highest-weight contributions in ranked
// order. Fewer than topN contributions yields all of them, no padding; zero
// contributions yields an empty result, not an error.
func TopContributions(contribs []mode.ContributionRecord, topN int) []mode.ContributionRecord {
	if topN < 0 {
		topN = 0
	}
	ranked := RankContributions(contribs)
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
