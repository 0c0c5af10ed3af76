package mode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Contribution display grammar: TYPE(atom atom ...):W with W formatted to two
// decimal places, entries joined by "; ". The string values are part of the
// exported table's bytes; do not change them.
const contributionSeparator = "; "

// Display renders one contribution in the fixed grammar.
func (c ContributionRecord) Display() string {
	return fmt.Sprintf("%s(%s):%.2f", c.Type, strings.Join(c.Atoms, " "), c.Weight)
}

// RenderContributions renders a contribution list in the fixed grammar.
// An empty list renders as the empty string.
func RenderContributions(contribs []ContributionRecord) string {
	if len(contribs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(contribs))
	for _, c := range contribs {
		parts = append(parts, c.Display())
	}
	return strings.Join(parts, contributionSeparator)
}

var contributionPattern = regexp.MustCompile(`^([A-Z]+)\(([^)]*)\):(\d+\.\d{2})$`)

// ParseContributions is the inverse of RenderContributions, recovering type,
// atoms and weight at the rendered two-decimal precision. It exists so the
// rendered column stays round-trippable in exported tables.
func ParseContributions(s string) ([]ContributionRecord, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, contributionSeparator)
	out := make([]ContributionRecord, 0, len(parts))
	for _, part := range parts {
		m := contributionPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("malformed contribution entry %q", part)
		}
		typ, err := ParseContributionType(m[1])
		if err != nil {
			return nil, err
		}
		weight, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed contribution weight %q: %w", m[3], err)
		}
		var atoms []string
		if m[2] != "" {
			atoms = strings.Fields(m[2])
		}
		out = append(out, ContributionRecord{Type: typ, Atoms: atoms, Weight: weight})
	}
	return out, nil
}
