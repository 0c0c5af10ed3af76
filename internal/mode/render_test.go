package mode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderContributions_FixedGrammar(t *testing.T) {
	contribs := []ContributionRecord{
		{Type: Bond, Atoms: []string{"C1", "H2"}, Weight: 0.9},
		{Type: Angle, Atoms: []string{"H2", "C1", "H3"}, Weight: 0.1},
	}
	require.Equal(t, "BOND(C1 H2):0.90; ANGLE(H2 C1 H3):0.10", RenderContributions(contribs))
	require.Equal(t, "", RenderContributions(nil))
}

func TestRenderContributions_RoundTrip(t *testing.T) {
	contribs := []ContributionRecord{
		{Type: Torsion, Atoms: []string{"C1", "C2", "C3", "C4"}, Weight: 0.47},
		{Type: Out, Atoms: []string{"N5"}, Weight: 0.25},
		{Type: Bond, Atoms: []string{"C1", "H2"}, Weight: 0.12},
	}
	parsed, err := ParseContributions(RenderContributions(contribs))
	require.NoError(t, err)
	require.Equal(t, contribs, parsed, "type, atoms and weight survive at two-decimal precision")
}

func TestRenderContributions_RoundTripTruncatesWeight(t *testing.T) {
	// Rendering quantizes to two decimals; re-parsing recovers the rendered
	// value, not the raw one.
	in := []ContributionRecord{{Type: Bond, Atoms: []string{"C1", "O2"}, Weight: 0.4567}}
	parsed, err := ParseContributions(RenderContributions(in))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	require.InDelta(t, 0.46, parsed[0].Weight, 1e-9)
}

func TestParseContributions_Malformed(t *testing.T) {
	for _, raw := range []string{
		"BOND(C1 H2)",            // missing weight
		"BOND C1 H2:0.90",        // missing parens
		"DIHEDRAL(C1 C2):0.90",   // unknown type
		"BOND(C1 H2):0.9",        // one decimal place
		"BOND(C1 H2):0.90; ; ;",  // empty entries
		"bond(C1 H2):0.90",       // lowercase type token
	} {
		_, err := ParseContributions(raw)
		require.Error(t, err, "input %q", raw)
	}
}
