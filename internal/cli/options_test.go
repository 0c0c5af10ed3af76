package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"vibmerge/internal/export"
	"vibmerge/internal/match"
	"vibmerge/internal/mode"
	"vibmerge/internal/summary"
)

func validInvocation() Invocation {
	inv := DefaultInvocation()
	inv.IntensityPath = "orca.out"
	inv.DecompositionPath = "molecule.nma"
	return inv
}

func TestDefaultInvocation(t *testing.T) {
	inv := DefaultInvocation()
	require.Equal(t, 0.05, inv.ToleranceCm1)
	require.Equal(t, 2, inv.TopN)
	require.Equal(t, match.PolicyDrop, inv.UnmatchedPolicy)
	require.Equal(t, export.FormatText, inv.Format)
}

func TestInvocation_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Invocation)
		wantErr string
	}{
		{name: "valid", mutate: func(*Invocation) {}},
		{
			name:    "missing intensity source",
			mutate:  func(i *Invocation) { i.IntensityPath = "" },
			wantErr: "intensity source",
		},
		{
			name:    "missing decomposition and hessian",
			mutate:  func(i *Invocation) { i.DecompositionPath = "" },
			wantErr: "decomposition",
		},
		{
			name: "hessian without tool",
			mutate: func(i *Invocation) {
				i.DecompositionPath = ""
				i.HessianPath = "molecule.hess"
			},
			wantErr: "tool",
		},
		{
			name:    "negative tolerance",
			mutate:  func(i *Invocation) { i.ToleranceCm1 = -1 },
			wantErr: "tolerance",
		},
		{
			name:    "negative top-n",
			mutate:  func(i *Invocation) { i.TopN = -1 },
			wantErr: "top-n",
		},
		{
			name:    "bad policy",
			mutate:  func(i *Invocation) { i.UnmatchedPolicy = "keep" },
			wantErr: "policy",
		},
		{
			name:    "bad format",
			mutate:  func(i *Invocation) { i.Format = "pdf" },
			wantErr: "format",
		},
		{
			name: "inverted range",
			mutate: func(i *Invocation) {
				i.FreqRange = &summary.FrequencyRange{Low: 500, High: 100}
			},
			wantErr: "range",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := validInvocation()
			tc.mutate(&inv)
			err := inv.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)

			var invErr *InvocationError
			require.True(t, errors.As(err, &invErr))
			require.Equal(t, ExitInvalidInvocation, invErr.ExitCode)
		})
	}
}

func TestParseFrequencyRange(t *testing.T) {
	fr, err := ParseFrequencyRange("100-200.5")
	require.NoError(t, err)
	require.Equal(t, 100.0, fr.Low)
	require.Equal(t, 200.5, fr.High)

	fr, err = ParseFrequencyRange(" 10 - 20 ")
	require.NoError(t, err)
	require.Equal(t, 10.0, fr.Low)

	for _, raw := range []string{"100", "abc-200", "100-abc", "300-100"} {
		_, err := ParseFrequencyRange(raw)
		require.Error(t, err, "input %q", raw)
	}
}

func TestParseFrequencyList(t *testing.T) {
	fs, err := ParseFrequencyList("100.0, 200.5,300")
	require.NoError(t, err)
	require.Equal(t, []float64{100.0, 200.5, 300}, fs)

	_, err = ParseFrequencyList(" , ")
	require.Error(t, err)
	_, err = ParseFrequencyList("100,abc")
	require.Error(t, err)
}

func TestParseAtomGroups(t *testing.T) {
	groups, err := ParseAtomGroups("C1 H2, N3 C4")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"C1", "H2"}, {"N3", "C4"}}, groups)

	_, err = ParseAtomGroups("  ,  ")
	require.Error(t, err)
}

func TestExitCodeFor(t *testing.T) {
	require.Equal(t, ExitSuccess, ExitCodeFor(nil))
	require.Equal(t, ExitInvalidInvocation, ExitCodeFor(&InvocationError{ExitCode: ExitInvalidInvocation, Message: "x"}))
	require.Equal(t, ExitConfigError, ExitCodeFor(&ConfigError{Path: "opts.yaml", Err: errors.New("bad yaml")}))
	require.Equal(t, ExitAnalysisFailure, ExitCodeFor(mode.NoModesf("empty")))
	require.Equal(t, ExitAnalysisFailure, ExitCodeFor(mode.DuplicateModef("mode 3")))
	require.Equal(t, ExitInternalError, ExitCodeFor(errors.New("boom")))
}
