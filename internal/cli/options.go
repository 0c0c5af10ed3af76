package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"vibmerge/internal/export"
	"vibmerge/internal/match"
	"vibmerge/internal/mode"
	"vibmerge/internal/summary"
)

const (
	ExitSuccess           = 0
	ExitAnalysisFailure   = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitInternalError     = 4
)

// InvocationError is a user-facing invocation failure with its exit code.
type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// Invocation is the fully canonicalized description of one analysis run.
type Invocation struct {
	// IntensityPath is the quantum-chemistry output carrying the IR table.
	IntensityPath string
	// DecompositionPath is the decomposition tool's NMA file. When empty,
	// HessianPath plus the tool fields produce it.
	DecompositionPath string
	// HessianPath feeds the external decomposition tool.
	HessianPath string
	// ToolCommand / ToolScript identify the external decomposition tool.
	ToolCommand string
	ToolScript  string

	// OutputPath receives the export; empty means text to stdout.
	OutputPath string
	Format     export.Format

	ToleranceCm1    float64
	TopN            int
	UnmatchedPolicy match.UnmatchedPolicy

	// RewriteDecomposition rewrites the NMA file in place with the
	// authoritative intensities (backing up the original) before analysis.
	RewriteDecomposition bool

	// Filters, AND-composed. Nil/empty means unfiltered.
	FreqRange      *summary.FrequencyRange
	FrequenciesCm1 []float64
	AtomGroups     [][]string
	AtomsAnyRank   bool
}

// DefaultInvocation carries the documented defaults; callers overlay config
// file values and flags on top.
func DefaultInvocation() Invocation {
	return Invocation{
		Format:          export.FormatText,
		ToleranceCm1:    match.DefaultToleranceCm1,
		TopN:            summary.DefaultTopN,
		UnmatchedPolicy: match.PolicyDrop,
	}
}

// Validate checks the invocation and returns an InvocationError describing
// the first problem found.
func (inv *Invocation) Validate() error {
	if inv.IntensityPath == "" {
		return invalidInvocationf("an intensity source (--orca) is required")
	}
	if inv.DecompositionPath == "" && inv.HessianPath == "" {
		return invalidInvocationf("either a decomposition file (--nma) or a hessian (--hessian) is required")
	}
	if inv.DecompositionPath == "" && inv.ToolCommand == "" {
		return invalidInvocationf("--hessian requires a decomposition tool (--tool-command)")
	}
	if inv.ToleranceCm1 < 0 {
		return invalidInvocationf("frequency tolerance must be non-negative (got %g)", inv.ToleranceCm1)
	}
	if inv.TopN < 0 {
		return invalidInvocationf("top-n must be non-negative (got %d)", inv.TopN)
	}
	switch inv.UnmatchedPolicy {
	case match.PolicyDrop, match.PolicyIncludeFlagged:
	default:
		return invalidInvocationf("invalid unmatched-mode policy %q", inv.UnmatchedPolicy)
	}
	switch inv.Format {
	case export.FormatText, export.FormatSpreadsheet, export.FormatCustomMarkup:
	default:
		return invalidInvocationf("invalid export format %q", inv.Format)
	}
	if inv.FreqRange != nil && inv.FreqRange.Low > inv.FreqRange.High {
		return invalidInvocationf("frequency range low %g exceeds high %g", inv.FreqRange.Low, inv.FreqRange.High)
	}
	return nil
}

// predicates materializes the invocation's filters.
func (inv *Invocation) predicates() []summary.Predicate {
	var preds []summary.Predicate
	if inv.FreqRange != nil {
		preds = append(preds, *inv.FreqRange)
	}
	if len(inv.FrequenciesCm1) > 0 {
		preds = append(preds, summary.FrequencySet{FrequenciesCm1: inv.FrequenciesCm1})
	}
	for _, group := range inv.AtomGroups {
		preds = append(preds, summary.AtomGroup{Atoms: group, AnyRank: inv.AtomsAnyRank})
	}
	return preds
}

// ParseFrequencyRange parses "LOW-HIGH" (inclusive bounds).
func ParseFrequencyRange(raw string) (*summary.FrequencyRange, error) {
	low, high, ok := strings.Cut(strings.TrimSpace(raw), "-")
	if !ok {
		return nil, invalidInvocationf("invalid frequency range %q (expected LOW-HIGH)", raw)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(low), 64)
	if err != nil {
		return nil, invalidInvocationf("invalid frequency range bound %q", low)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(high), 64)
	if err != nil {
		return nil, invalidInvocationf("invalid frequency range bound %q", high)
	}
	if lo > hi {
		return nil, invalidInvocationf("frequency range low %g exceeds high %g", lo, hi)
	}
	return &summary.FrequencyRange{Low: lo, High: hi}, nil
}

// ParseFrequencyList parses a comma-separated list of discrete frequencies.
func ParseFrequencyList(raw string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, invalidInvocationf("invalid frequency %q", part)
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, invalidInvocationf("no frequencies in %q", raw)
	}
	return out, nil
}

// ParseAtomGroups parses comma-separated atom groups with space-separated
// labels, e.g. "C1 H2, N3 C4".
func ParseAtomGroups(raw string) ([][]string, error) {
	var groups [][]string
	for _, part := range strings.Split(raw, ",") {
		atoms := strings.Fields(part)
		if len(atoms) == 0 {
			continue
		}
		groups = append(groups, atoms)
	}
	if len(groups) == 0 {
		return nil, invalidInvocationf("no atom groups in %q", raw)
	}
	return groups, nil
}

// ExitCodeFor maps an error to the semantic exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}
	if errors.Is(err, mode.ErrNoModes) || errors.Is(err, mode.ErrDuplicateMode) || errors.Is(err, mode.ErrExportWrite) {
		return ExitAnalysisFailure
	}
	return ExitInternalError
}
