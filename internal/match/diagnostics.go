package match

import "sort"

// DiagnosticKind is the stable discriminator for Diagnostic entries.
type DiagnosticKind string

const (
	// DiagnosticAmbiguousMatch records that two or more intensity candidates
	// were equidistant within tolerance and the lowest mode index was chosen.
	DiagnosticAmbiguousMatch DiagnosticKind = "AmbiguousMatch"
	// DiagnosticUnmatchedMode records a decomposition mode whose nearest
	// intensity candidate exceeded the tolerance (or whose pool was empty).
	DiagnosticUnmatchedMode DiagnosticKind = "UnmatchedMode"
)

// Diagnostic is one non-fatal notice from the matching stage.
//
// Diagnostics are observational only: they must never affect the assignment,
// and they carry enough to audit it. For ambiguous matches, ChosenModeIndex
// and RejectedModeIndexes identify every candidate that tied; for unmatched
// modes, NearestDistanceCm1 is the rejected minimal distance (negative when
// the candidate pool was already empty).
type Diagnostic struct {
	Kind                DiagnosticKind
	ModeIndex           int     // decomposition mode
	FrequencyCm1        float64 // decomposition frequency
	ChosenModeIndex     int     // intensity record chosen (ambiguous only)
	RejectedModeIndexes []int   // tied candidates not chosen, sorted ascending
	NearestDistanceCm1  float64
}

// Report is what every completed run must surface: how many modes aligned,
// how many did not, and every ambiguity that was resolved on the way.
type Report struct {
	Matched     int
	Unmatched   int
	Diagnostics []Diagnostic
}

// Canonicalize sorts diagnostics into a total order so reports are stable
// regardless of how they were collected.
func (r *Report) Canonicalize() {
	if r == nil {
		return
	}
	for i := range r.Diagnostics {
		if len(r.Diagnostics[i].RejectedModeIndexes) == 0 {
			r.Diagnostics[i].RejectedModeIndexes = nil
			continue
		}
		rejected := make([]int, len(r.Diagnostics[i].RejectedModeIndexes))
		copy(rejected, r.Diagnostics[i].RejectedModeIndexes)
		sort.Ints(rejected)
		r.Diagnostics[i].RejectedModeIndexes = rejected
	}
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		a, b := r.Diagnostics[i], r.Diagnostics[j]
		if a.ModeIndex != b.ModeIndex {
			return a.ModeIndex < b.ModeIndex
		}
		if a.Kind != b.Kind {
			return kindOrder(a.Kind) < kindOrder(b.Kind)
		}
		return a.ChosenModeIndex < b.ChosenModeIndex
	})
}

func kindOrder(k DiagnosticKind) int {
	switch k {
	case DiagnosticAmbiguousMatch:
		return 10
	case DiagnosticUnmatchedMode:
		return 20
	default:
		return 1000
	}
}
