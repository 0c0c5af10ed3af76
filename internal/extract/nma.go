package extract

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"vibmerge/internal/mode"
)

// Mode headers look like: "Mode 12:  1639.47 cm-1 (IR: 57.31)".
var nmaModePattern = regexp.MustCompile(`^\s*Mode\s+(\d+):\s*([\d.]+)\s*cm-1\s*\(IR:\s*([\d.]+)\)`)

// Contribution rows look like: " +0.472 ( 47.2%) BOND C1 H2". The weight is
// taken from the percentage, which the tool prints at full precision.
var nmaContribPattern = regexp.MustCompile(`^\s*[+-]?([\d.]+)\s+\(\s*([\d.]+)%\)\s+(\w+)\s+(.+)`)

// ParseDecomposition extracts per-mode internal-coordinate breakdowns from a
// decomposition tool (NMA) stream.
//
// Contribution rows belong to the most recent mode header. Rows before the
// first header and rows matching neither grammar are skipped. An empty result
// or a repeated mode index is a fatal input error; an unknown contribution
// type is malformed input.
func ParseDecomposition(r io.Reader) ([]mode.ModeDecomposition, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	var decomps []mode.ModeDecomposition
	seen := make(map[int]bool)
	for _, ln := range lines {
		if m := nmaModePattern.FindStringSubmatch(ln); m != nil {
			idx, _ := strconv.Atoi(m[1])
			freq, _ := strconv.ParseFloat(m[2], 64)
			fitted, _ := strconv.ParseFloat(m[3], 64)
			if seen[idx] {
				return nil, mode.DuplicateModef("decomposition source repeats mode %d", idx)
			}
			seen[idx] = true
			decomps = append(decomps, mode.ModeDecomposition{
				ModeIndex:       idx,
				FrequencyCm1:    freq,
				FittedIntensity: fitted,
			})
			continue
		}

		trimmed := strings.TrimSpace(ln)
		if len(decomps) == 0 || (!strings.HasPrefix(trimmed, "+") && !strings.HasPrefix(trimmed, "-")) {
			continue
		}
		m := nmaContribPattern.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		pct, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		typ, err := mode.ParseContributionType(m[3])
		if err != nil {
			return nil, fmt.Errorf("mode %d: %w", decomps[len(decomps)-1].ModeIndex, err)
		}
		cur := &decomps[len(decomps)-1]
		cur.Contributions = append(cur.Contributions, mode.ContributionRecord{
			Type:   typ,
			Atoms:  strings.Fields(m[4]),
			Weight: pct / 100.0,
		})
	}

	if len(decomps) == 0 {
		return nil, mode.NoModesf("no mode headers matched in decomposition source")
	}
	return decomps, nil
}

// ReadDecompositionFile parses a decomposition (NMA) file. The handle is
// released on all paths, including parse failure.
func ReadDecompositionFile(path string) ([]mode.ModeDecomposition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open decomposition source: %w", err)
	}
	defer f.Close()
	decomps, err := ParseDecomposition(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decomps, nil
}
