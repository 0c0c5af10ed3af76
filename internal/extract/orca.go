package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"vibmerge/internal/mode"
)

const (
	irSectionHeader = "IR SPECTRUM"
	irSectionFooter = "Maximum memory used throughout the entire PROP-calculation"
)

// Rows look like: "   6:   1639.47 cm**-1   57.31 ..." (index, frequency,
// unit token, intensity).
var irRowPattern = regexp.MustCompile(`^\s*(\d+):\s*([\d.]+)\s+\S+\s+([\d.]+)`)

// ParseIRSpectrum extracts the IR spectrum table from a quantum-chemistry
// output stream.
//
// The table is delimited by the "IR SPECTRUM" header and either the program's
// memory-usage footer or, when that footer is absent, the next section
// separator (or end of input). Rows that do not match the row grammar are
// skipped; an empty result or a repeated mode index is a fatal input error.
func ParseIRSpectrum(r io.Reader) ([]mode.IntensityRecord, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	start := -1
	for i, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln), irSectionHeader) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("section %q not found in intensity source", irSectionHeader)
	}

	end := len(lines)
	for j := start + 1; j < len(lines); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if strings.Contains(lines[j], irSectionFooter) {
			end = j
			break
		}
		if strings.HasPrefix(trimmed, "****") {
			end = j
			break
		}
	}

	var records []mode.IntensityRecord
	seen := make(map[int]bool)
	for _, ln := range lines[start:end] {
		m := irRowPattern.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		freq, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		ir, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			continue
		}
		if seen[idx] {
			return nil, mode.DuplicateModef("intensity source repeats mode %d", idx)
		}
		seen[idx] = true
		records = append(records, mode.IntensityRecord{ModeIndex: idx, FrequencyCm1: freq, IRIntensity: ir})
	}

	if len(records) == 0 {
		return nil, mode.NoModesf("no rows matched in the %q section", irSectionHeader)
	}
	return records, nil
}

// ReadIntensityFile parses an intensity source file. The handle is released on
// all paths, including parse failure.
func ReadIntensityFile(path string) ([]mode.IntensityRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open intensity source: %w", err)
	}
	defer f.Close()
	records, err := ParseIRSpectrum(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}
