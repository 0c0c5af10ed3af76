package extract

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"vibmerge/internal/mode"
)

// RewriteResult reports what an intensity rewrite changed.
type RewriteResult struct {
	// Replaced counts rewritten mode-header lines.
	Replaced int
	// LeftoverModeIndexes lists intensity records that matched no header,
	// sorted ascending.
	LeftoverModeIndexes []int
}

// RewriteIntensities rewrites a decomposition (NMA) file in place so its
// mode headers carry the authoritative IR intensities instead of the tool's
// fitted values.
//
// Headers are matched by frequency within the given absolute tolerance; each
// intensity record is consumed by at most one header. When backup is true the
// original file is first copied to path+".orig". The rewrite is atomic: on
// failure the original file is left untouched.
func RewriteIntensities(path string, records []mode.IntensityRecord, toleranceCm1 float64, backup bool) (RewriteResult, error) {
	var res RewriteResult

	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("read decomposition file: %w", err)
	}
	if backup {
		if err := os.WriteFile(path+".orig", data, 0o644); err != nil {
			return res, fmt.Errorf("back up decomposition file: %w", err)
		}
	}

	remaining := make([]mode.IntensityRecord, len(records))
	copy(remaining, records)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	for i, ln := range lines {
		m := nmaModePattern.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		freq, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		best := -1
		for j, rec := range remaining {
			if math.Abs(rec.FrequencyCm1-freq) <= toleranceCm1 {
				best = j
				break
			}
		}
		if best < 0 {
			continue
		}
		idx, _ := strconv.Atoi(m[1])
		lines[i] = fmt.Sprintf("Mode %d:  %.2f cm-1 (IR: %.2f)", idx, freq, remaining[best].IRIntensity)
		remaining = append(remaining[:best], remaining[best+1:]...)
		res.Replaced++
	}

	for _, rec := range remaining {
		res.LeftoverModeIndexes = append(res.LeftoverModeIndexes, rec.ModeIndex)
	}
	sort.Ints(res.LeftoverModeIndexes)

	if err := writeFileAtomic(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return res, fmt.Errorf("rewrite decomposition file: %w", err)
	}
	return res, nil
}

// writeFileAtomic writes via a temp file and rename so a failed write never
// leaves a truncated file behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	_ = tmp.Sync() // best-effort durability
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
