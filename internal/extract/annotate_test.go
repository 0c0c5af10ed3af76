package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"vibmerge/internal/mode"
)

func TestRewriteIntensities(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "molecule.nma")
	original := `Mode 1:  100.02 cm-1 (IR: 4.80)
 +0.900 ( 90.0%) BOND C1 H2
Mode 2:  300.00 cm-1 (IR: 11.00)
`
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	records := []mode.IntensityRecord{
		{ModeIndex: 6, FrequencyCm1: 100.00, IRIntensity: 5.00},
		{ModeIndex: 7, FrequencyCm1: 250.03, IRIntensity: 12.00},
	}
	res, err := RewriteIntensities(path, records, 0.05, true)
	require.NoError(t, err)
	require.Equal(t, 1, res.Replaced, "only mode 1 is within tolerance")
	require.Equal(t, []int{7}, res.LeftoverModeIndexes)

	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `Mode 1:  100.02 cm-1 (IR: 5.00)
 +0.900 ( 90.0%) BOND C1 H2
Mode 2:  300.00 cm-1 (IR: 11.00)
`
	require.Equal(t, want, string(rewritten), "matched header rewritten, everything else untouched")

	backup, err := os.ReadFile(path + ".orig")
	require.NoError(t, err)
	require.Equal(t, original, string(backup))
}

func TestRewriteIntensities_ConsumesEachRecordOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "molecule.nma")
	original := `Mode 1:  100.00 cm-1 (IR: 1.00)
Mode 2:  100.01 cm-1 (IR: 2.00)
`
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	records := []mode.IntensityRecord{{ModeIndex: 1, FrequencyCm1: 100.00, IRIntensity: 9.00}}
	res, err := RewriteIntensities(path, records, 0.05, false)
	require.NoError(t, err)
	require.Equal(t, 1, res.Replaced, "one record cannot rewrite two headers")
	require.Empty(t, res.LeftoverModeIndexes)

	_, err = os.Stat(path + ".orig")
	require.True(t, os.IsNotExist(err), "no backup requested")
}

func TestRewriteIntensities_MissingFile(t *testing.T) {
	_, err := RewriteIntensities(filepath.Join(t.TempDir(), "absent.nma"), nil, 0.05, false)
	require.Error(t, err)
}
