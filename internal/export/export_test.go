package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"vibmerge/internal/mode"
)

func sampleTable() mode.SummaryTable {
	ir := 5.0
	return mode.NewSummaryTable([]mode.MergedMode{
		{
			ModeIndex:    1,
			FrequencyCm1: 100.02,
			IRIntensity:  &ir,
			ContributionCounts: mode.CountContributions([]mode.ContributionRecord{
				{Type: mode.Bond, Atoms: []string{"C1", "H2"}, Weight: 0.9},
				{Type: mode.Angle, Atoms: []string{"H2", "C1", "H3"}, Weight: 0.1},
			}),
			TopContributions: []mode.ContributionRecord{
				{Type: mode.Bond, Atoms: []string{"C1", "H2"}, Weight: 0.9},
				{Type: mode.Angle, Atoms: []string{"H2", "C1", "H3"}, Weight: 0.1},
			},
		},
		{ModeIndex: 2, FrequencyCm1: 300.00},
	})
}

func TestRenderText(t *testing.T) {
	got, err := Render(sampleTable(), FormatText)
	require.NoError(t, err)
	want := "Mode\tFreq_cm-1\tIR_Intensity_km/mol\tBOND_Contribs\tANGLE_Contribs\tOUT_Contribs\tTORSION_Contribs\tTop_Contributions\n" +
		"1\t100.02\t5.00\t1\t1\t0\t0\tBOND(C1 H2):0.90; ANGLE(H2 C1 H3):0.10\n" +
		"2*\t300.00\tn/a\t0\t0\t0\t0\t\n"
	require.Equal(t, want, string(got))
}

func TestRenderMarkup(t *testing.T) {
	got, err := Render(sampleTable(), FormatCustomMarkup)
	require.NoError(t, err)
	want := "| Mode | Freq_cm-1 | IR_Intensity_km/mol | BOND_Contribs | ANGLE_Contribs | OUT_Contribs | TORSION_Contribs | Top_Contributions |\n" +
		"| --- | --- | --- | --- | --- | --- | --- | --- |\n" +
		"| 1 | 100.02 | 5.00 | 1 | 1 | 0 | 0 | BOND(C1 H2):0.90; ANGLE(H2 C1 H3):0.10 |\n" +
		"| 2* | 300.00 | n/a | 0 | 0 | 0 | 0 |  |\n"
	require.Equal(t, want, string(got))
}

func TestRender_CellContentIdenticalAcrossFormats(t *testing.T) {
	table := sampleTable()

	data, err := Render(table, FormatSpreadsheet)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	sheetRows, err := f.GetRows(sheetName)
	require.NoError(t, err)

	want := append([][]string{Columns}, cellRows(table)...)
	require.Len(t, sheetRows, len(want))
	for i, row := range want {
		for j, cell := range row {
			if cell == "" {
				// Trailing empty cells are not materialized by the reader.
				continue
			}
			require.Equal(t, cell, sheetRows[i][j], "row %d col %d", i, j)
		}
	}
}

func TestRender_Idempotent(t *testing.T) {
	table := sampleTable()
	for _, format := range []Format{FormatText, FormatCustomMarkup, FormatSpreadsheet} {
		first, err := Render(table, format)
		require.NoError(t, err, "format %s", format)
		second, err := Render(table, format)
		require.NoError(t, err, "format %s", format)
		require.Equal(t, first, second, "format %s must render byte-identically", format)
	}
}

func TestExport_WritesFile(t *testing.T) {
	table := sampleTable()
	path := filepath.Join(t.TempDir(), "summary.txt")
	require.NoError(t, Export(table, FormatText, path))

	rendered, err := Render(table, FormatText)
	require.NoError(t, err)
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, rendered, onDisk)
}

func TestExport_ReExportIsByteIdentical(t *testing.T) {
	table := sampleTable()
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	require.NoError(t, Export(table, FormatText, first))
	require.NoError(t, Export(table, FormatText, second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestExport_UnwritablePath(t *testing.T) {
	err := Export(sampleTable(), FormatText, filepath.Join(t.TempDir(), "missing", "deep", "summary.txt"))
	require.Error(t, err)
	require.ErrorIs(t, err, mode.ErrExportWrite)

	var wErr *WriteError
	require.ErrorAs(t, err, &wErr)
	require.NotNil(t, wErr.Err, "the underlying cause is surfaced verbatim")
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{
		"text":            FormatText,
		"SPREADSHEET":     FormatSpreadsheet,
		" custom_markup ": FormatCustomMarkup,
	} {
		got, err := ParseFormat(raw)
		require.NoError(t, err, "input %q", raw)
		require.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	require.Error(t, err)
}
