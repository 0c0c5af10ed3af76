package export

import (
	"fmt"
	"strconv"
	"strings"

	"vibmerge/internal/mode"
)

// Format selects the export encoding.
type Format string

const (
	// FormatText is plain tab-separated text.
	FormatText Format = "text"
	// FormatSpreadsheet is an xlsx workbook.
	FormatSpreadsheet Format = "spreadsheet"
	// FormatCustomMarkup is a lightweight pipe-delimited markup table.
	FormatCustomMarkup Format = "custom_markup"
)

// ParseFormat parses a format name.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatText:
		return FormatText, nil
	case FormatSpreadsheet:
		return FormatSpreadsheet, nil
	case FormatCustomMarkup:
		return FormatCustomMarkup, nil
	default:
		return "", fmt.Errorf("invalid export format %q (expected text|spreadsheet|custom_markup)", raw)
	}
}

// unmatchedCell is rendered in the intensity column of flagged rows; the mode
// cell of such rows carries the unmatchedMark suffix.
const (
	unmatchedCell = "n/a"
	unmatchedMark = "*"
)

// Columns is the fixed export column order. It is shared by every format.
var Columns = []string{
	"Mode",
	"Freq_cm-1",
	"IR_Intensity_km/mol",
	"BOND_Contribs",
	"ANGLE_Contribs",
	"OUT_Contribs",
	"TORSION_Contribs",
	"Top_Contributions",
}

// cellRow renders one merged mode into the shared cell model.
func cellRow(m mode.MergedMode) []string {
	modeCell := strconv.Itoa(m.ModeIndex)
	intensityCell := unmatchedCell
	if m.Matched() {
		intensityCell = fmt.Sprintf("%.2f", *m.IRIntensity)
	} else {
		modeCell += unmatchedMark
	}
	return []string{
		modeCell,
		fmt.Sprintf("%.2f", m.FrequencyCm1),
		intensityCell,
		strconv.Itoa(m.ContributionCounts.Of(mode.Bond)),
		strconv.Itoa(m.ContributionCounts.Of(mode.Angle)),
		strconv.Itoa(m.ContributionCounts.Of(mode.Out)),
		strconv.Itoa(m.ContributionCounts.Of(mode.Torsion)),
		mode.RenderContributions(m.TopContributions),
	}
}

// cellRows renders the whole table, header excluded.
func cellRows(t mode.SummaryTable) [][]string {
	rows := t.Rows()
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, cellRow(r))
	}
	return out
}
