package export

import (
	"strings"

	"vibmerge/internal/mode"
)

// renderMarkup encodes the table in the lightweight pipe markup: a header
// row, an "---" separator row, then one pipe-delimited row per mode.
func renderMarkup(t mode.SummaryTable) []byte {
	var b strings.Builder
	b.WriteString("| ")
	b.WriteString(strings.Join(Columns, " | "))
	b.WriteString(" |\n")
	b.WriteString("|")
	b.WriteString(strings.Repeat(" --- |", len(Columns)))
	b.WriteByte('\n')
	for _, row := range cellRows(t) {
		b.WriteString("| ")
		b.WriteString(strings.Join(row, " | "))
		b.WriteString(" |\n")
	}
	return []byte(b.String())
}
