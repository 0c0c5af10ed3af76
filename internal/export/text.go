package export

import (
	"strings"

	"vibmerge/internal/mode"
)

// renderText encodes the table as tab-separated text: one header line, one
// line per row, trailing newline on every line.
func renderText(t mode.SummaryTable) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(Columns, "\t"))
	b.WriteByte('\n')
	for _, row := range cellRows(t) {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
