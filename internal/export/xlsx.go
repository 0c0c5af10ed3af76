package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"vibmerge/internal/mode"
)

const sheetName = "Sheet1"

// renderSpreadsheet encodes the table as an xlsx workbook with one sheet.
// Cells are written as the same strings the text formats use, so cell content
// is identical across formats.
func renderSpreadsheet(t mode.SummaryTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheetRow(f, 1, Columns); err != nil {
		return nil, err
	}
	for i, row := range cellRows(t) {
		if err := writeSheetRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheetRow(f *excelize.File, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}
