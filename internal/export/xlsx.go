package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/roach88/rollcall/internal/store"
)

// sheetName is the single worksheet every exported workbook carries.
const sheetName = "Attendance"

// columnWidths sizes each report column, in Excel character units.
var columnWidths = []float64{20, 12, 24, 14, 28}

// WriteXLSX writes rows as an Excel workbook with a single styled
// Attendance sheet.
func WriteXLSX(w io.Writer, rows []store.ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create worksheet: %w", err)
	}
	f.SetActiveSheet(idx)
	// Drop the default sheet so the workbook opens on the report.
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, name := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, name)
	}
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(reportHeader), 1)
	f.SetCellStyle(sheetName, "A1", lastHeaderCell, headerStyle)

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, width)
	}

	for r, row := range rows {
		for c, value := range rowCells(row) {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
