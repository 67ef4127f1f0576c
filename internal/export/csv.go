package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/roach88/rollcall/internal/store"
)

// WriteCSV writes rows as RFC 4180 CSV with a header line.
func WriteCSV(w io.Writer, rows []store.ReportRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(rowCells(row)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv output: %w", err)
	}
	return nil
}
