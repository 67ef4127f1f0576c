// Package export renders attendance report rows into the file formats
// the front desk hands to administrators. CSV and XLSX share the same
// five-column layout; the attendance date is folded into the Date/Time
// column rather than repeated on its own.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/rollcall/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

// reportHeader is the column layout shared by every export format.
var reportHeader = []string{"Date/Time", "Student ID", "Name", "Method", "Course"}

// rowCells flattens one report row into export columns. Rows without a
// course render as "N/A" so spreadsheet filters have a stable value.
func rowCells(r store.ReportRow) []string {
	course := r.CourseName
	if course == "" {
		course = "N/A"
	}
	return []string{
		r.TimeIn.Format(timeLayout),
		r.StudentID,
		r.Name,
		r.Method,
		course,
	}
}

// WriteFile writes rows to path, picking the format from the file
// extension. The parent directory is created if it does not exist.
func WriteFile(path string, rows []store.ReportRow) error {
	var write func(io.Writer, []store.ReportRow) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		write = WriteCSV
	case ".xlsx":
		write = WriteXLSX
	default:
		return fmt.Errorf("unsupported export format %q (expected .csv or .xlsx)", ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := write(f, rows); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	return nil
}
