package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/export"
	"github.com/roach88/rollcall/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Report ReportOptions
	Out    string
}

// ExportResult is the JSON shape for the export command.
type ExportResult struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}
	opts.Report.RootOptions = rootOpts

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export attendance records to CSV or XLSX",
		Long: `Export attendance records to a file.

The format follows the file extension: .csv or .xlsx. When --out is
omitted a timestamped CSV is written to the configured export
directory. The same filters as the report command apply.

Examples:
  rollcall export
  rollcall export --out march.xlsx --from 2026-03-01 --to 2026-03-31
  rollcall export --out s001.csv --student S001`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "output file (.csv or .xlsx)")
	addReportFilterFlags(cmd, &opts.Report)

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	filter, err := reportFilter(&opts.Report)
	if err != nil {
		return inputFailure(formatter, err)
	}
	if opts.Out != "" {
		switch ext := strings.ToLower(filepath.Ext(opts.Out)); ext {
		case ".csv", ".xlsx":
		default:
			return inputFailure(formatter, fmt.Errorf("unsupported export format %q: expected .csv or .xlsx", ext))
		}
	}

	env, err := openEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.close()

	rows, err := env.st.AttendanceReport(cmd.Context(), filter)
	if err != nil {
		return storeFailure(formatter, err)
	}

	out := opts.Out
	if out == "" {
		name := fmt.Sprintf("attendance-report-%s.csv", time.Now().Format("20060102-150405"))
		out = filepath.Join(env.cfg.Export.Dir, name)
	}

	if err := export.WriteFile(out, rows); err != nil {
		_ = formatter.Error(string(store.ErrCodeIOFailure), err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	if opts.Format == "json" {
		return formatter.Success(ExportResult{Path: out, Rows: len(rows)})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s) to %s\n", len(rows), out)
	return nil
}
