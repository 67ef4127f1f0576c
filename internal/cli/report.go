package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	From    string
	To      string
	Student string
	Course  string
}

// ReportEntry is the JSON shape for one report row.
type ReportEntry struct {
	TimeIn    string `json:"time_in"`
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Method    string `json:"method"`
	Course    string `json:"course,omitempty"`
}

// ReportResult is the JSON shape for the report command.
type ReportResult struct {
	Rows  []ReportEntry `json:"rows"`
	Count int           `json:"count"`
}

func reportEntry(r store.ReportRow) ReportEntry {
	return ReportEntry{
		TimeIn:    r.TimeIn.Format(timeLayout),
		StudentID: r.StudentID,
		Name:      r.Name,
		Date:      r.Date.Format(dayLayout),
		Method:    r.Method,
		Course:    r.CourseName,
	}
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show filtered attendance records",
		Long: `Show attendance records, newest check-in first.

Filters combine: a date range, a student id and a course id can all be
set at once. Dates are inclusive and use the YYYY-MM-DD form.

Examples:
  rollcall report
  rollcall report --from 2026-03-01 --to 2026-03-31
  rollcall report --student S001 --course CS101`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	addReportFilterFlags(cmd, opts)

	return cmd
}

// addReportFilterFlags registers the shared report/export filter flags.
func addReportFilterFlags(cmd *cobra.Command, opts *ReportOptions) {
	cmd.Flags().StringVar(&opts.From, "from", "", "earliest date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.To, "to", "", "latest date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Student, "student", "", "only this student id")
	cmd.Flags().StringVar(&opts.Course, "course", "", "only this course id")
}

// reportFilter validates the filter flags and converts them to a
// store filter.
func reportFilter(opts *ReportOptions) (store.ReportFilter, error) {
	for _, d := range []struct{ flag, value string }{
		{"from", opts.From},
		{"to", opts.To},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse(dayLayout, d.value); err != nil {
			return store.ReportFilter{}, fmt.Errorf("invalid --%s date %q: expected YYYY-MM-DD", d.flag, d.value)
		}
	}

	return store.ReportFilter{
		StartDate: opts.From,
		EndDate:   opts.To,
		StudentID: opts.Student,
		CourseID:  opts.Course,
	}, nil
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	filter, err := reportFilter(opts)
	if err != nil {
		return inputFailure(formatter, err)
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

	if opts.Format == "json" {
		entries := make([]ReportEntry, len(rows))
		for i, r := range rows {
			entries[i] = reportEntry(r)
		}
		return outputJSON(cmd.OutOrStdout(), ReportResult{Rows: entries, Count: len(entries)})
	}

	w := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No attendance records match.")
		return nil
	}

	fmt.Fprintf(w, "%-20s %-10s %-24s %-10s %s\n", "DATE/TIME", "STUDENT", "NAME", "METHOD", "COURSE")
	for _, r := range rows {
		fmt.Fprintf(w, "%-20s %-10s %-24s %-10s %s\n",
			r.TimeIn.Format(timeLayout), r.StudentID, r.Name, r.Method, orDash(r.CourseName))
	}
	fmt.Fprintf(w, "\n%d record(s)\n", len(rows))
	return nil
}
