package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// StatsResult is the JSON shape for the stats command.
type StatsResult struct {
	StudentID        string         `json:"student_id"`
	Name             string         `json:"name"`
	TotalAttendance  int            `json:"total_attendance"`
	RecentAttendance int            `json:"recent_attendance"`
	MethodCounts     map[string]int `json:"method_counts"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <student-id>",
		Short: "Show attendance statistics for a student",
		Long: `Show attendance statistics for a registered student: lifetime
attendance count, count over the last 30 days, and a breakdown by
verification method.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runStats(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	env, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer env.close()

	student, err := env.st.GetStudent(cmd.Context(), id)
	if err != nil {
		return storeFailure(formatter, err)
	}
	if student == nil {
		return notFound(formatter, "student", id)
	}

	stats, err := env.st.StudentStatistics(cmd.Context(), id)
	if err != nil {
		return storeFailure(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(StatsResult{
			StudentID:        id,
			Name:             student.Name,
			TotalAttendance:  stats.TotalAttendance,
			RecentAttendance: stats.RecentAttendance,
			MethodCounts:     stats.MethodCounts,
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Statistics for %s (%s)\n", id, student.Name)
	fmt.Fprintf(w, "  Total attendance: %d\n", stats.TotalAttendance)
	fmt.Fprintf(w, "  Last 30 days:     %d\n", stats.RecentAttendance)

	if len(stats.MethodCounts) > 0 {
		fmt.Fprintln(w, "  By method:")
		// Sort keys for deterministic output
		methods := make([]string, 0, len(stats.MethodCounts))
		for m := range stats.MethodCounts {
			methods = append(methods, m)
		}
		sort.Strings(methods)
		for _, m := range methods {
			fmt.Fprintf(w, "    %-10s %d\n", m, stats.MethodCounts[m])
		}
	}
	return nil
}
