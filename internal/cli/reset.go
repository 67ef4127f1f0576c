package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ResetOptions holds flags for the reset command.
type ResetOptions struct {
	*RootOptions
	Yes bool
}

// ResetResult is the JSON shape for the reset command.
type ResetResult struct {
	Cleared bool `json:"cleared"`
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all students, courses and attendance",
		Long: `Delete every student, course and attendance record.

The audit history survives so the wipe itself stays traceable. The
command refuses to run without --yes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm deleting all data")

	return cmd
}

func runReset(opts *ResetOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if !opts.Yes {
		return NewExitError(ExitCommandError, "refusing to delete all data without --yes")
	}

	env, err := openEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.close()

	if err := env.st.Reset(cmd.Context()); err != nil {
		return storeFailure(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(ResetResult{Cleared: true})
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All data deleted")
	return nil
}
