package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RestoreOptions holds flags for the restore command.
type RestoreOptions struct {
	*RootOptions
	Yes bool
}

// RestoreResult is the JSON shape for the restore command.
type RestoreResult struct {
	Source string `json:"source"`
}

// NewRestoreCommand creates the restore command.
func NewRestoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RestoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "restore <source>",
		Short: "Replace the database with a backup file",
		Long: `Replace the current database with a backup file.

All current data is overwritten by the backup's contents. The command
refuses to run without --yes.

Example:
  rollcall restore backups/attendance-20260301-090000.db --yes`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm overwriting the current database")

	return cmd
}

func runRestore(opts *RestoreOptions, source string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if !opts.Yes {
		return NewExitError(ExitCommandError, "refusing to overwrite the current database without --yes")
	}

	env, err := openEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.close()

	if err := env.st.Restore(cmd.Context(), source); err != nil {
		return storeFailure(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(RestoreResult{Source: source})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Restored database from %s\n", source)
	return nil
}
