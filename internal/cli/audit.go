package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/store"
)

// AuditOptions holds flags for the audit command.
type AuditOptions struct {
	*RootOptions
	Limit int
}

// AuditRow is the JSON shape for one audit entry.
type AuditRow struct {
	ID        string `json:"id"`
	Op        string `json:"op"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}

func auditRow(e store.AuditEntry) AuditRow {
	return AuditRow{
		ID:        e.ID,
		Op:        e.Op,
		Detail:    e.Detail,
		CreatedAt: e.CreatedAt.Format(timeLayout),
	}
}

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AuditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent data changes",
		Long: `Show the audit history, newest first.

Every mutating operation leaves an entry: adds, deletes, check-ins,
check-outs, restores and resets.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum entries to show (0 shows all)")

	return cmd
}

func runAudit(opts *AuditOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	env, err := openEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.close()

	entries, err := env.st.AuditLog(cmd.Context(), opts.Limit)
	if err != nil {
		return storeFailure(formatter, err)
	}

	if opts.Format == "json" {
		rows := make([]AuditRow, len(entries))
		for i, e := range entries {
			rows[i] = auditRow(e)
		}
		return outputJSON(cmd.OutOrStdout(), rows)
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No audit entries.")
		return nil
	}

	fmt.Fprintf(w, "%-20s %-22s %s\n", "WHEN", "OP", "DETAIL")
	for _, e := range entries {
		fmt.Fprintf(w, "%-20s %-22s %s\n", e.CreatedAt.Format(timeLayout), e.Op, orDash(e.Detail))
	}
	return nil
}
