package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/store"
)

// BackupPruneOptions holds flags for the backup prune command.
type BackupPruneOptions struct {
	*RootOptions
	Days int
}

// BackupResult is the JSON shape for the backup command.
type BackupResult struct {
	Path string `json:"path"`
}

// PruneResult is the JSON shape for the backup prune command.
type PruneResult struct {
	Removed int `json:"removed"`
	Days    int `json:"days"`
}

// NewBackupCommand creates the backup command group.
func NewBackupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup [target]",
		Short: "Copy the database to a backup file",
		Long: `Copy the database to a backup file.

Pending writes are flushed into the main file first, so the copy is a
complete snapshot on its own. Without a target the backup goes to the
configured backup directory under a timestamped name.

Examples:
  rollcall backup
  rollcall backup /mnt/usb/attendance-backup.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackup(rootOpts, args, cmd)
		},
	}

	cmd.AddCommand(newBackupPruneCommand(rootOpts))

	return cmd
}

func runBackup(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	env, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer env.close()

	var target string
	if len(args) == 1 {
		target = args[0]
	} else {
		if err := os.MkdirAll(env.cfg.Backup.Dir, 0o755); err != nil {
			msg := fmt.Sprintf("failed to create backup directory: %v", err)
			_ = formatter.Error(string(store.ErrCodeIOFailure), msg, nil)
			return NewExitError(ExitCommandError, msg)
		}
		target = filepath.Join(env.cfg.Backup.Dir, backupName(time.Now()))
	}

	if err := env.st.Backup(cmd.Context(), target); err != nil {
		return storeFailure(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(BackupResult{Path: target})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Backed up database to %s\n", target)
	return nil
}

// backupName returns the timestamped file name pruning recognizes.
func backupName(now time.Time) string {
	return fmt.Sprintf("attendance-%s.db", now.Format("20060102-150405"))
}

func isBackupName(name string) bool {
	return strings.HasPrefix(name, "attendance-") && strings.HasSuffix(name, ".db")
}

func newBackupPruneCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BackupPruneOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old backups from the backup directory",
		Long: `Delete backups older than the retention window.

Only timestamped backup files created by the backup command are
considered. The window comes from backup.retention_days in the config
unless --days overrides it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupPrune(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Days, "days", 0, "retention in days (0 uses the configured retention_days)")

	return cmd
}

func runBackupPrune(opts *BackupPruneOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	setupLogging(opts.Verbose)

	// Pruning never touches the database, so the store stays closed.
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	days := opts.Days
	if days == 0 {
		days = cfg.Backup.RetentionDays
	}
	if days <= 0 {
		return inputFailure(formatter, fmt.Errorf("no retention window: set backup.retention_days or pass --days"))
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	removed, err := pruneBackups(cfg.Backup.Dir, cutoff)
	if err != nil {
		_ = formatter.Error(string(store.ErrCodeIOFailure), err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	if opts.Format == "json" {
		return formatter.Success(PruneResult{Removed: removed, Days: days})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d backup(s) older than %d day(s)\n", removed, days)
	return nil
}

// pruneBackups deletes backup files last modified before cutoff. A
// missing directory means there is nothing to prune.
func pruneBackups(dir string, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read backup directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !isBackupName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return removed, fmt.Errorf("failed to stat backup: %w", err)
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove backup: %w", err)
		}
		removed++
	}
	return removed, nil
}
