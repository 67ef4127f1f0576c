package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/config"
	"github.com/roach88/rollcall/internal/store"
)

// Timestamp layouts shared by command output.
const (
	dayLayout  = "2006-01-02"
	timeLayout = "2006-01-02 15:04:05"
)

// cmdEnv bundles what a command needs once flags are resolved.
type cmdEnv struct {
	cfg config.Config
	st  *store.Store
}

// newFormatter builds the output formatter for a command.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// setupLogging configures the default slog logger from the verbose flag.
func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// loadConfig resolves the effective configuration, applying the --db
// override on top of the config file and environment.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Database.Path = opts.Database
	}
	return cfg, nil
}

// openEnv loads configuration and opens the attendance database,
// creating the database file on first use.
func openEnv(opts *RootOptions) (*cmdEnv, error) {
	setupLogging(opts.Verbose)

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return &cmdEnv{cfg: cfg, st: st}, nil
}

func (e *cmdEnv) close() {
	if err := e.st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// exitCodeFor maps a store error class to a process exit code. Path
// and copy faults are command errors; the rest are data failures.
func exitCodeFor(code store.ErrorCode) int {
	switch code {
	case store.ErrCodeNotFound, store.ErrCodeIOFailure:
		return ExitCommandError
	default:
		return ExitFailure
	}
}

// storeFailure renders a store error through the formatter and wraps
// it with the matching exit code.
func storeFailure(formatter *OutputFormatter, err error) error {
	code := store.ErrCodeUnexpected
	var serr *store.Error
	if errors.As(err, &serr) {
		code = serr.Code
	}
	_ = formatter.Error(string(code), err.Error(), nil)
	return NewExitError(exitCodeFor(code), err.Error())
}

// inputFailure renders an input validation error and fails the command.
func inputFailure(formatter *OutputFormatter, err error) error {
	_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
	return NewExitError(ExitFailure, err.Error())
}

// notFound reports a missing entity and fails the command.
func notFound(formatter *OutputFormatter, what, id string) error {
	msg := fmt.Sprintf("%s %s not found", what, id)
	_ = formatter.Error(string(store.ErrCodeNotFound), msg, nil)
	return NewExitError(ExitFailure, msg)
}

// orDash substitutes "-" for empty optional fields in text tables.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
