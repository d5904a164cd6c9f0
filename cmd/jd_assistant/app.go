package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jd-assistant/internal/backend"
	"github.com/jonathan/jd-assistant/internal/config"
	"github.com/jonathan/jd-assistant/internal/observability"
	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/session"
	"github.com/jonathan/jd-assistant/internal/store"
	"github.com/jonathan/jd-assistant/internal/types"
)

// app carries state shared by every command of one invocation.
type app struct {
	configPath  string
	storePath   string
	databaseURL string
	logLevel    string
	logFormat   string
	verbose     bool
	timeout     int

	cfg    config.Config
	logger *slog.Logger

	// clipboard overrides the system clipboard.
	clipboard results.Clipboard
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "jd_assistant",
		Short: "Job application assistant",
		Long: `jd_assistant keeps one résumé on the analysis backend and matches job
descriptions against it, producing a match score, missing skills and a drafted
email or direct message to the recruiter.

Configuration can be loaded from a JSON file using --config. Command-line flags
override config file values, which override environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to config.json file")
	flags.StringVar(&a.storePath, "store", "", "Path of the JSON state file (defaults to JD_ASSISTANT_STORE or the user config dir)")
	flags.StringVar(&a.databaseURL, "db-url", "", "PostgreSQL connection URL for client state (defaults to DATABASE_URL env var)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: text or json")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Print detailed debug information")
	flags.IntVar(&a.timeout, "timeout", 0, "Timeout in seconds for one-shot commands (0 uses the config default)")

	root.AddCommand(
		newPopupCmd(a),
		newStatusCmd(a),
		newUploadCmd(a, "upload", "Upload a résumé PDF"),
		newUploadCmd(a, "replace", "Replace the stored résumé PDF"),
		newInspectCmd(a),
		newAnalyzeCmd(a),
		newShowCmd(a),
		newClearCmd(a),
		newCopyCmd(a),
		newConfigCmd(a),
		newPingCmd(a),
	)
	return root
}

// init resolves the configuration: flags > config file > environment > defaults.
func (a *app) init(cmd *cobra.Command) error {
	var cfg config.Config
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.StorePath = a.storePath
		cfg.DatabaseURL = ""
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = a.databaseURL
		cfg.StorePath = ""
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = a.timeout
	}

	defaults := config.FromEnv()
	if defaults.LogLevel == "" {
		defaults.LogLevel = "info"
	}
	if defaults.LogFormat == "" {
		defaults.LogFormat = "text"
	}
	cfg = cfg.MergeWithDefaults(defaults)
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = observability.InitLogger(cfg.LogLevel, cfg.LogFormat)
	return nil
}

// commandContext returns the context for a one-shot command, bounded by the
// configured timeout.
func (a *app) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := a.cfg.Timeout(); timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// openSession opens the configured store and a session on it. The returned
// func closes the store.
func (a *app) openSession(ctx context.Context) (*session.Session, func(), error) {
	kv, err := store.Open(ctx, store.Options{DatabaseURL: a.cfg.DatabaseURL, Path: a.cfg.StorePath})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	s := session.New(kv, session.Options{
		Backend:   backend.DefaultOptions(),
		Clipboard: a.clipboard,
		Logger:    a.logger,
	})
	closeFn := func() {
		if err := kv.Close(); err != nil {
			a.logger.Warn("failed to close store", "error", err)
		}
	}
	return s, closeFn, nil
}

// statusError turns a failed action's status message into the command error.
// Validation and backend messages are returned verbatim.
func statusError(msg types.StatusMessage, err error) error {
	if !msg.Visible() || msg.Kind != types.StatusError {
		return err
	}
	return errors.New(strings.TrimPrefix(msg.Text, "Error: "))
}
