// Package cli provides the command-line interface for the squill client.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/squill/internal/adapter"
	"github.com/leapstack-labs/squill/internal/cli/config"
	"github.com/leapstack-labs/squill/internal/exec"
	"github.com/leapstack-labs/squill/internal/render"
	"github.com/leapstack-labs/squill/internal/repl"
	"github.com/leapstack-labs/squill/internal/session"
)

// Version is set at build time.
var Version = "0.1.0"

type rootOptions struct {
	confFile string
	setOpts  []string
	psetOpts []string
	verbose  int
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "squill",
		Short: "squill - a simple SQL REPL",
		Long: `Squill is an interactive command-line client for SQL databases.

Type SQL statements or backslash commands at the prompt; results are
rendered as tables and paged when they overflow the terminal. The database
connection URL can be passed with --url or set in a JSON configuration file
of the form:

{
  "url": "<URL>"
}

The URL scheme selects the database driver (sqlite:, duckdb:, postgres://).`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.confFile, "conf-file", "c", "", fmt.Sprintf("The full path to a JSON configuration file. It defaults to %s.", config.DefaultConfFile))
	cmd.Flags().StringP("url", "u", "", "The database connection URL.")
	cmd.Flags().StringArrayVarP(&opts.setOpts, "set", "S", nil, "Set state variable NAME to VALUE.")
	cmd.Flags().StringArrayVarP(&opts.psetOpts, "pset", "P", nil, "Set printing state variable NAME to VALUE.")
	cmd.Flags().CountVarP(&opts.verbose, "verbose", "v", "Turn verbose messaging on. The effects of this option are incremental.")
	cmd.Flags().BoolP("version", "V", false, "Show version information.")
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.confFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	logger.Debug("configuration loaded",
		slog.String("url", adapter.Redact(cfg.URL)),
		slog.String("history_file", cfg.HistoryFile))

	settings := session.NewSettings()
	if err := applyStateFlags(settings, opts, cmd.OutOrStdout()); err != nil {
		return err
	}

	if cfg.URL == "" {
		return fmt.Errorf("a database connection URL is required. See the --help option for details")
	}

	conn, err := adapter.New(cfg.URL, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := conn.Connect(ctx, cfg.URL); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", adapter.Redact(cfg.URL), err)
	}
	defer func() { _ = conn.Close() }()

	// History is flushed by Close, which the defer guarantees on every
	// exit path out of the loop.
	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:            cfg.HistoryFile,
		AutoComplete:           repl.NewCompleter(),
		InterruptPrompt:        "^C",
		EOFPrompt:              `\q`,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	sess := session.New(conn)
	sess.Settings = settings

	driver := repl.NewDriver(repl.DriverConfig{
		Session:    sess,
		Executor:   exec.New(conn.DB(), conn.Placeholder, logger),
		Presenter:  render.NewPresenter(),
		Reader:     rl,
		Out:        cmd.OutOrStdout(),
		ErrOut:     cmd.ErrOrStderr(),
		Logger:     logger,
		Terminator: cfg.Terminator,
		Version:    Version,
	})
	return driver.Run(ctx)
}

// applyStateFlags pushes --set/--pset values through the same settings
// code paths as the in-REPL commands, constructed in the form they would
// be issued in the client.
func applyStateFlags(st *session.Settings, opts *rootOptions, out io.Writer) error {
	apply := func(kind string, values []string) error {
		for _, v := range values {
			name, value, ok := strings.Cut(v, "=")
			if !ok || name == "" {
				return fmt.Errorf("a state variable must be expressed as NAME=VALUE, for example --set AUTOCOMMIT=on or --pset pager=off (got %q)", v)
			}
			raw := fmt.Sprintf(`\%s %s %s`, kind, name, value)
			if err := repl.RunStateCommand(st, raw, out); err != nil {
				return err
			}
		}
		return nil
	}

	if err := apply("set", opts.setOpts); err != nil {
		return err
	}
	return apply("pset", opts.psetOpts)
}

// newLogger maps the counted verbose flag onto slog levels: warnings by
// default, info at -v, debug from -vv up.
func newLogger(verbose int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose >= 2:
		level = slog.LevelDebug
	case verbose == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command and returns the process exit code: 0 on a
// normal or confirmed quit, 1 on a fatal configuration error.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
