// Package cli implements the fadenav command line.
package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/go-drift/fadenav/cmd/fadenav/internal/config"
	"github.com/go-drift/fadenav/pkg/errors"
	"github.com/go-drift/fadenav/pkg/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Config    string
	Dir       string
	LogLevel  string
	LogFormat string
	Verbose   bool
}

// ValidLogFormats defines the allowed log formats.
var ValidLogFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the fadenav CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fadenav",
		Short: "Single-screen fade router demo",
		Long: `fadenav shows one screen at a time and fades between them.

Screens come from fadenav.yaml or fadenav.toml in the working directory,
or from --config. Without a config file a built-in three-screen demo runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.LogFormat != "" && !slices.Contains(ValidLogFormats, opts.LogFormat) {
				return fmt.Errorf("invalid log format %q: must be one of %v", opts.LogFormat, ValidLogFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "config file (fadenav.yaml or fadenav.toml)")
	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", ".", "directory searched for the config file and go.mod")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (text|json)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging with stack traces")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))

	return cmd
}

// loadConfig resolves the demo configuration for opts.
func loadConfig(opts *RootOptions) (*config.Resolved, error) {
	dir := opts.Dir
	if dir == "" || dir == "." {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	cfg, err := config.Resolve(dir, opts.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Flags win over the config file.
func newLogger(opts *RootOptions, cfg *config.Resolved, out io.Writer) logging.Logger {
	level := firstNonEmpty(opts.LogLevel, cfg.LogLevel, "info")
	if opts.Verbose {
		level = "debug"
	}
	logger := logging.New(logging.Config{
		Level:  level,
		Format: firstNonEmpty(opts.LogFormat, cfg.LogFormat, "text"),
		Output: out,
	})
	return logger.With(logging.String("app", cfg.AppName))
}

// installErrorHandler routes framework errors to logger until the returned
// function is called.
func installErrorHandler(logger logging.Logger, verbose bool) (restore func()) {
	prev := errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: verbose})
	return func() { errors.SetHandler(prev) }
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
