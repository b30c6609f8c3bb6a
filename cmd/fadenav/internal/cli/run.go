package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/go-drift/fadenav/cmd/fadenav/internal/demo"
	"github.com/go-drift/fadenav/cmd/fadenav/internal/host"
	"github.com/go-drift/fadenav/cmd/fadenav/internal/telemetry"
	"github.com/go-drift/fadenav/pkg/engine"
	"github.com/go-drift/fadenav/pkg/logging"
	"github.com/go-drift/fadenav/pkg/navigation"
	"github.com/go-drift/fadenav/pkg/platform"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Evdev       string
	MetricsAddr string
	Trace       bool
	TraceOut    string
	LogFile     string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo in the terminal",
		Long: `Run the demo router in the terminal.

Number keys follow the links of the current screen, esc or backspace acts
as the hardware back button and q quits. Back on the default screen quits
too.

Examples:
  fadenav run
  fadenav run --config kiosk.toml --metrics-addr :9100
  fadenav run --evdev /dev/input/event3 --trace`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Evdev, "evdev", "", "Linux input device whose back and esc keys press back")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "export one span per navigation")
	cmd.Flags().StringVar(&opts.TraceOut, "trace-out", "fadenav-trace.json", "file receiving spans when --trace is set")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "append logs to this file instead of discarding them")

	return cmd
}

func runRun(ctx context.Context, cmd *cobra.Command, opts *RunOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	// The terminal belongs to the host, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(opts.RootOptions, cfg, logOut)
	defer installErrorHandler(logger, opts.Verbose)()

	observers := []navigation.Observer{navigation.LogObserver{Logger: logger}}

	if opts.MetricsAddr != "" {
		metrics, err := telemetry.NewMetrics()
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		observers = append(observers, metrics.Observer)
		shutdown := metrics.Serve(opts.MetricsAddr, logger)
		defer telemetry.ShutdownWithTimeout(context.Background(), "metrics", shutdown, logger)
	}

	if opts.Trace {
		f, err := os.Create(opts.TraceOut)
		if err != nil {
			return fmt.Errorf("open trace output: %w", err)
		}
		defer f.Close()
		tp, shutdown, err := telemetry.InitTracing(ctx, telemetry.TracingConfig{
			Enabled:     true,
			ServiceName: cfg.AppName,
			Output:      f,
		}, logger)
		if err != nil {
			return err
		}
		defer telemetry.ShutdownWithTimeout(context.Background(), "tracing", shutdown, logger)
		observers = append(observers, navigation.NewTracingObserver(tp))
	}

	app := demo.New(cfg, logger, observers...)
	runner := engine.New(app.Widget(), engine.Options{})
	runner.Start()
	defer runner.Stop()

	if opts.Evdev != "" {
		stop, err := platform.WatchInputDevice(ctx, opts.Evdev)
		if err != nil {
			return err
		}
		defer stop()
	}

	logger.Info(ctx, "starting terminal host",
		logging.String("config", cfg.Path),
		logging.Int("screens", len(cfg.Screens)),
	)

	model := host.New(app, runner, host.DefaultFrameInterval)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal host: %w", err)
	}
	return model.Err()
}
