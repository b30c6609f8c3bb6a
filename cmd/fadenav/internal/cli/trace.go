package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-drift/fadenav/cmd/fadenav/internal/demo"
	"github.com/go-drift/fadenav/pkg/animation"
	"github.com/go-drift/fadenav/pkg/engine"
	"github.com/go-drift/fadenav/pkg/graphics"
	"github.com/go-drift/fadenav/pkg/navigation"
	"github.com/go-drift/fadenav/pkg/platform"
	fadetest "github.com/go-drift/fadenav/pkg/testing"
)

// BackStep is the trace argument that presses the hardware back button.
const BackStep = ":back"

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Frames int
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace [route | :back]...",
		Short: "Print the router events for a scripted session",
		Long: `Run the demo headless on a fake clock and print every router event.

Each argument is a screen to navigate to, or :back to press the hardware
back button. The first two screens are requested back to back, so the
first request is superseded before it lands. Every later step waits for
the fade to settle. After each settled step the visible text is printed.

Examples:
  fadenav trace settings about
  fadenav trace --config fadenav.toml settings about :back :back`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd, opts, args)
		},
	}

	cmd.Flags().IntVar(&opts.Frames, "frames", 600, "frame budget for each step to settle")

	return cmd
}

func runTrace(cmd *cobra.Command, opts *TraceOptions, steps []string) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	logger := newLogger(opts.RootOptions, cfg, cmd.ErrOrStderr())
	defer installErrorHandler(logger, opts.Verbose)()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d screens, %s %s fade\n",
		cfg.AppName, len(cfg.Screens), cfg.Transition.Duration, cfg.CurveName)

	clock := fadetest.NewFakeClock()
	defer animation.SetClock(animation.SetClock(clock))

	app := demo.New(cfg, logger, traceObserver(out))
	runner := engine.New(app.Widget(), engine.Options{})
	runner.Start()
	defer runner.Stop()

	settle := func() error {
		list, err := runner.Settle(opts.Frames, clock.Step)
		if err != nil {
			return fmt.Errorf("trace: %w", err)
		}
		printScreen(out, list)
		return nil
	}
	if err := settle(); err != nil {
		return err
	}

	for i := 0; i < len(steps); i++ {
		step := steps[i]
		if step == BackStep {
			platform.BackButton.Press()
			if app.QuitRequested() {
				fmt.Fprintln(out, "  quit")
				return nil
			}
		} else {
			app.Go(step)
			if i == 0 && len(steps) > 1 && steps[1] != BackStep {
				i++
				app.Go(steps[i])
			}
		}
		if err := settle(); err != nil {
			return err
		}
	}
	return nil
}

// traceObserver prints one line per router event.
func traceObserver(out io.Writer) navigation.Observer {
	return navigation.ObserverFunc(func(kind string, e navigation.RouteEvent) {
		route := string(e.To)
		switch {
		case e.From != "" && e.To != "":
			route = string(e.From) + " -> " + string(e.To)
		case e.To == "":
			route = string(e.From)
		}
		if e.Generation > 0 {
			route += fmt.Sprintf(" #%d", e.Generation)
		}
		fmt.Fprintf(out, "  %-9s %s\n", kind, route)
	})
}

func printScreen(out io.Writer, list *graphics.DisplayList) {
	texts := list.Texts()
	shown := "(empty)"
	if len(texts) > 0 {
		shown = strings.Join(texts, " | ")
	}
	fmt.Fprintf(out, "  %-9s %s\n", "screen", shown)
}
