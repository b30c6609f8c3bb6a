package testing

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/go-drift/fadenav/pkg/animation"
	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/errors"
	"github.com/go-drift/fadenav/pkg/graphics"
	"github.com/go-drift/fadenav/pkg/platform"
)

// FrameDuration is the fake-clock step PumpAndSettle and PumpFor use per frame.
const FrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = stderrors.New("PumpAndSettle timed out: framework did not settle")

// WidgetTester provides isolated widget testing without a host.
// It drives the same dispatch, animation, build and paint phases as a host
// but uses a fake clock and a recording canvas.
type WidgetTester struct {
	buildOwner  *core.BuildOwner
	root        core.Element
	clock       *FakeClock
	prevClock   animation.Clock
	queue       *platform.DispatchQueue
	prevHandler errors.ErrorHandler
	buildErrors []*errors.BuildError
}

// NewWidgetTester creates a tester with a fresh fake clock and dispatch
// queue. Call Cleanup() when done, or use NewWidgetTesterWithT() instead.
func NewWidgetTester() *WidgetTester {
	clk := NewFakeClock()
	t := &WidgetTester{
		buildOwner: core.NewBuildOwner(),
		clock:      clk,
		queue:      platform.NewDispatchQueue(nil),
	}
	t.prevClock = animation.SetClock(clk)
	platform.RegisterDispatch(t.queue.Post)
	t.prevHandler = errors.SetHandler(&captureHandler{tester: t})
	return t
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree and restores the animation clock, the dispatcher
// and the error handler.
func (t *WidgetTester) Cleanup() {
	t.unmount()
	animation.SetClock(t.prevClock)
	platform.RegisterDispatch(nil)
	errors.SetHandler(t.prevHandler)
}

// Clock returns the fake clock for advancing time in tests.
func (t *WidgetTester) Clock() *FakeClock {
	return t.clock
}

// PumpWidget mounts (or remounts) a widget and runs one frame. A panic
// raised while mounting, such as a configuration error, is returned as an
// error and leaves no tree mounted.
func (t *WidgetTester) PumpWidget(widget core.Widget) (err error) {
	t.unmount()
	err = capture(func() {
		t.root = core.MountRoot(widget, t.buildOwner)
	})
	if err != nil {
		t.root = nil
		return err
	}
	return t.Pump()
}

// UpdateWidget replaces the root widget in place, keeping state, the way a
// parent rebuild would. Widgets of another type are remounted.
func (t *WidgetTester) UpdateWidget(widget core.Widget) error {
	if t.root == nil || reflect.TypeOf(t.root.Widget()) != reflect.TypeOf(widget) {
		return t.PumpWidget(widget)
	}
	if err := capture(func() {
		t.root.Update(widget)
		t.root.RebuildIfNeeded()
	}); err != nil {
		return err
	}
	return t.Pump()
}

// Pump runs a single frame: dispatches, tickers, then build.
func (t *WidgetTester) Pump() error {
	return capture(func() {
		t.queue.Drain()
		animation.StepTickers()
		t.buildOwner.FlushBuild()
	})
}

// PumpFor advances the clock by d in FrameDuration steps, pumping a frame
// after each step.
func (t *WidgetTester) PumpFor(d time.Duration) error {
	for d > 0 {
		step := min(FrameDuration, d)
		t.clock.Advance(step)
		d -= step
		if err := t.Pump(); err != nil {
			return err
		}
	}
	return nil
}

// PumpAndSettle runs frames until the framework is idle or the timeout
// is reached. Each frame advances the fake clock by FrameDuration.
// Returns ErrSettleTimeout if the framework does not settle within timeout.
func (t *WidgetTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.needsWork() {
			return nil
		}
		t.clock.Step()
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}

func (t *WidgetTester) needsWork() bool {
	return t.buildOwner.NeedsWork() ||
		animation.HasActiveTickers() ||
		t.queue.Len() > 0
}

// Dispatch queues a callback for the next frame, mirroring platform.Dispatch.
func (t *WidgetTester) Dispatch(fn func()) {
	t.queue.Post(fn)
}

// PressBack delivers a hardware back signal through platform.BackButton and
// reports whether it was consumed.
func (t *WidgetTester) PressBack() bool {
	return platform.BackButton.Press()
}

// RootElement returns the root element of the mounted tree.
func (t *WidgetTester) RootElement() core.Element {
	return t.root
}

// DisplayList paints the current tree.
func (t *WidgetTester) DisplayList() *graphics.DisplayList {
	return core.Record(t.root)
}

// BuildErrors returns the build panics recovered since the tester was
// created.
func (t *WidgetTester) BuildErrors() []*errors.BuildError {
	return t.buildErrors
}

// Find evaluates a finder against the current element tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(t.root),
		finder:   finder,
	}
}

func (t *WidgetTester) unmount() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
}

// capture runs fn and converts a panic into an error.
func capture(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}

// captureHandler records build errors for the tester and forwards
// everything to the previous handler.
type captureHandler struct {
	tester *WidgetTester
}

func (h *captureHandler) HandleError(err *errors.Error) {
	if h.tester.prevHandler != nil {
		h.tester.prevHandler.HandleError(err)
	}
}

func (h *captureHandler) HandlePanic(err *errors.PanicError) {
	if h.tester.prevHandler != nil {
		h.tester.prevHandler.HandlePanic(err)
	}
}

func (h *captureHandler) HandleBuildError(err *errors.BuildError) {
	h.tester.buildErrors = append(h.tester.buildErrors, err)
}
