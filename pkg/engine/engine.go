// Package engine runs frames for a widget tree.
//
// A [Runner] owns one tree and the UI thread that drives it. Each frame
// drains callbacks posted through platform.Dispatch, steps animation
// tickers, rebuilds dirty elements and records the tree into a display
// list. Hosts (a terminal, a test, a headless tracer) decide when to call
// [Runner.StepFrame] and what to do with the list.
package engine

import (
	stderrors "errors"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/go-drift/fadenav/pkg/animation"
	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/errors"
	"github.com/go-drift/fadenav/pkg/graphics"
	"github.com/go-drift/fadenav/pkg/platform"
)

// ErrNotSettled is returned by Settle when frames are still needed after
// the frame budget is spent.
var ErrNotSettled = stderrors.New("engine: tree did not settle")

// Options configures a Runner.
type Options struct {
	// ScheduleFrame is called whenever the runner needs a frame: a callback
	// was dispatched, an element was marked dirty or RequestFrame was
	// called. Hosts that render on demand use it to wake their loop. It may
	// be called from any goroutine.
	ScheduleFrame func()
}

// Runner drives frames for a single root widget.
type Runner struct {
	frameLock sync.Mutex

	buildOwner *core.BuildOwner
	root       core.Element
	app        core.Widget
	appChanged bool
	queue      *platform.DispatchQueue
	schedule   func()

	pendingFrameRequest atomic.Bool
	frames              atomic.Uint64
	lastFrame           atomic.Duration
	capturedPanic       *errors.PanicError
}

// New creates a runner for app. The tree is mounted on the first frame.
func New(app core.Widget, opts Options) *Runner {
	r := &Runner{
		buildOwner: core.NewBuildOwner(),
		app:        app,
		schedule:   opts.ScheduleFrame,
	}
	r.queue = platform.NewDispatchQueue(r.notifyPlatform)
	r.buildOwner.OnNeedsFrame = r.notifyPlatform
	return r
}

// Start makes this runner the target of platform.Dispatch.
func (r *Runner) Start() {
	platform.RegisterDispatch(r.Dispatch)
}

// Stop unmounts the tree and detaches from platform.Dispatch.
func (r *Runner) Stop() {
	platform.RegisterDispatch(nil)
	r.frameLock.Lock()
	defer r.frameLock.Unlock()
	r.unmountLocked()
}

func (r *Runner) notifyPlatform() {
	if r.schedule != nil {
		r.schedule()
	}
}

// Dispatch queues callback for the next frame. Safe for concurrent use.
func (r *Runner) Dispatch(callback func()) {
	if callback == nil {
		return
	}
	r.queue.Post(callback)
}

// RequestFrame asks for a frame even if nothing is dirty.
func (r *Runner) RequestFrame() {
	r.pendingFrameRequest.Store(true)
	r.notifyPlatform()
}

// NeedsFrame reports whether the next StepFrame would do any work.
func (r *Runner) NeedsFrame() bool {
	if r.pendingFrameRequest.Load() || r.queue.Len() > 0 {
		return true
	}
	if !r.frameLock.TryLock() {
		return true
	}
	defer r.frameLock.Unlock()
	return r.root == nil || animation.HasActiveTickers() || r.buildOwner.NeedsWork()
}

// SetApp replaces the root widget. The new widget updates the mounted
// tree in place on the next frame when its type matches.
func (r *Runner) SetApp(app core.Widget) {
	r.frameLock.Lock()
	r.app = app
	r.appChanged = true
	r.frameLock.Unlock()
	r.RequestFrame()
}

// StepFrame runs one frame and returns what it painted. A panic raised
// while mounting or updating the tree unmounts it and is returned as a
// *errors.PanicError; the next frame mounts the app again.
func (r *Runner) StepFrame() (list *graphics.DisplayList, err error) {
	r.frameLock.Lock()
	defer r.frameLock.Unlock()

	start := animation.Now()
	r.pendingFrameRequest.Store(false)
	defer r.recoverFromFramePanic(&err)

	r.mountOrUpdateLocked()
	r.queue.Drain()
	animation.StepTickers()
	r.buildOwner.FlushBuild()
	list = core.Record(r.root)

	r.frames.Inc()
	r.lastFrame.Store(animation.Now().Sub(start))
	return list, nil
}

// Settle runs frames until the runner is idle and returns the last list
// painted. Between frames it calls advance, which headless hosts use to move
// a fake clock. It gives up with ErrNotSettled after maxFrames.
func (r *Runner) Settle(maxFrames int, advance func()) (*graphics.DisplayList, error) {
	var list *graphics.DisplayList
	for range maxFrames {
		var err error
		if list, err = r.StepFrame(); err != nil {
			return list, err
		}
		if !r.NeedsFrame() {
			return list, nil
		}
		if advance != nil {
			advance()
		}
	}
	return list, ErrNotSettled
}

func (r *Runner) mountOrUpdateLocked() {
	changed := r.appChanged
	r.appChanged = false
	switch {
	case r.root == nil:
		r.root = core.MountRoot(r.app, r.buildOwner)
	case !changed:
	case core.TypeName(r.root.Widget()) == core.TypeName(r.app):
		r.root.Update(r.app)
		r.root.RebuildIfNeeded()
	default:
		r.unmountLocked()
		r.root = core.MountRoot(r.app, r.buildOwner)
	}
}

func (r *Runner) recoverFromFramePanic(err *error) {
	rec := recover()
	if rec == nil {
		return
	}
	panicErr := &errors.PanicError{
		Op:         "engine.StepFrame",
		Value:      rec,
		StackTrace: errors.CaptureStack(),
		Timestamp:  time.Now(),
	}
	r.capturedPanic = panicErr
	errors.ReportPanic(panicErr)
	r.root = nil
	r.pendingFrameRequest.Store(true)
	*err = panicErr
}

func (r *Runner) unmountLocked() {
	if r.root != nil {
		r.root.Unmount()
		r.root = nil
	}
}

// Root returns the mounted root element, or nil before the first frame.
func (r *Runner) Root() core.Element {
	r.frameLock.Lock()
	defer r.frameLock.Unlock()
	return r.root
}

// LastPanic returns the most recent panic recovered by StepFrame.
func (r *Runner) LastPanic() *errors.PanicError {
	r.frameLock.Lock()
	defer r.frameLock.Unlock()
	return r.capturedPanic
}

// Stats reports frame counters.
func (r *Runner) Stats() FrameStats {
	return FrameStats{
		Frames:    r.frames.Load(),
		LastFrame: r.lastFrame.Load(),
	}
}

// FrameStats summarizes the frames a Runner has produced.
type FrameStats struct {
	Frames    uint64
	LastFrame time.Duration
}
