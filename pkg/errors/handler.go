package errors

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"go.uber.org/atomic"
)

// installed wraps the handler so it can live in an atomic pointer.
type installed struct {
	h ErrorHandler
}

var global = atomic.NewPointer(&installed{h: &LogHandler{}})

// SetHandler installs the process-wide error handler and returns the one it
// replaced. Passing nil installs a default LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	return global.Swap(&installed{h: h}).h
}

func current() ErrorHandler {
	return global.Load().h
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Report delivers err to the installed handler.
func Report(err *Error) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	current().HandleError(err)
}

// ReportPanic delivers a recovered panic to the installed handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	current().HandlePanic(err)
}

// ReportBuildError delivers a failed build to the installed handler.
func ReportBuildError(err *BuildError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	current().HandleBuildError(err)
}

// Recover reports a panic in progress as a PanicError for op. Call it
// deferred at the top of goroutines fed by event sources:
//
//	defer errors.Recover("platform.WatchInputDevice")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{Op: op, Value: r, StackTrace: CaptureStack()})
	}
}

// CaptureStack formats the stack of its caller's caller, one
// "function\n\tfile:line" entry per frame, at most 32 frames deep.
func CaptureStack() string {
	pcs := make([]uintptr, 32)
	pcs = pcs[:runtime.Callers(3, pcs)]
	if len(pcs) == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			return sb.String()
		}
	}
}
