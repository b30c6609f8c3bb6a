package errors

import (
	"context"

	"github.com/go-drift/fadenav/pkg/logging"
)

// LogHandler is an ErrorHandler that writes through the structured logger.
type LogHandler struct {
	// Logger receives the entries. Nil uses logging.Default().
	Logger logging.Logger
	// Verbose adds stack traces to every entry.
	Verbose bool
}

func (h *LogHandler) logger() logging.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return logging.Default()
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	fields := []logging.Field{
		logging.String("op", err.Op),
		logging.String("kind", err.Kind.String()),
		logging.Err(err.Err),
	}
	if err.Source != "" {
		fields = append(fields, logging.String("source", err.Source))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, logging.String("stack", err.StackTrace))
	}
	h.logger().Error(context.Background(), "fadenav error", fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []logging.Field{
		logging.String("op", err.Op),
		logging.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, logging.String("stack", err.StackTrace))
	}
	h.logger().Error(context.Background(), "fadenav panic", fields...)
}

// HandleBuildError logs a BuildError.
func (h *LogHandler) HandleBuildError(err *BuildError) {
	if err == nil {
		return
	}
	fields := []logging.Field{
		logging.String("widget", err.Widget),
		logging.String("error", err.Error()),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, logging.String("stack", err.StackTrace))
	}
	h.logger().Error(context.Background(), "fadenav build error", fields...)
}
