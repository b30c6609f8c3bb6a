package navigation

import (
	"context"

	"github.com/go-drift/fadenav/pkg/logging"
)

// RouteEvent describes one step of a router's life.
type RouteEvent struct {
	// Router identifies the router instance.
	Router string
	// From is the route that was active, when relevant.
	From RouteKey
	// To is the route being moved to.
	To RouteKey
	// Generation is the transition generation. Resets and requests each take
	// a new one; back presses carry zero.
	Generation uint64
}

// Observer receives router events on the UI thread.
type Observer interface {
	// DidReset is called when the declared routes were (re)read and the
	// default route became active.
	DidReset(event RouteEvent)
	// DidRequest is called when navigation to To was requested.
	DidRequest(event RouteEvent)
	// DidNavigate is called when a request landed and To became active.
	DidNavigate(event RouteEvent)
	// DidSupersede is called when a request was dropped because a newer
	// request or a reset replaced it, or the router was disposed first.
	DidSupersede(event RouteEvent)
	// DidBackPress is called for every back signal the router handles.
	DidBackPress(event RouteEvent)
}

// ObserverBase implements Observer with no-ops. Embed it to handle only
// some events.
type ObserverBase struct{}

func (ObserverBase) DidReset(RouteEvent)     {}
func (ObserverBase) DidRequest(RouteEvent)   {}
func (ObserverBase) DidNavigate(RouteEvent)  {}
func (ObserverBase) DidSupersede(RouteEvent) {}
func (ObserverBase) DidBackPress(RouteEvent) {}

// ObserverFunc adapts a single function to Observer. The kind argument is
// one of "reset", "request", "navigate", "supersede" or "back".
type ObserverFunc func(kind string, event RouteEvent)

func (f ObserverFunc) DidReset(e RouteEvent)     { f("reset", e) }
func (f ObserverFunc) DidRequest(e RouteEvent)   { f("request", e) }
func (f ObserverFunc) DidNavigate(e RouteEvent)  { f("navigate", e) }
func (f ObserverFunc) DidSupersede(e RouteEvent) { f("supersede", e) }
func (f ObserverFunc) DidBackPress(e RouteEvent) { f("back", e) }

// LogObserver writes router events to a logger at debug level.
type LogObserver struct {
	Logger logging.Logger
}

func (o LogObserver) logger() logging.Logger {
	if o.Logger == nil {
		return logging.Default()
	}
	return o.Logger
}

func (o LogObserver) log(msg string, e RouteEvent) {
	fields := []logging.Field{
		logging.String("router", e.Router),
		logging.String("to", string(e.To)),
	}
	if e.From != "" {
		fields = append(fields, logging.String("from", string(e.From)))
	}
	if e.Generation != 0 {
		fields = append(fields, logging.Uint64("generation", e.Generation))
	}
	o.logger().Debug(context.Background(), msg, fields...)
}

func (o LogObserver) DidReset(e RouteEvent)     { o.log("routes reset", e) }
func (o LogObserver) DidRequest(e RouteEvent)   { o.log("navigation requested", e) }
func (o LogObserver) DidNavigate(e RouteEvent)  { o.log("navigated", e) }
func (o LogObserver) DidSupersede(e RouteEvent) { o.log("navigation superseded", e) }
func (o LogObserver) DidBackPress(e RouteEvent) { o.log("back pressed", e) }
