package navigation

import (
	"reflect"

	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/errors"
)

// NavigateArgs describes a navigation request. Props may be nil, in which
// case the component receives the zero value of its props type.
type NavigateArgs struct {
	Route RouteKey
	Props any
}

// Navigator is the capability a router hands to its active route and to its
// back handler.
type Navigator interface {
	// Navigate fades to args.Route. It never changes the active route
	// synchronously; the change lands when the fade-out completes, unless a
	// newer request replaces it first.
	Navigate(args NavigateArgs)
}

// Go navigates to key with props.
func Go[P any](nav Navigator, key Key[P], props P) {
	nav.Navigate(NavigateArgs{Route: key.Name(), Props: props})
}

// GoTo navigates to a route that takes no props.
func GoTo(nav Navigator, key Key[NoProps]) {
	nav.Navigate(NavigateArgs{Route: key.Name()})
}

// Scope exposes a Navigator to the active route's subtree.
type Scope struct {
	core.InheritedBase
	Navigator Navigator
	Child     core.Widget
}

func (s Scope) ChildWidget() core.Widget {
	return s.Child
}

func (s Scope) UpdateShouldNotify(old core.InheritedWidget) bool {
	prev, ok := old.(Scope)
	return !ok || prev.Navigator != s.Navigator
}

var scopeType = reflect.TypeOf(Scope{})

// ResolutionError is raised by [Of] when no router encloses the context.
type ResolutionError struct {
	// Widget is the type of the widget that asked.
	Widget string
}

func (e *ResolutionError) Error() string {
	if e.Widget == "" {
		return "navigator not found in tree"
	}
	return "navigator not found in tree (requested by " + e.Widget + ")"
}

// Of returns the Navigator of the nearest enclosing router. It panics with an
// *errors.Error of kind KindResolution wrapping a *ResolutionError when ctx is
// not inside an active route.
func Of(ctx core.BuildContext) Navigator {
	if nav, ok := MaybeOf(ctx); ok {
		return nav
	}
	var widget string
	if ctx != nil {
		widget = core.TypeName(ctx.Widget())
	}
	panic(&errors.Error{
		Op:         "navigation.Of",
		Kind:       errors.KindResolution,
		Err:        &ResolutionError{Widget: widget},
		StackTrace: errors.CaptureStack(),
	})
}

// MaybeOf returns the Navigator of the nearest enclosing router, if any.
func MaybeOf(ctx core.BuildContext) (Navigator, bool) {
	if ctx == nil {
		return nil, false
	}
	scope, ok := ctx.DependOnInherited(scopeType).(Scope)
	if !ok || scope.Navigator == nil {
		return nil, false
	}
	return scope.Navigator, true
}
