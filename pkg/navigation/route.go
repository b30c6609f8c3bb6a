package navigation

import (
	"github.com/go-drift/fadenav/pkg/core"
)

// Descriptor is the immutable description of one declared route.
type Descriptor struct {
	// Key is the route name, unique within one router.
	Key RouteKey
	// InitialProps are the props used when the route becomes active through a
	// reset. Nil when none were declared.
	InitialProps any
	// Default marks the route shown on mount and after a reset.
	Default bool

	accepts   func(props any) bool
	render    func(ctx core.BuildContext, props any) core.Widget
}

// Accepts reports whether props can be passed to the route's component.
// Nil props are always accepted and render with the zero value.
func (d *Descriptor) Accepts(props any) bool {
	return props == nil || d.accepts(props)
}

// Route declares a route as a child of [Navigation]. It is never rendered.
// Build routes with [Declare] or [DeclareBare]; a zero Route is rejected by
// [BuildRouteTable].
type Route struct {
	core.StatelessBase
	descriptor *Descriptor
}

// Build renders nothing. Routes only carry their descriptor.
func (r Route) Build(ctx core.BuildContext) core.Widget {
	return nil
}

// AsDefault returns a copy of the route marked as the default.
func (r Route) AsDefault() Route {
	if r.descriptor == nil {
		return r
	}
	d := *r.descriptor
	d.Default = true
	return Route{descriptor: &d}
}

// Descriptor returns the route's descriptor, or nil for a zero Route.
func (r Route) Descriptor() *Descriptor {
	return r.descriptor
}

// Declare declares the route for key, rendered by component. initial, when
// given, is passed to the component whenever the route is activated by a
// reset (mount or a change of the declared routes).
func Declare[P any](key Key[P], component func(ctx core.BuildContext, props P) core.Widget, initial ...P) Route {
	d := &Descriptor{
		Key:       key.Name(),
		accepts: func(props any) bool {
			_, ok := props.(P)
			return ok
		},
		render: func(ctx core.BuildContext, props any) core.Widget {
			typed, _ := props.(P)
			return component(ctx, typed)
		},
	}
	if len(initial) > 0 {
		d.InitialProps = initial[0]
	}
	return Route{descriptor: d}
}

// DeclareBare declares a route whose component takes no props.
func DeclareBare(key Key[NoProps], component func(ctx core.BuildContext) core.Widget) Route {
	d := &Descriptor{
		Key:       key.Name(),
		accepts: func(props any) bool {
			_, ok := props.(NoProps)
			return ok
		},
		render: func(ctx core.BuildContext, props any) core.Widget {
			return component(ctx)
		},
	}
	return Route{descriptor: d}
}
