package navigation

import (
	"context"

	"github.com/google/uuid"

	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/errors"
	"github.com/go-drift/fadenav/pkg/graphics"
	"github.com/go-drift/fadenav/pkg/logging"
	"github.com/go-drift/fadenav/pkg/widgets"
)

// ActiveRoute is the route a router currently shows.
type ActiveRoute struct {
	Key   RouteKey
	Props any
}

// Navigation renders exactly one of its declared Routes and fades between
// them.
//
// Invalid Routes (a child that is not a Route, no routes, a repeated key)
// panic during mount or update with an *errors.Error of kind KindConfig
// wrapping a *ConfigError.
type Navigation struct {
	core.StatefulBase

	// Routes are the route declarations, built with Declare or DeclareBare.
	Routes []core.Widget

	// OnHardwareBackPress is called for each hardware back signal while the
	// router is mounted. The signal is consumed even when nil.
	OnHardwareBackPress func(nav Navigator)

	// Background fills the screen behind the active route. Zero means
	// graphics.ColorPaleCyan.
	Background graphics.Color

	// Transition configures the fade. It is read once, on mount.
	Transition TransitionConfig

	// Observers receive router events.
	Observers []Observer

	// Logger receives router diagnostics. Nil means logging.Default().
	Logger logging.Logger
}

func (n Navigation) CreateState() core.State {
	return &navigationState{}
}

func (n Navigation) background() graphics.Color {
	if n.Background == graphics.ColorTransparent {
		return graphics.ColorPaleCyan
	}
	return n.Background
}

type navigationState struct {
	core.StateBase

	id         string
	logger     logging.Logger
	table      *RouteTable
	active     ActiveRoute
	transition *Transition
	navigator  *navigator
	warnedKey  RouteKey
}

// navigator is the capability handed out by a router. It stays the same for
// the router's whole life.
type navigator struct {
	state *navigationState
}

func (n *navigator) Navigate(args NavigateArgs) {
	n.state.navigate(args)
}

func (s *navigationState) widget() Navigation {
	return s.Element().Widget().(Navigation)
}

func (s *navigationState) InitState() {
	w := s.widget()
	table := mustBuildRouteTable(w.Routes)

	s.id = uuid.NewString()
	s.logger = w.Logger
	if s.logger == nil {
		s.logger = logging.Default()
	}
	s.logger = s.logger.With(logging.String("router", s.id))
	s.navigator = &navigator{state: s}

	s.transition = core.UseController(s, func() *Transition {
		return NewTransition(w.Transition)
	})
	core.UseSubscription(s, func() func() {
		return s.transition.AddListener(func() { s.SetState(nil) })
	})
	s.subscribeBack()

	s.reset(table)
}

func (s *navigationState) DidUpdateWidget(oldWidget core.StatefulWidget) {
	table := mustBuildRouteTable(s.widget().Routes)
	if table.SameRoutes(s.table) {
		s.table = table
		return
	}
	s.reset(table)
}

func mustBuildRouteTable(routes []core.Widget) *RouteTable {
	table, err := BuildRouteTable(routes)
	if err != nil {
		panic(&errors.Error{
			Op:         "navigation.Navigation",
			Kind:       errors.KindConfig,
			Err:        err,
			StackTrace: errors.CaptureStack(),
		})
	}
	return table
}

// reset installs table and shows its default route, dropping any request
// still in flight.
func (s *navigationState) reset(table *RouteTable) {
	generation := s.transition.Advance()
	s.table = table
	def := table.Default()
	s.active = ActiveRoute{Key: def.Key, Props: def.InitialProps}
	s.warnedKey = ""

	s.logger.Debug(context.Background(), "routes reset",
		logging.String("default", string(def.Key)),
		logging.Int("routes", table.Len()),
	)
	s.notify(Observer.DidReset, RouteEvent{To: def.Key, Generation: generation})

	s.transition.Hide()
	s.transition.FadeIn()
}

func (s *navigationState) navigate(args NavigateArgs) {
	if s.IsDisposed() {
		return
	}
	generation := s.transition.Advance()
	s.notify(Observer.DidRequest, RouteEvent{From: s.active.Key, To: args.Route, Generation: generation})

	s.transition.FadeOut(func(finished bool) {
		if !finished || s.IsDisposed() || !s.transition.IsCurrent(generation) {
			s.notify(Observer.DidSupersede, RouteEvent{To: args.Route, Generation: generation})
			return
		}
		from := s.active.Key
		s.SetState(func() {
			s.active = ActiveRoute{Key: args.Route, Props: args.Props}
		})
		s.notify(Observer.DidNavigate, RouteEvent{From: from, To: args.Route, Generation: generation})
		s.transition.FadeIn()
	})
}

func (s *navigationState) notify(event func(Observer, RouteEvent), e RouteEvent) {
	e.Router = s.id
	for _, observer := range s.widget().Observers {
		if observer != nil {
			event(observer, e)
		}
	}
}

func (s *navigationState) Build(ctx core.BuildContext) core.Widget {
	background := s.widget().background()

	d, ok := s.table.Lookup(s.active.Key)
	if !ok {
		s.warnOnce("route not declared; rendering empty surface")
		return widgets.Surface{Color: background}
	}
	if !d.Accepts(s.active.Props) {
		s.warnOnce("props do not match route; rendering empty surface",
			logging.String("props", core.TypeName(s.active.Props)))
		return widgets.Surface{Color: background}
	}

	return Scope{
		Navigator: s.navigator,
		Child: widgets.Surface{
			Color: background,
			Child: widgets.Opacity{
				Opacity: s.transition.Opacity(),
				Child:   routeView{descriptor: d, props: s.active.Props},
			},
		},
	}
}

func (s *navigationState) warnOnce(msg string, fields ...logging.Field) {
	if s.warnedKey == s.active.Key {
		return
	}
	s.warnedKey = s.active.Key
	fields = append(fields, logging.String("route", string(s.active.Key)))
	s.logger.Warn(context.Background(), msg, fields...)
}

// routeView renders a route's component below the Scope. It is keyed by
// route so that moving to another route discards the previous instance.
type routeView struct {
	core.StatelessBase
	descriptor *Descriptor
	props      any
}

func (v routeView) Key() any {
	return v.descriptor.Key
}

func (v routeView) Build(ctx core.BuildContext) core.Widget {
	return v.descriptor.render(ctx, v.props)
}
