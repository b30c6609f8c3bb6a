// Package demo builds the router the fadenav binary shows: one route per
// configured screen, number keys bound to links and a back handler that
// returns to the default screen.
package demo

import (
	"strconv"
	"sync"

	"github.com/go-drift/fadenav/cmd/fadenav/internal/config"
	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/graphics"
	"github.com/go-drift/fadenav/pkg/logging"
	"github.com/go-drift/fadenav/pkg/navigation"
	"github.com/go-drift/fadenav/pkg/widgets"
)

var (
	titleColor = graphics.RGB(0x10, 0x2A, 0x43)
	bodyColor  = graphics.RGB(0x33, 0x33, 0x33)
	linkColor  = graphics.RGB(0x1F, 0x6F, 0xB2)
)

// App holds the demo's screens and the navigator of its mounted router.
type App struct {
	cfg       *config.Resolved
	observers []navigation.Observer
	logger    logging.Logger

	mu    sync.Mutex
	nav   navigation.Navigator
	shown string
	quit  bool
}

// New creates an App for cfg.
func New(cfg *config.Resolved, logger logging.Logger, observers ...navigation.Observer) *App {
	return &App{cfg: cfg, observers: observers, logger: logger}
}

// Widget returns the router widget.
func (a *App) Widget() navigation.Navigation {
	routes := make([]core.Widget, 0, len(a.cfg.Screens))
	for _, screen := range a.cfg.Screens {
		route := navigation.DeclareBare(Key(screen.Key), a.screenComponent(screen))
		if screen.Default {
			route = route.AsDefault()
		}
		routes = append(routes, route)
	}
	return navigation.Navigation{
		Routes:              routes,
		OnHardwareBackPress: a.handleBack,
		Background:          a.cfg.Background,
		Transition:          a.cfg.Transition,
		Observers:           a.observers,
		Logger:              a.logger,
	}
}

// Key returns the typed key of a configured screen.
func Key(name string) navigation.Key[navigation.NoProps] {
	return navigation.NewKey[navigation.NoProps](name)
}

// Navigator returns the navigator captured by the last screen build, or nil
// before the first frame.
func (a *App) Navigator() navigation.Navigator {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nav
}

// Go navigates to the screen named route. It reports false before the
// router has built.
func (a *App) Go(route string) bool {
	nav := a.Navigator()
	if nav == nil {
		return false
	}
	navigation.GoTo(nav, Key(route))
	return true
}

// QuitRequested reports whether back was pressed on the default screen.
func (a *App) QuitRequested() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.quit
}

func (a *App) handleBack(nav navigation.Navigator) {
	home := a.cfg.DefaultRoute()
	if a.current() == home {
		a.mu.Lock()
		a.quit = true
		a.mu.Unlock()
		return
	}
	navigation.GoTo(nav, Key(home))
}

// current is the screen last built, which is the active route once any
// transition has applied.
func (a *App) current() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.shown
}

func (a *App) screenComponent(screen config.Screen) func(ctx core.BuildContext) core.Widget {
	return func(ctx core.BuildContext) core.Widget {
		nav := navigation.Of(ctx)
		a.mu.Lock()
		a.nav = nav
		a.shown = screen.Key
		a.mu.Unlock()
		return a.screenView(nav, screen)
	}
}

func (a *App) screenView(nav navigation.Navigator, screen config.Screen) core.Widget {
	lines := []core.Widget{widgets.Text{Content: screen.Label(), Color: titleColor}}
	if screen.Body != "" {
		lines = append(lines, widgets.Text{Content: screen.Body, Color: bodyColor})
	}

	bindings := make(map[string]func(), len(screen.Links))
	for i, link := range screen.Links {
		digit := strconv.Itoa(i + 1)
		target, _ := a.cfg.Screen(link)
		lines = append(lines, widgets.Text{Content: digit + "  " + target.Label(), Color: linkColor})
		bindings[digit] = func() { navigation.GoTo(nav, Key(link)) }
	}

	return widgets.Shortcuts{
		Bindings: bindings,
		Child:    widgets.Column{Children: lines},
	}
}
