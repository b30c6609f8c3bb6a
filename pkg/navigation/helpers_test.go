package navigation_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/navigation"
	fadetest "github.com/go-drift/fadenav/pkg/testing"
	"github.com/go-drift/fadenav/pkg/widgets"
)

type detailProps struct {
	ID int
}

var (
	homeKey     = navigation.NewKey[navigation.NoProps]("home")
	settingsKey = navigation.NewKey[navigation.NoProps]("settings")
	detailKey   = navigation.NewKey[detailProps]("detail")
	missingKey  = navigation.NewKey[navigation.NoProps]("missing")
)

const settle = time.Second

// app records the navigator handed to whichever route renders.
type app struct {
	nav navigation.Navigator
}

func (a *app) home(ctx core.BuildContext) core.Widget {
	a.nav = navigation.Of(ctx)
	return widgets.Text{Content: "home"}
}

func (a *app) settings(ctx core.BuildContext) core.Widget {
	a.nav = navigation.Of(ctx)
	return widgets.Text{Content: "settings"}
}

func (a *app) detail(ctx core.BuildContext, props detailProps) core.Widget {
	a.nav = navigation.Of(ctx)
	return widgets.Text{Content: fmt.Sprintf("detail %d", props.ID)}
}

func (a *app) routes() []core.Widget {
	return []core.Widget{
		navigation.DeclareBare(homeKey, a.home),
		navigation.DeclareBare(settingsKey, a.settings),
		navigation.Declare(detailKey, a.detail),
	}
}

func mount(t *testing.T, w navigation.Navigation) *fadetest.WidgetTester {
	t.Helper()
	tester := fadetest.NewWidgetTesterWithT(t)
	require.NoError(t, tester.PumpWidget(w))
	return tester
}

func settled(t *testing.T, tester *fadetest.WidgetTester) {
	t.Helper()
	require.NoError(t, tester.PumpAndSettle(settle))
}

// shown returns the texts currently painted.
func shown(tester *fadetest.WidgetTester) string {
	return strings.Join(tester.DisplayList().Texts(), ",")
}

// mounted returns the texts of the route currently mounted, painted or not.
func mounted(tester *fadetest.WidgetTester) string {
	return strings.Join(tester.Find(fadetest.ByType[widgets.Text]()).Texts(), ",")
}

func opacity(t *testing.T, tester *fadetest.WidgetTester) float64 {
	t.Helper()
	result := tester.Find(fadetest.ByType[widgets.Opacity]())
	require.True(t, result.Exists(), "expected an Opacity in the tree")
	return result.Widget().(widgets.Opacity).Opacity
}

type recorder struct {
	events []string
}

func (r *recorder) observer() navigation.Observer {
	return navigation.ObserverFunc(func(kind string, e navigation.RouteEvent) {
		switch kind {
		case "navigate":
			r.events = append(r.events, fmt.Sprintf("%s %s->%s #%d", kind, e.From, e.To, e.Generation))
		case "request", "supersede":
			r.events = append(r.events, fmt.Sprintf("%s %s #%d", kind, e.To, e.Generation))
		case "reset":
			r.events = append(r.events, fmt.Sprintf("%s %s", kind, e.To))
		default:
			r.events = append(r.events, kind)
		}
	})
}
