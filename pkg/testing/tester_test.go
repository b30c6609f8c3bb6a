package testing

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/platform"
	"github.com/go-drift/fadenav/pkg/widgets"
)

func TestPumpWidget_MountsTree(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	err := tester.PumpWidget(widgets.Text{Content: "hello"})
	if err != nil {
		t.Fatal(err)
	}
	if tester.RootElement() == nil {
		t.Fatal("expected root element after PumpWidget")
	}
	if got := tester.DisplayList().Texts(); len(got) != 1 || got[0] != "hello" {
		t.Errorf("expected painted text [hello], got %v", got)
	}
}

func TestPumpWidget_Remount(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	tester.PumpWidget(widgets.Text{Content: "first"})
	first := tester.RootElement()

	tester.PumpWidget(widgets.Text{Content: "second"})
	second := tester.RootElement()

	if first == second {
		t.Error("expected new root element after remount")
	}
}

func TestPumpWidget_ReturnsMountPanic(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	err := tester.PumpWidget(exploding{})
	if err == nil || err.Error() != "panic: init failed" {
		t.Fatalf("expected init panic as error, got %v", err)
	}
	if tester.RootElement() != nil {
		t.Error("expected no root after failed mount")
	}
}

func TestUpdateWidget_KeepsState(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(counter{initial: 1})

	widgets.DispatchKey(tester.RootElement(), "+")
	tester.Pump()
	root := tester.RootElement()

	if err := tester.UpdateWidget(counter{initial: 10}); err != nil {
		t.Fatal(err)
	}
	if tester.RootElement() != root {
		t.Error("expected root element to be kept")
	}
	if !tester.Find(ByText("2")).Exists() {
		t.Error("expected state to survive update")
	}
}

func TestPumpAndSettle_IdleWidget(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Text{Content: "static"})

	err := tester.PumpAndSettle(time.Second)
	if err != nil {
		t.Errorf("expected settle for static widget, got: %v", err)
	}
}

func TestPumpAndSettle_Animation(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(fader{duration: 100 * time.Millisecond})

	opacity := func() float64 {
		return tester.Find(ByType[widgets.Opacity]()).Widget().(widgets.Opacity).Opacity
	}
	if opacity() != 0 {
		t.Errorf("expected opacity 0 on first frame, got %v", opacity())
	}

	tester.PumpFor(48 * time.Millisecond)
	if v := opacity(); v <= 0 || v >= 1 {
		t.Errorf("expected partial opacity mid-animation, got %v", v)
	}

	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if opacity() != 1 {
		t.Errorf("expected opacity 1 after settle, got %v", opacity())
	}
}

func TestPumpAndSettle_Timeout(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(fader{duration: time.Hour})

	err := tester.PumpAndSettle(100 * time.Millisecond)
	if !stderrors.Is(err, ErrSettleTimeout) {
		t.Errorf("expected ErrSettleTimeout, got %v", err)
	}
}

func TestDispatch(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Text{Content: "test"})

	called := false
	tester.Dispatch(func() { called = true })

	if called {
		t.Error("dispatch should not run until Pump")
	}

	tester.Pump()

	if !called {
		t.Error("dispatch should have run after Pump")
	}
}

func TestPlatformDispatchRunsOnPump(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Text{Content: "test"})

	called := false
	if !platform.Dispatch(func() { called = true }) {
		t.Fatal("expected tester to register a dispatcher")
	}
	if called {
		t.Error("dispatch should not run until Pump")
	}
	tester.Pump()
	if !called {
		t.Error("dispatch should have run after Pump")
	}
}

type broken struct {
	core.StatelessBase
}

func (broken) Build(ctx core.BuildContext) core.Widget {
	panic("bad build")
}

func TestBuildErrorsAreCaptured(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	if err := tester.PumpWidget(widgets.Column{Children: []core.Widget{broken{}, widgets.Text{Content: "ok"}}}); err != nil {
		t.Fatal(err)
	}
	if n := len(tester.BuildErrors()); n != 1 {
		t.Fatalf("expected 1 build error, got %d", n)
	}
	if !tester.Find(ByText("ok")).Exists() {
		t.Error("expected siblings of a failed build to mount")
	}
}
