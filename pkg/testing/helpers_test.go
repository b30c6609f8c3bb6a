package testing

import (
	"strconv"
	"time"

	"github.com/go-drift/fadenav/pkg/animation"
	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/widgets"
)

// counter shows a number and increments it on "+".
type counter struct {
	core.StatefulBase
	initial int
}

func (c counter) CreateState() core.State { return &counterState{} }

type counterState struct {
	core.StateBase
	count int
}

func (s *counterState) InitState() {
	s.count = s.Element().Widget().(counter).initial
}

func (s *counterState) Build(ctx core.BuildContext) core.Widget {
	return widgets.Shortcuts{
		Bindings: map[string]func(){
			"+": func() { s.SetState(func() { s.count++ }) },
		},
		Child: widgets.Text{Content: strconv.Itoa(s.count)},
	}
}

// fader fades its text in over duration on mount.
type fader struct {
	core.StatefulBase
	duration time.Duration
}

func (f fader) CreateState() core.State { return &faderState{} }

type faderState struct {
	core.StateBase
	ctrl *animation.AnimationController
}

func (s *faderState) InitState() {
	s.ctrl = core.UseController(s, func() *animation.AnimationController {
		return animation.NewAnimationController(s.Element().Widget().(fader).duration)
	})
	core.UseSubscription(s, func() func() {
		return s.ctrl.AddListener(func() { s.SetState(nil) })
	})
	s.ctrl.Forward()
}

func (s *faderState) Build(ctx core.BuildContext) core.Widget {
	return widgets.Opacity{Opacity: s.ctrl.Value, Child: widgets.Text{Content: "fading"}}
}

type exploding struct {
	core.StatefulBase
}

func (exploding) CreateState() core.State { return &explodingState{} }

type explodingState struct {
	core.StateBase
}

func (s *explodingState) InitState() {
	panic("init failed")
}
