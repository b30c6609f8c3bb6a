package core

// Stateful creates an inline stateful widget from closures. Use it for small
// self-contained fragments that need no lifecycle hooks.
//
//	core.Stateful(
//	    func() int { return 0 },
//	    func(count int, ctx core.BuildContext, setState func(func(int) int)) core.Widget {
//	        return widgets.Text{Content: strconv.Itoa(count)}
//	    },
//	)
func Stateful[S any](
	init func() S,
	build func(state S, ctx BuildContext, setState func(func(S) S)) Widget,
) Widget {
	return inlineStateful[S]{initFn: init, buildFn: build}
}

type inlineStateful[S any] struct {
	StatefulBase
	initFn  func() S
	buildFn func(state S, ctx BuildContext, setState func(func(S) S)) Widget
}

func (w inlineStateful[S]) CreateState() State {
	return &inlineStatefulState[S]{}
}

type inlineStatefulState[S any] struct {
	StateBase
	value S
}

func (s *inlineStatefulState[S]) widget() inlineStateful[S] {
	return s.Element().Widget().(inlineStateful[S])
}

func (s *inlineStatefulState[S]) InitState() {
	s.value = s.widget().initFn()
}

func (s *inlineStatefulState[S]) Build(ctx BuildContext) Widget {
	return s.widget().buildFn(s.value, ctx, func(update func(S) S) {
		s.SetState(func() { s.value = update(s.value) })
	})
}
