package navigation

import (
	"time"

	"go.uber.org/atomic"

	"github.com/go-drift/fadenav/pkg/animation"
)

// DefaultTransitionDuration is the length of each fade.
const DefaultTransitionDuration = 100 * time.Millisecond

// TransitionConfig configures the fade used by a router. It is read once
// when the router mounts.
type TransitionConfig struct {
	// Duration of each fade. Zero means DefaultTransitionDuration.
	Duration time.Duration
	// Curve applied to each fade. Nil means animation.Ease.
	Curve animation.Curve
}

// DefaultTransitionConfig returns the 100ms ease fade.
func DefaultTransitionConfig() TransitionConfig {
	return TransitionConfig{Duration: DefaultTransitionDuration, Curve: animation.Ease}
}

func (c TransitionConfig) withDefaults() TransitionConfig {
	if c.Duration <= 0 {
		c.Duration = DefaultTransitionDuration
	}
	if c.Curve == nil {
		c.Curve = animation.Ease
	}
	return c
}

// Transition drives a router's opacity and orders its navigation requests.
//
// Every request takes a new generation. A fade-out's result may only be
// applied while its generation is still current, so the most recent request
// always wins.
type Transition struct {
	controller *animation.AnimationController
	generation atomic.Uint64
	inFlight   atomic.Bool
}

// NewTransition creates a fully opaque transition.
func NewTransition(config TransitionConfig) *Transition {
	config = config.withDefaults()
	controller := animation.NewAnimationController(config.Duration)
	controller.Curve = config.Curve
	controller.SetValue(1)
	return &Transition{controller: controller}
}

// Opacity returns the current opacity in [0, 1].
func (t *Transition) Opacity() float64 {
	return t.controller.Value
}

// Generation returns the current generation.
func (t *Transition) Generation() uint64 {
	return t.generation.Load()
}

// Advance starts a new generation and returns it. Pending results of older
// generations become stale.
func (t *Transition) Advance() uint64 {
	return t.generation.Inc()
}

// IsCurrent reports whether generation is the latest one.
func (t *Transition) IsCurrent(generation uint64) bool {
	return t.generation.Load() == generation
}

// InFlight reports whether a fade-out is waiting to settle.
func (t *Transition) InFlight() bool {
	return t.inFlight.Load()
}

// FadeOut animates from the current opacity to 0 and calls onDone once. A
// fade-out that is replaced by another animation reports finished=false.
func (t *Transition) FadeOut(onDone animation.SettleFunc) {
	t.controller.AnimateToThen(0, func(finished bool) {
		t.inFlight.Store(false)
		if onDone != nil {
			onDone(finished)
		}
	})
	t.inFlight.Store(true)
}

// FadeIn animates from the current opacity to 1.
func (t *Transition) FadeIn() {
	t.controller.AnimateTo(1)
}

// Hide jumps to opacity 0, cancelling any fade in flight.
func (t *Transition) Hide() {
	t.controller.SetValue(0)
}

// AddListener calls fn whenever the opacity changes. It returns a function
// that removes the listener.
func (t *Transition) AddListener(fn func()) func() {
	return t.controller.AddListener(fn)
}

// Dispose stops the fade. A pending fade-out reports finished=false.
func (t *Transition) Dispose() {
	t.controller.Dispose()
}
