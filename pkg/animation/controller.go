package animation

import (
	"fmt"
	"time"
)

// AnimationStatus represents the current state of an animation.
//
//	              AnimateTo(higher)
//	Dismissed ──────────────────► Completed
//	    ▲                              │
//	    │        AnimateTo(lower)      │
//	    └──────────────────────────────┘
//
// While running, status is AnimationForward or AnimationReverse. When idle it
// is AnimationDismissed at the lower bound, AnimationCompleted at the upper
// bound, and otherwise keeps the last direction's resting state.
type AnimationStatus int

const (
	// AnimationDismissed means the animation is stopped at the lower bound.
	AnimationDismissed AnimationStatus = iota
	// AnimationForward means the animation is moving toward a higher value.
	AnimationForward
	// AnimationReverse means the animation is moving toward a lower value.
	AnimationReverse
	// AnimationCompleted means the animation is stopped at the upper bound.
	AnimationCompleted
)

// String returns a human-readable representation of the animation status.
func (s AnimationStatus) String() string {
	switch s {
	case AnimationDismissed:
		return "dismissed"
	case AnimationForward:
		return "forward"
	case AnimationReverse:
		return "reverse"
	case AnimationCompleted:
		return "completed"
	default:
		return fmt.Sprintf("AnimationStatus(%d)", int(s))
	}
}

// SettleFunc is called once when an animation ends. finished is true when
// the target was reached and false when the animation was stopped or
// replaced by a newer one.
type SettleFunc func(finished bool)

// AnimationController drives a scalar between LowerBound and UpperBound.
//
// Each call to AnimateTo, AnimateToThen, SetValue or Stop ends the animation
// in flight; its SettleFunc observes finished=false before the new one
// starts. Always call Dispose when done.
type AnimationController struct {
	// Value is the current animation value.
	Value float64

	// Duration is the length of a full animation.
	Duration time.Duration

	// Curve shapes linear progress. Nil means linear.
	Curve Curve

	// LowerBound is the minimum value (default 0.0).
	LowerBound float64

	// UpperBound is the maximum value (default 1.0).
	UpperBound float64

	status          AnimationStatus
	ticker          *Ticker
	target          float64
	startValue      float64
	onSettle        SettleFunc
	listeners       map[int]func()
	statusListeners map[int]func(AnimationStatus)
	nextListenerID  int
}

// NewAnimationController creates a controller resting at 0 with the given
// duration and a linear curve.
func NewAnimationController(duration time.Duration) *AnimationController {
	return &AnimationController{
		Duration:        duration,
		LowerBound:      0,
		UpperBound:      1,
		Curve:           LinearCurve,
		status:          AnimationDismissed,
		listeners:       make(map[int]func()),
		statusListeners: make(map[int]func(AnimationStatus)),
	}
}

// Forward animates to the upper bound.
func (c *AnimationController) Forward() {
	c.AnimateToThen(c.UpperBound, nil)
}

// Reverse animates to the lower bound.
func (c *AnimationController) Reverse() {
	c.AnimateToThen(c.LowerBound, nil)
}

// AnimateTo animates from the current value to target.
func (c *AnimationController) AnimateTo(target float64) {
	c.AnimateToThen(target, nil)
}

// AnimateToThen animates from the current value to target and calls
// onSettle once the animation ends.
func (c *AnimationController) AnimateToThen(target float64, onSettle SettleFunc) {
	c.interrupt()

	c.target = c.clamp(target)
	c.startValue = c.Value
	c.onSettle = onSettle
	if c.target >= c.Value {
		c.setStatus(AnimationForward)
	} else {
		c.setStatus(AnimationReverse)
	}

	c.ticker = NewTicker(c.tick)
	c.ticker.Start()
}

// SetValue jumps to v without animating. A running animation is
// interrupted.
func (c *AnimationController) SetValue(v float64) {
	c.interrupt()
	c.Value = c.clamp(v)
	c.settleStatus()
	c.notifyListeners()
}

// Reset jumps to the lower bound.
func (c *AnimationController) Reset() {
	c.SetValue(c.LowerBound)
}

// Stop halts the animation at its current value. A pending SettleFunc
// observes finished=false.
func (c *AnimationController) Stop() {
	c.interrupt()
	c.settleStatus()
}

func (c *AnimationController) tick(elapsed time.Duration) {
	progress := 1.0
	if c.Duration > 0 {
		progress = min(float64(elapsed)/float64(c.Duration), 1.0)
	}

	eased := progress
	if c.Curve != nil {
		eased = c.Curve(progress)
	}
	c.Value = c.startValue + (c.target-c.startValue)*eased
	if progress >= 1.0 {
		c.Value = c.target
	}
	c.notifyListeners()

	if progress >= 1.0 {
		c.finish()
	}
}

// finish ends the animation after reaching its target.
func (c *AnimationController) finish() {
	c.stopTicker()
	c.settleStatus()
	if settle := c.takeSettle(); settle != nil {
		settle(true)
	}
}

// interrupt ends the animation in flight, if any, without reaching its target.
func (c *AnimationController) interrupt() {
	c.stopTicker()
	if settle := c.takeSettle(); settle != nil {
		settle(false)
	}
}

func (c *AnimationController) stopTicker() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

func (c *AnimationController) takeSettle() SettleFunc {
	settle := c.onSettle
	c.onSettle = nil
	return settle
}

func (c *AnimationController) settleStatus() {
	switch {
	case c.Value <= c.LowerBound:
		c.setStatus(AnimationDismissed)
	case c.Value >= c.UpperBound:
		c.setStatus(AnimationCompleted)
	}
}

func (c *AnimationController) clamp(v float64) float64 {
	return max(c.LowerBound, min(c.UpperBound, v))
}

// Status returns the current animation status.
func (c *AnimationController) Status() AnimationStatus {
	return c.status
}

// IsAnimating reports whether an animation is in flight.
func (c *AnimationController) IsAnimating() bool {
	return c.ticker != nil
}

// AddListener adds a callback fired whenever the value changes.
// Returns an unsubscribe function.
func (c *AnimationController) AddListener(fn func()) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

// AddStatusListener adds a callback fired whenever the status changes.
// Returns an unsubscribe function.
func (c *AnimationController) AddStatusListener(fn func(AnimationStatus)) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.statusListeners[id] = fn
	return func() {
		delete(c.statusListeners, id)
	}
}

func (c *AnimationController) setStatus(status AnimationStatus) {
	if c.status == status {
		return
	}
	c.status = status
	for _, listener := range c.statusListeners {
		listener(status)
	}
}

func (c *AnimationController) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}

// Dispose stops the controller and drops its listeners. A pending
// SettleFunc observes finished=false.
func (c *AnimationController) Dispose() {
	c.interrupt()
	c.listeners = map[int]func(){}
	c.statusListeners = map[int]func(AnimationStatus){}
}
