// Package animation drives time-based values for widget transitions.
//
// An [AnimationController] moves a scalar toward a target over a fixed
// duration, shaped by a [Curve]. Controllers are advanced by [StepTickers],
// which the host frame loop calls once per frame on the UI thread. Every
// animation settles exactly once: with finished=true when it reaches its
// target, or finished=false when it is stopped or replaced by a newer one.
//
//	ctrl := animation.NewAnimationController(100 * time.Millisecond)
//	ctrl.Curve = animation.Ease
//	ctrl.AnimateToThen(0, func(finished bool) {
//	    if finished {
//	        swapContent()
//	    }
//	})
package animation

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
	tickerOrder   uint64
)

// Ticker calls a callback on each frame while active. The callback receives
// the time elapsed since Start.
type Ticker struct {
	callback func(elapsed time.Duration)
	isActive bool
	start    time.Time
	seq      uint64
}

// NewTicker creates a ticker with the given callback.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{callback: callback}
}

// Start activates the ticker.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = Now()
	tickerMu.Lock()
	tickerOrder++
	t.seq = tickerOrder
	activeTickers[t] = struct{}{}
	tickerMu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	tickerMu.Lock()
	delete(activeTickers, t)
	tickerMu.Unlock()
}

// IsActive reports whether the ticker is running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// StepTickers advances every active ticker in start order. Call it once per
// frame from the UI thread.
func StepTickers() {
	tickerMu.Lock()
	if len(activeTickers) == 0 {
		tickerMu.Unlock()
		return
	}
	tickers := make([]*Ticker, 0, len(activeTickers))
	for ticker := range activeTickers {
		tickers = append(tickers, ticker)
	}
	tickerMu.Unlock()

	slices.SortFunc(tickers, func(a, b *Ticker) int { return cmp.Compare(a.seq, b.seq) })
	now := Now()
	for _, ticker := range tickers {
		// A callback earlier in this frame may have stopped it.
		if ticker.isActive && ticker.callback != nil {
			ticker.callback(now.Sub(ticker.start))
		}
	}
}

// HasActiveTickers reports whether any ticker is running.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0
}
