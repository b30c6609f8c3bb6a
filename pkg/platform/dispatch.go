package platform

import (
	stderrors "errors"
	"sync"
)

// ErrNoDispatcher means a background event arrived before a host registered
// a dispatcher, so it could not reach the UI thread.
var ErrNoDispatcher = stderrors.New("no dispatcher registered")

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the dispatch function used to schedule callbacks on the UI thread.
// Hosts call it once during startup, usually with a [DispatchQueue]'s Post.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI thread.
// Returns true if the callback was successfully scheduled, false if no dispatch function
// is registered or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// DispatchQueue buffers callbacks posted from any goroutine until the UI
// thread drains them at the start of a frame.
type DispatchQueue struct {
	mu      sync.Mutex
	pending []func()
	notify  func()
}

// NewDispatchQueue creates a queue. notify, if non-nil, is called after every
// Post so the host can wake its frame loop.
func NewDispatchQueue(notify func()) *DispatchQueue {
	return &DispatchQueue{notify: notify}
}

// Post enqueues callback. Safe for concurrent use.
func (q *DispatchQueue) Post(callback func()) {
	q.mu.Lock()
	q.pending = append(q.pending, callback)
	notify := q.notify
	q.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// Drain runs queued callbacks in post order, including callbacks posted while
// draining. It reports how many ran.
func (q *DispatchQueue) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		pending := q.pending
		q.pending = nil
		q.mu.Unlock()
		if len(pending) == 0 {
			return ran
		}
		for _, callback := range pending {
			callback()
			ran++
		}
	}
}

// Len returns the number of queued callbacks.
func (q *DispatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
