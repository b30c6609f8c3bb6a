package core

import "sync"

// stateBase is satisfied by any struct that embeds StateBase.
type stateBase interface {
	base() *StateBase
}

func (s *StateBase) base() *StateBase { return s }

// StateBase provides the common plumbing for State implementations. Embed it
// and override only the lifecycle methods you need.
type StateBase struct {
	element   *StatefulElement
	disposers []func()
	disposed  bool
	mu        sync.Mutex
}

func (s *StateBase) setElement(element *StatefulElement) {
	s.element = element
}

// Element returns the element hosting this state, or nil before mount.
func (s *StateBase) Element() *StatefulElement {
	return s.element
}

// Context returns the build context of the hosting element.
func (s *StateBase) Context() BuildContext {
	if s.element == nil {
		return nil
	}
	return s.element
}

// SetState runs fn and schedules a rebuild. It is a no-op after disposal.
//
// SetState must only be called from the UI thread. Background goroutines go
// through platform.Dispatch.
func (s *StateBase) SetState(fn func()) {
	if s.IsDisposed() {
		return
	}
	if fn != nil {
		fn()
	}
	if s.element != nil {
		s.element.MarkNeedsBuild()
	}
}

// OnDispose registers cleanup to run when the state is disposed. Cleanups
// run in reverse registration order. Registering after disposal runs
// cleanup immediately.
func (s *StateBase) OnDispose(cleanup func()) {
	if cleanup == nil {
		return
	}
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		cleanup()
		return
	}
	s.disposers = append(s.disposers, cleanup)
	s.mu.Unlock()
}

// RunDisposers marks the state disposed and runs registered cleanups once.
func (s *StateBase) RunDisposers() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	disposers := s.disposers
	s.disposers = nil
	s.mu.Unlock()

	for i := len(disposers) - 1; i >= 0; i-- {
		disposers[i]()
	}
}

// Dispose runs the registered cleanups. States that override Dispose must
// call s.StateBase.Dispose().
func (s *StateBase) Dispose() {
	s.RunDisposers()
}

// InitState is a no-op default.
func (s *StateBase) InitState() {}

// Build is a default that renders nothing.
func (s *StateBase) Build(ctx BuildContext) Widget {
	return nil
}

// DidChangeDependencies is a no-op default.
func (s *StateBase) DidChangeDependencies() {}

// DidUpdateWidget is a no-op default.
func (s *StateBase) DidUpdateWidget(oldWidget StatefulWidget) {}

// IsDisposed reports whether Dispose has run.
func (s *StateBase) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
