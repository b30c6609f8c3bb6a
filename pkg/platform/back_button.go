package platform

import "sync"

// BackButton is the process-wide source of hardware back signals.
var BackButton = &BackButtonService{}

// BackHandler handles a back signal. It returns true when the signal is
// consumed, which stops later handlers from seeing it.
type BackHandler func() bool

// BackButtonService delivers back signals to registered handlers, newest
// first.
type BackButtonService struct {
	mu       sync.Mutex
	handlers []backEntry
	nextID   uint64
}

type backEntry struct {
	id      uint64
	handler BackHandler
}

// AddHandler registers handler and returns a function that removes it.
// The remove function is idempotent.
func (s *BackButtonService) AddHandler(handler BackHandler) (remove func()) {
	if handler == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, backEntry{id: id, handler: handler})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.removeHandler(id) })
	}
}

func (s *BackButtonService) removeHandler(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, entry := range s.handlers {
		if entry.id == id {
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return
		}
	}
}

// Press delivers one back signal on the calling goroutine and reports
// whether a handler consumed it. Call it from the UI thread; background
// sources use [PressFromBackground].
func (s *BackButtonService) Press() bool {
	s.mu.Lock()
	handlers := make([]BackHandler, len(s.handlers))
	for i, entry := range s.handlers {
		handlers[len(handlers)-1-i] = entry.handler
	}
	s.mu.Unlock()

	for _, handler := range handlers {
		if handler() {
			return true
		}
	}
	return false
}

// PressFromBackground schedules a Press on the UI thread. It returns false
// when no dispatcher is registered.
func (s *BackButtonService) PressFromBackground() bool {
	return Dispatch(func() { s.Press() })
}

// HandlerCount returns the number of registered handlers.
func (s *BackButtonService) HandlerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

func (s *BackButtonService) reset() {
	s.mu.Lock()
	s.handlers = nil
	s.mu.Unlock()
}
