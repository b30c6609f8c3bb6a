package navigation

import (
	"context"

	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/platform"
)

// subscribeBack registers the router with the process back button for as
// long as it is mounted.
func (s *navigationState) subscribeBack() {
	core.UseSubscription(s, func() func() {
		return platform.BackButton.AddHandler(s.handleBack)
	})
}

// handleBack hands the signal to the current OnHardwareBackPress and
// consumes it.
func (s *navigationState) handleBack() bool {
	if s.IsDisposed() {
		return false
	}
	s.logger.Debug(context.Background(), "back pressed")
	s.notify(Observer.DidBackPress, RouteEvent{From: s.active.Key})
	if handler := s.widget().OnHardwareBackPress; handler != nil {
		handler(s.navigator)
	}
	return true
}
