package core

// UseController creates a controller owned by the state. It is disposed
// together with the state.
//
//	func (s *myState) InitState() {
//	    s.fade = core.UseController(s, func() *animation.AnimationController {
//	        return animation.NewAnimationController(100 * time.Millisecond)
//	    })
//	}
func UseController[C Disposable](s stateBase, create func() C) C {
	controller := create()
	s.base().OnDispose(controller.Dispose)
	return controller
}

// UseSubscription registers the unsubscribe function returned by subscribe
// so that it runs when the state is disposed.
//
//	core.UseSubscription(s, func() func() {
//	    return ctrl.AddListener(func() { s.SetState(nil) })
//	})
func UseSubscription(s stateBase, subscribe func() (unsubscribe func())) {
	if unsubscribe := subscribe(); unsubscribe != nil {
		s.base().OnDispose(unsubscribe)
	}
}
