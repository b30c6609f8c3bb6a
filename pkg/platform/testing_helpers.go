package platform

// SetupTestDispatch installs a synchronous dispatch function and clears the
// back button handlers. The cleanup function should be testing.T.Cleanup or
// equivalent; it registers a teardown that calls ResetForTest.
//
//	platform.SetupTestDispatch(t.Cleanup)
func SetupTestDispatch(cleanup func(func())) {
	BackButton.reset()
	RegisterDispatch(func(cb func()) { cb() })
	cleanup(ResetForTest)
}

// ResetForTest removes the dispatcher and every back handler.
func ResetForTest() {
	RegisterDispatch(nil)
	BackButton.reset()
}
