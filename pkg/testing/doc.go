// Package testing provides a widget testing harness for fadenav.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestHome(t *testing.T) {
//	    tester := fadetest.NewWidgetTesterWithT(t)
//	    if err := tester.PumpWidget(app); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    if !tester.Find(fadetest.ByText("Home")).Exists() {
//	        t.Error("expected home screen")
//	    }
//	}
//
// # Animation Testing
//
// The tester installs a fake clock. Advance it and pump to step animations
// deterministically:
//
//	tester.Clock().Advance(50 * time.Millisecond)
//	tester.Pump()
//
// or let PumpAndSettle run 16ms frames until nothing is animating.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import fadetest "github.com/go-drift/fadenav/pkg/testing"
package testing
