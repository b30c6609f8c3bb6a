// Package widgets provides the paint widgets used by the fadenav router and
// its hosts.
//
// Widgets are plain struct literals:
//
//	widgets.Surface{
//	    Color: graphics.ColorPaleCyan,
//	    Child: widgets.Opacity{
//	        Opacity: 0.5,
//	        Child:   widgets.Text{Content: "Home"},
//	    },
//	}
//
// Surface expands to fill whatever the host gives it, so a router's
// background always covers the screen. Opacity composites its child through
// a layer. Text and Column cover the demo screens, and Shortcuts binds host
// key names to callbacks.
package widgets
