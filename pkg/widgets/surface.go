package widgets

import (
	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/graphics"
)

// Surface fills the available area with Color and paints Child on top.
// A Surface with no Child is a valid empty screen.
type Surface struct {
	core.PaintBase
	// Color is the fill color. Transparent paints nothing.
	Color graphics.Color
	// Child is painted above the fill. May be nil.
	Child core.Widget
}

func (s Surface) ChildWidgets() []core.Widget {
	if s.Child == nil {
		return nil
	}
	return []core.Widget{s.Child}
}

func (s Surface) Paint(canvas graphics.Canvas, paintChildren func()) {
	if s.Color.Alpha() > 0 {
		canvas.DrawSurface(s.Color)
	}
	paintChildren()
}
