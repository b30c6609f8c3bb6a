package widgets

import (
	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/graphics"
)

// Opacity applies transparency to its child widget.
//
//	widgets.Opacity{
//	    Opacity: 0.5,
//	    Child:   content,
//	}
//
// The Opacity value should be between 0.0 (fully transparent) and 1.0 (fully opaque).
// When Opacity is 0.0, the child is not painted at all.
// When Opacity is 1.0, the child is painted directly without a layer.
// Intermediate values use SaveLayerAlpha.
//
// The child stays mounted at every opacity, so its state survives a fade.
type Opacity struct {
	core.PaintBase
	// Opacity is the transparency value (0.0 to 1.0).
	Opacity float64
	// Child is the widget to which opacity is applied.
	Child core.Widget
}

func (o Opacity) ChildWidgets() []core.Widget {
	if o.Child == nil {
		return nil
	}
	return []core.Widget{o.Child}
}

func (o Opacity) Paint(canvas graphics.Canvas, paintChildren func()) {
	switch {
	case o.Opacity <= 0:
		return
	case o.Opacity >= 1:
		paintChildren()
	default:
		canvas.SaveLayerAlpha(o.Opacity)
		paintChildren()
		canvas.Restore()
	}
}
