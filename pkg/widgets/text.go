package widgets

import (
	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/graphics"
)

// Text displays a single line of text. A zero Color paints black.
type Text struct {
	core.PaintBase
	Content string
	Color   graphics.Color
}

func (t Text) ChildWidgets() []core.Widget { return nil }

func (t Text) Paint(canvas graphics.Canvas, paintChildren func()) {
	color := t.Color
	if color == graphics.ColorTransparent {
		color = graphics.ColorBlack
	}
	canvas.DrawText(t.Content, color)
}
