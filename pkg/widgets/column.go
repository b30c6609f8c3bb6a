package widgets

import (
	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/graphics"
)

// Column paints its children top to bottom. Nil children are skipped.
type Column struct {
	core.PaintBase
	Children []core.Widget
}

func (c Column) ChildWidgets() []core.Widget {
	children := make([]core.Widget, 0, len(c.Children))
	for _, child := range c.Children {
		if child != nil {
			children = append(children, child)
		}
	}
	return children
}

func (c Column) Paint(canvas graphics.Canvas, paintChildren func()) {
	paintChildren()
}

// ColumnOf is a convenience for Column{Children: children}.
func ColumnOf(children ...core.Widget) Column {
	return Column{Children: children}
}
