package widgets

import (
	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/graphics"
)

// Shortcuts binds key names, as reported by the host ("1", "enter", "ctrl+c"),
// to callbacks for its subtree. The deepest Shortcuts with a matching binding
// wins; see [DispatchKey].
type Shortcuts struct {
	core.PaintBase
	Bindings map[string]func()
	Child    core.Widget
}

func (s Shortcuts) ChildWidgets() []core.Widget {
	if s.Child == nil {
		return nil
	}
	return []core.Widget{s.Child}
}

func (s Shortcuts) Paint(canvas graphics.Canvas, paintChildren func()) {
	paintChildren()
}

// DispatchKey delivers key to the deepest mounted Shortcuts below root that
// binds it. It reports whether a binding ran.
func DispatchKey(root core.Element, key string) bool {
	if root == nil {
		return false
	}
	handled := false
	root.VisitChildren(func(child core.Element) bool {
		if DispatchKey(child, key) {
			handled = true
			return false
		}
		return true
	})
	if handled {
		return true
	}
	if shortcuts, ok := root.Widget().(Shortcuts); ok {
		if action := shortcuts.Bindings[key]; action != nil {
			action()
			return true
		}
	}
	return false
}
