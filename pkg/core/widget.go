package core

import (
	"reflect"

	"github.com/go-drift/fadenav/pkg/graphics"
)

// Widget is an immutable description of part of the UI.
type Widget interface {
	CreateElement() Element
	Key() any
}

// StatelessWidget builds its subtree from its own configuration.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget creates a State that survives rebuilds.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// State is the mutable half of a StatefulWidget.
type State interface {
	InitState()
	Build(ctx BuildContext) Widget
	DidUpdateWidget(oldWidget StatefulWidget)
	DidChangeDependencies()
	Dispose()
}

// InheritedWidget publishes a value to its subtree.
type InheritedWidget interface {
	Widget
	ChildWidget() Widget
	// UpdateShouldNotify reports whether dependents must rebuild when this
	// widget replaces old.
	UpdateShouldNotify(old InheritedWidget) bool
}

// PaintWidget draws itself and its children onto a canvas.
type PaintWidget interface {
	Widget
	ChildWidgets() []Widget
	// Paint draws the widget. paintChildren paints the children in order and
	// may be called at most once.
	Paint(canvas graphics.Canvas, paintChildren func())
}

// BuildContext locates a widget in the tree.
type BuildContext interface {
	// Widget returns the widget currently configuring this location.
	Widget() Widget
	// FindAncestor walks up from the parent and returns the first element
	// matching predicate, or nil.
	FindAncestor(predicate func(Element) bool) Element
	// DependOnInherited returns the nearest ancestor InheritedWidget of the
	// given type and registers for rebuilds when it changes. It returns nil
	// when no such ancestor exists.
	DependOnInherited(inheritedType reflect.Type) any
}

// Element is a mounted widget.
type Element interface {
	BuildContext
	Mount(parent Element, slot any)
	Update(newWidget Widget)
	Unmount()
	RebuildIfNeeded()
	MarkNeedsBuild()
	VisitChildren(visitor func(Element) bool)
	Depth() int
}

// Disposable is implemented by controllers owned by a State.
type Disposable interface {
	Dispose()
}

// StatelessBase provides CreateElement and Key for stateless widgets:
//
//	type Greeting struct {
//	    core.StatelessBase
//	    Name string
//	}
type StatelessBase struct{}

// CreateElement returns a new StatelessElement.
func (StatelessBase) CreateElement() Element { return &StatelessElement{} }

// Key returns nil (no key).
func (StatelessBase) Key() any { return nil }

// StatefulBase provides CreateElement and Key for stateful widgets.
type StatefulBase struct{}

// CreateElement returns a new StatefulElement.
func (StatefulBase) CreateElement() Element { return &StatefulElement{} }

// Key returns nil (no key).
func (StatefulBase) Key() any { return nil }

// InheritedBase provides CreateElement and Key for inherited widgets.
type InheritedBase struct{}

// CreateElement returns a new InheritedElement.
func (InheritedBase) CreateElement() Element { return NewInheritedElement() }

// Key returns nil (no key).
func (InheritedBase) Key() any { return nil }

// PaintBase provides CreateElement and Key for paint widgets.
type PaintBase struct{}

// CreateElement returns a new PaintElement.
func (PaintBase) CreateElement() Element { return &PaintElement{} }

// Key returns nil (no key).
func (PaintBase) Key() any { return nil }

// TypeName returns a short type name for diagnostics, e.g. "widgets.Text".
func TypeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
