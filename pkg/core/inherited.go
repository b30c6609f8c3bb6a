package core

import "reflect"

// InheritedElement hosts an [InheritedWidget] and tracks the descendants that
// resolved it. When the widget is replaced and UpdateShouldNotify returns
// true, every dependent is notified and rebuilt.
type InheritedElement struct {
	elementBase
	child      Element
	dependents map[Element]struct{}
}

// NewInheritedElement creates an InheritedElement. The framework sets the
// widget and build owner during inflation.
func NewInheritedElement() *InheritedElement {
	return &InheritedElement{dependents: make(map[Element]struct{})}
}

func (e *InheritedElement) Mount(parent Element, slot any) {
	e.attach(parent, slot)
	e.RebuildIfNeeded()
}

func (e *InheritedElement) Update(newWidget Widget) {
	oldWidget := e.widget.(InheritedWidget)
	e.widget = newWidget
	if newWidget.(InheritedWidget).UpdateShouldNotify(oldWidget) {
		for dependent := range e.dependents {
			notifyDependent(dependent)
		}
	}
	e.MarkNeedsBuild()
}

func (e *InheritedElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.dependents = nil
}

func (e *InheritedElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	e.child = updateChild(e.child, e.widget.(InheritedWidget).ChildWidget(), e, e.buildOwner)
}

func (e *InheritedElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// AddDependent registers an element as depending on this inherited widget.
func (e *InheritedElement) AddDependent(dependent Element) {
	if e.dependents == nil {
		e.dependents = make(map[Element]struct{})
	}
	e.dependents[dependent] = struct{}{}
}

// RemoveDependent unregisters an element.
func (e *InheritedElement) RemoveDependent(dependent Element) {
	delete(e.dependents, dependent)
}

// DependentCount returns the number of registered dependents.
func (e *InheritedElement) DependentCount() int {
	return len(e.dependents)
}

func notifyDependent(element Element) {
	if m, ok := element.(interface{ isMounted() bool }); ok && !m.isMounted() {
		return
	}
	if stateful, ok := element.(*StatefulElement); ok && stateful.state != nil {
		stateful.state.DidChangeDependencies()
	}
	element.MarkNeedsBuild()
}

// dependOnInherited walks up from element's parent to the nearest
// InheritedElement whose widget has the requested type.
func dependOnInherited(element Element, inheritedType reflect.Type) any {
	if element == nil {
		return nil
	}
	for current := parentOf(element); current != nil; current = parentOf(current) {
		inherited, ok := current.(*InheritedElement)
		if !ok {
			continue
		}
		widgetType := reflect.TypeOf(inherited.widget)
		if widgetType == inheritedType || (widgetType.Kind() == reflect.Pointer && widgetType.Elem() == inheritedType) {
			inherited.AddDependent(element)
			return inherited.widget
		}
	}
	return nil
}
