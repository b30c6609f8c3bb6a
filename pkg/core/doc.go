// Package core provides the widget and element framework that hosts the
// router.
//
// Widgets are immutable descriptions of part of the UI. Elements are their
// mounted instances: they own identity, state and children, and rebuild when
// marked dirty. A [BuildOwner] collects dirty elements and rebuilds them in
// depth order on the UI thread.
//
// # Stateful Widgets
//
// Embed StateBase in a state struct:
//
//	type counterState struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (s *counterState) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: fmt.Sprintf("Count: %d", s.count)}
//	}
//
// # Inherited Widgets
//
// An [InheritedWidget] publishes a value to its subtree. Descendants resolve
// it with [BuildContext.DependOnInherited] and are rebuilt when the value
// changes. Resolution only sees ancestors: siblings and unrelated subtrees
// cannot find the value.
//
// # Painting
//
// Widgets implementing [PaintWidget] own a paint step. [PaintTree] walks the
// element tree and lets each of them draw onto a graphics.Canvas.
package core
