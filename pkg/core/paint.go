package core

import "github.com/go-drift/fadenav/pkg/graphics"

// PaintTree paints every PaintWidget below root onto canvas, depth first.
func PaintTree(root Element, canvas graphics.Canvas) {
	if root == nil || canvas == nil {
		return
	}
	paintElement(root, canvas)
}

func paintElement(element Element, canvas graphics.Canvas) {
	paintChildren := func() {
		element.VisitChildren(func(child Element) bool {
			paintElement(child, canvas)
			return true
		})
	}
	if painter, ok := element.Widget().(PaintWidget); ok {
		painted := false
		painter.Paint(canvas, func() {
			if painted {
				return
			}
			painted = true
			paintChildren()
		})
		return
	}
	paintChildren()
}

// Record paints root into a new display list.
func Record(root Element) *graphics.DisplayList {
	var recorder graphics.PictureRecorder
	PaintTree(root, recorder.BeginRecording())
	return recorder.EndRecording()
}
