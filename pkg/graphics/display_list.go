package graphics

import (
	"fmt"
	"strings"
)

// Canvas receives paint commands from the widget tree.
type Canvas interface {
	// SaveLayerAlpha starts a layer whose content is composited with alpha.
	SaveLayerAlpha(alpha float64)
	// Restore ends the most recent layer.
	Restore()
	// DrawSurface fills the current bounds with color.
	DrawSurface(color Color)
	// DrawText draws one line of text.
	DrawText(text string, color Color)
}

// OpKind identifies a recorded paint operation.
type OpKind int

const (
	OpSaveLayerAlpha OpKind = iota
	OpRestore
	OpSurface
	OpText
)

// Op is one recorded paint operation.
type Op struct {
	Kind  OpKind
	Alpha float64
	Color Color
	Text  string
}

func (o Op) String() string {
	switch o.Kind {
	case OpSaveLayerAlpha:
		return fmt.Sprintf("layer(alpha=%.2f)", o.Alpha)
	case OpRestore:
		return "restore"
	case OpSurface:
		return fmt.Sprintf("surface(%s)", o.Color)
	case OpText:
		return fmt.Sprintf("text(%q, %s)", o.Text, o.Color)
	default:
		return "unknown"
	}
}

// DisplayList is an immutable list of recorded operations.
type DisplayList struct {
	ops []Op
}

// Ops returns the recorded operations.
func (d *DisplayList) Ops() []Op {
	if d == nil {
		return nil
	}
	return d.ops
}

// Paint replays the operations onto canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.Ops() {
		switch op.Kind {
		case OpSaveLayerAlpha:
			canvas.SaveLayerAlpha(op.Alpha)
		case OpRestore:
			canvas.Restore()
		case OpSurface:
			canvas.DrawSurface(op.Color)
		case OpText:
			canvas.DrawText(op.Text, op.Color)
		}
	}
}

// Texts returns the text of every text operation in order.
func (d *DisplayList) Texts() []string {
	var out []string
	for _, op := range d.Ops() {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

func (d *DisplayList) String() string {
	parts := make([]string, 0, len(d.Ops()))
	for _, op := range d.Ops() {
		parts = append(parts, op.String())
	}
	return strings.Join(parts, " ")
}

// PictureRecorder records canvas operations into a DisplayList.
type PictureRecorder struct {
	ops       []Op
	recording bool
}

// BeginRecording starts a recording and returns the canvas to draw on.
func (r *PictureRecorder) BeginRecording() Canvas {
	r.ops = nil
	r.recording = true
	return &recordingCanvas{recorder: r}
}

// EndRecording finishes the recording.
func (r *PictureRecorder) EndRecording() *DisplayList {
	list := &DisplayList{ops: r.ops}
	r.ops = nil
	r.recording = false
	return list
}

func (r *PictureRecorder) append(op Op) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

type recordingCanvas struct {
	recorder *PictureRecorder
}

func (c *recordingCanvas) SaveLayerAlpha(alpha float64) {
	c.recorder.append(Op{Kind: OpSaveLayerAlpha, Alpha: clamp01(alpha)})
}

func (c *recordingCanvas) Restore() {
	c.recorder.append(Op{Kind: OpRestore})
}

func (c *recordingCanvas) DrawSurface(color Color) {
	c.recorder.append(Op{Kind: OpSurface, Color: color})
}

func (c *recordingCanvas) DrawText(text string, color Color) {
	c.recorder.append(Op{Kind: OpText, Text: text, Color: color})
}
