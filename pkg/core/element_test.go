package core

import (
	"reflect"
	"testing"

	"github.com/go-drift/fadenav/pkg/errors"
	"github.com/go-drift/fadenav/pkg/graphics"
)

type label struct {
	PaintBase
	text string
}

func (l label) ChildWidgets() []Widget { return nil }

func (l label) Paint(canvas graphics.Canvas, paintChildren func()) {
	canvas.DrawText(l.text, graphics.ColorBlack)
}

type group struct {
	PaintBase
	children []Widget
}

func (g group) ChildWidgets() []Widget { return g.children }

func (g group) Paint(canvas graphics.Canvas, paintChildren func()) {
	canvas.SaveLayerAlpha(0.5)
	paintChildren()
	canvas.Restore()
}

type greeting struct {
	StatelessBase
	name string
}

func (g greeting) Build(ctx BuildContext) Widget {
	return label{text: "hello " + g.name}
}

type theme struct {
	InheritedBase
	name  string
	child Widget
}

func (t theme) ChildWidget() Widget { return t.child }

func (t theme) UpdateShouldNotify(old InheritedWidget) bool {
	return old.(theme).name != t.name
}

type themed struct {
	StatefulBase
}

func (themed) CreateState() State { return &themedState{} }

type themedState struct {
	StateBase
	builds  int
	changes int
}

func (s *themedState) DidChangeDependencies() { s.changes++ }

func (s *themedState) Build(ctx BuildContext) Widget {
	s.builds++
	if t, ok := ctx.DependOnInherited(reflect.TypeOf(theme{})).(theme); ok {
		return label{text: t.name}
	}
	return label{text: "none"}
}

type panicky struct {
	StatelessBase
}

func (panicky) Build(ctx BuildContext) Widget {
	panic("boom")
}

type recordingHandler struct {
	builds []*errors.BuildError
}

func (h *recordingHandler) HandleError(*errors.Error)      {}
func (h *recordingHandler) HandlePanic(*errors.PanicError) {}
func (h *recordingHandler) HandleBuildError(err *errors.BuildError) {
	h.builds = append(h.builds, err)
}

func findState[S State](root Element) S {
	var found S
	var walk func(Element) bool
	walk = func(e Element) bool {
		if stateful, ok := e.(*StatefulElement); ok {
			if s, ok := stateful.State().(S); ok {
				found = s
				return false
			}
		}
		e.VisitChildren(walk)
		return true
	}
	walk(root)
	return found
}

func TestMountRootPaintsStatelessTree(t *testing.T) {
	owner := NewBuildOwner()
	root := MountRoot(group{children: []Widget{greeting{name: "a"}, label{text: "b"}}}, owner)

	got := Record(root).String()
	want := `layer(alpha=0.50) text("hello a", #000000) text("b", #000000) restore`
	if got != want {
		t.Errorf("display list = %s, want %s", got, want)
	}
}

func TestUpdateReusesElementOfSameType(t *testing.T) {
	owner := NewBuildOwner()
	root := MountRoot(group{children: []Widget{greeting{name: "a"}}}, owner).(*PaintElement)
	first := root.children[0]

	root.Update(group{children: []Widget{greeting{name: "b"}}})
	owner.FlushBuild()

	if root.children[0] != first {
		t.Error("expected child element to be reused")
	}
	if texts := Record(root).Texts(); !reflect.DeepEqual(texts, []string{"hello b"}) {
		t.Errorf("texts = %v", texts)
	}
}

func TestUpdateRemountsOnTypeChange(t *testing.T) {
	owner := NewBuildOwner()
	root := MountRoot(group{children: []Widget{greeting{name: "a"}, label{text: "x"}}}, owner).(*PaintElement)
	first := root.children[0]

	root.Update(group{children: []Widget{label{text: "y"}}})
	owner.FlushBuild()

	if root.children[0] == first {
		t.Error("expected child element to be replaced")
	}
	if len(root.children) != 1 {
		t.Errorf("children = %d, want 1", len(root.children))
	}
}

func TestInheritedResolvesNearestAncestor(t *testing.T) {
	owner := NewBuildOwner()
	tree := theme{name: "outer", child: group{children: []Widget{
		theme{name: "inner", child: themed{}},
	}}}
	root := MountRoot(tree, owner)

	if texts := Record(root).Texts(); !reflect.DeepEqual(texts, []string{"inner"}) {
		t.Errorf("texts = %v, want [inner]", texts)
	}
}

func TestInheritedMissingReturnsNil(t *testing.T) {
	root := MountRoot(themed{}, NewBuildOwner())
	if texts := Record(root).Texts(); !reflect.DeepEqual(texts, []string{"none"}) {
		t.Errorf("texts = %v, want [none]", texts)
	}
}

func TestInheritedNotifiesDependents(t *testing.T) {
	owner := NewBuildOwner()
	root := MountRoot(theme{name: "light", child: themed{}}, owner).(*InheritedElement)
	state := findState[*themedState](root)

	root.Update(theme{name: "light", child: themed{}})
	owner.FlushBuild()
	if state.changes != 0 {
		t.Errorf("changes = %d after equal update, want 0", state.changes)
	}

	root.Update(theme{name: "dark", child: themed{}})
	owner.FlushBuild()
	if state.changes != 1 {
		t.Errorf("changes = %d, want 1", state.changes)
	}
	if texts := Record(root).Texts(); !reflect.DeepEqual(texts, []string{"dark"}) {
		t.Errorf("texts = %v, want [dark]", texts)
	}
	if root.DependentCount() != 1 {
		t.Errorf("dependents = %d, want 1", root.DependentCount())
	}
}

func TestBuildPanicIsReported(t *testing.T) {
	rec := &recordingHandler{}
	prev := errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(prev) })

	root := MountRoot(group{children: []Widget{panicky{}, label{text: "ok"}}}, NewBuildOwner())

	if len(rec.builds) != 1 {
		t.Fatalf("build errors = %d, want 1", len(rec.builds))
	}
	if rec.builds[0].Recovered != "boom" {
		t.Errorf("recovered = %v", rec.builds[0].Recovered)
	}
	if texts := Record(root).Texts(); !reflect.DeepEqual(texts, []string{"ok"}) {
		t.Errorf("texts = %v, want [ok]", texts)
	}
}

func TestSetStateSchedulesRebuild(t *testing.T) {
	owner := NewBuildOwner()
	frames := 0
	owner.OnNeedsFrame = func() { frames++ }

	var bump func()
	root := MountRoot(Stateful(
		func() int { return 0 },
		func(count int, ctx BuildContext, setState func(func(int) int)) Widget {
			bump = func() { setState(func(c int) int { return c + 1 }) }
			if count == 0 {
				return label{text: "zero"}
			}
			return label{text: "more"}
		},
	), owner)

	bump()
	bump()
	if frames != 1 {
		t.Errorf("frames requested = %d, want 1", frames)
	}
	if !owner.NeedsWork() {
		t.Fatal("expected pending work")
	}
	owner.FlushBuild()
	if owner.NeedsWork() {
		t.Error("expected no pending work after flush")
	}
	if texts := Record(root).Texts(); !reflect.DeepEqual(texts, []string{"more"}) {
		t.Errorf("texts = %v, want [more]", texts)
	}
}

func TestUnmountDisposesState(t *testing.T) {
	root := MountRoot(group{children: []Widget{themed{}}}, NewBuildOwner()).(*PaintElement)
	state := findState[*themedState](root)

	cleaned := false
	state.OnDispose(func() { cleaned = true })
	root.Unmount()

	if !state.IsDisposed() || !cleaned {
		t.Error("expected state to be disposed and cleanup run")
	}
	state.SetState(func() { t.Error("SetState ran after dispose") })
}
