package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/widgets"
)

// Finder locates elements in the element tree.
type Finder interface {
	// Evaluate returns the matches under root in depth-first pre-order.
	Evaluate(root core.Element) []core.Element
	// Description names the finder in failure messages.
	Description() string
}

// FinderResult holds the elements a finder matched.
type FinderResult struct {
	elements []core.Element
	finder   Finder
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match and panics when there is none.
func (r FinderResult) First() core.Element {
	if len(r.elements) == 0 {
		panic(fmt.Sprintf("finder matched nothing: %s", r.describe()))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match, or nil.
func (r FinderResult) FirstOrNil() core.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// All returns every match in traversal order.
func (r FinderResult) All() []core.Element { return r.elements }

// Count returns the number of matches.
func (r FinderResult) Count() int { return len(r.elements) }

// Exists reports whether anything matched.
func (r FinderResult) Exists() bool { return len(r.elements) > 0 }

// Widget returns the widget of the first match.
func (r FinderResult) Widget() core.Widget { return r.First().Widget() }

// Texts returns the content of every matched [widgets.Text], skipping other
// widgets. Unlike a display list it includes text faded to zero opacity.
func (r FinderResult) Texts() []string {
	var out []string
	for _, e := range r.elements {
		if t, ok := e.Widget().(widgets.Text); ok {
			out = append(out, t.Content)
		}
	}
	return out
}

// match is a Finder backed by a predicate.
type match struct {
	desc string
	fn   func(core.Element) bool
}

func (m match) Evaluate(root core.Element) []core.Element {
	var found []core.Element
	walk(root, func(e core.Element) {
		if m.fn(e) {
			found = append(found, e)
		}
	})
	return found
}

func (m match) Description() string { return m.desc }

// ByPredicate matches elements satisfying fn.
func ByPredicate(fn func(core.Element) bool) Finder {
	return match{desc: "ByPredicate(...)", fn: fn}
}

// ByType matches elements whose widget has type T.
func ByType[T core.Widget]() Finder {
	want := reflect.TypeFor[T]()
	return match{
		desc: fmt.Sprintf("ByType(%s)", want),
		fn:   func(e core.Element) bool { return reflect.TypeOf(e.Widget()) == want },
	}
}

// ByKey matches elements whose widget key equals key. Route views are keyed
// by their route, so ByKey(navigation.RouteKey("home")) finds the mounted
// home route.
func ByKey(key any) Finder {
	return match{
		desc: fmt.Sprintf("ByKey(%v)", key),
		fn:   func(e core.Element) bool { return keysEqual(e.Widget().Key(), key) },
	}
}

func keysEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

// ByText matches [widgets.Text] with exactly this content.
func ByText(text string) Finder {
	return textMatch(fmt.Sprintf("ByText(%q)", text), func(s string) bool { return s == text })
}

// ByTextContaining matches [widgets.Text] whose content contains substring.
func ByTextContaining(substring string) Finder {
	return textMatch(fmt.Sprintf("ByTextContaining(%q)", substring), func(s string) bool {
		return strings.Contains(s, substring)
	})
}

func textMatch(desc string, accept func(string) bool) Finder {
	return match{desc: desc, fn: func(e core.Element) bool {
		t, ok := e.Widget().(widgets.Text)
		return ok && accept(t.Content)
	}}
}

// ByShortcut matches [widgets.Shortcuts] that bind key.
func ByShortcut(key string) Finder {
	return match{desc: fmt.Sprintf("ByShortcut(%q)", key), fn: func(e core.Element) bool {
		s, ok := e.Widget().(widgets.Shortcuts)
		if !ok {
			return false
		}
		_, bound := s.Bindings[key]
		return bound
	}}
}

// Descendant matches elements satisfying matching that sit strictly below
// an element satisfying of.
func Descendant(of, matching Finder) Finder {
	desc := fmt.Sprintf("Descendant(of: %s, matching: %s)", of.Description(), matching.Description())
	return descendant{of: of, matching: matching, desc: desc}
}

type descendant struct {
	of, matching Finder
	desc         string
}

func (d descendant) Evaluate(root core.Element) []core.Element {
	var found []core.Element
	seen := make(map[core.Element]bool)
	for _, ancestor := range d.of.Evaluate(root) {
		ancestor.VisitChildren(func(child core.Element) bool {
			for _, e := range d.matching.Evaluate(child) {
				if !seen[e] {
					seen[e] = true
					found = append(found, e)
				}
			}
			return true
		})
	}
	return found
}

func (d descendant) Description() string { return d.desc }

// walk visits root and its subtree in depth-first pre-order.
func walk(root core.Element, visit func(core.Element)) {
	visit(root)
	root.VisitChildren(func(child core.Element) bool {
		walk(child, visit)
		return true
	})
}
