package navigation

import (
	"fmt"
	"slices"

	"github.com/go-drift/fadenav/pkg/core"
)

// ConfigReason classifies a [ConfigError].
type ConfigReason int

const (
	// ReasonInvalidChild means a child of Navigation is not a declared Route.
	ReasonInvalidChild ConfigReason = iota + 1
	// ReasonEmptyRoutes means Navigation has no routes.
	ReasonEmptyRoutes
	// ReasonDuplicateKey means two routes share a key.
	ReasonDuplicateKey
)

func (r ConfigReason) String() string {
	switch r {
	case ReasonInvalidChild:
		return "invalid child"
	case ReasonEmptyRoutes:
		return "empty routes"
	case ReasonDuplicateKey:
		return "duplicate key"
	default:
		return "unknown"
	}
}

// ConfigError reports an invalid set of declared routes.
type ConfigError struct {
	Reason ConfigReason
	// Position is the index of the offending child, or -1.
	Position int
	// Type is the offending child's type, for ReasonInvalidChild.
	Type string
	// Key is the repeated key, for ReasonDuplicateKey.
	Key RouteKey
	// First is the index of the first declaration of Key.
	First int
}

func (e *ConfigError) Error() string {
	switch e.Reason {
	case ReasonInvalidChild:
		return fmt.Sprintf("children of Navigation must be Route declarations: child %d is %s", e.Position, e.Type)
	case ReasonEmptyRoutes:
		return "empty routes are not allowed: declare at least one route or remove Navigation from the tree"
	case ReasonDuplicateKey:
		return fmt.Sprintf("route %q declared more than once: children %d and %d", e.Key, e.First, e.Position)
	default:
		return "invalid route configuration"
	}
}

// RouteTable maps route keys to descriptors. It is never mutated after
// BuildRouteTable returns.
type RouteTable struct {
	routes     map[RouteKey]*Descriptor
	order      []RouteKey
	defaultKey RouteKey
}

// BuildRouteTable validates children and derives the route table.
//
// Every child must be a Route created by Declare or DeclareBare, at least one
// is required, and keys must be unique. The default route is the first one
// marked AsDefault, or the first declared.
func BuildRouteTable(children []core.Widget) (*RouteTable, error) {
	table := &RouteTable{routes: make(map[RouteKey]*Descriptor, len(children))}
	firstSeen := make(map[RouteKey]int, len(children))
	defaultSet := false

	for i, child := range children {
		route, ok := child.(Route)
		if !ok || route.descriptor == nil {
			return nil, &ConfigError{Reason: ReasonInvalidChild, Position: i, Type: core.TypeName(child)}
		}
		d := route.descriptor
		if first, dup := firstSeen[d.Key]; dup {
			return nil, &ConfigError{Reason: ReasonDuplicateKey, Position: i, Key: d.Key, First: first}
		}
		firstSeen[d.Key] = i
		table.routes[d.Key] = d
		table.order = append(table.order, d.Key)
		if d.Default && !defaultSet {
			table.defaultKey = d.Key
			defaultSet = true
		}
	}

	if len(table.order) == 0 {
		return nil, &ConfigError{Reason: ReasonEmptyRoutes, Position: -1}
	}
	if !defaultSet {
		table.defaultKey = table.order[0]
	}
	return table, nil
}

// Lookup returns the descriptor for key.
func (t *RouteTable) Lookup(key RouteKey) (*Descriptor, bool) {
	if t == nil {
		return nil, false
	}
	d, ok := t.routes[key]
	return d, ok
}

// Default returns the default route.
func (t *RouteTable) Default() *Descriptor {
	return t.routes[t.defaultKey]
}

// Keys returns the route keys in declaration order.
func (t *RouteTable) Keys() []RouteKey {
	return append([]RouteKey(nil), t.order...)
}

// Len returns the number of routes.
func (t *RouteTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// SameRoutes reports whether both tables declare the same keys in the same
// order with the same default. Components and initial props are not
// compared: they are read from whichever table is installed, so a route
// re-declared with a new component renders it without a reset.
func (t *RouteTable) SameRoutes(other *RouteTable) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.defaultKey == other.defaultKey && slices.Equal(t.order, other.order)
}
