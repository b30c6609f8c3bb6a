package navigation

// RouteKey is the untyped name of a route.
type RouteKey string

// Key names a route and binds it to the props type P its component takes.
// Keys are comparable; two keys with the same name and props type are equal.
type Key[P any] struct {
	name RouteKey
}

// NewKey returns the key for the route called name.
func NewKey[P any](name string) Key[P] {
	return Key[P]{name: RouteKey(name)}
}

// Name returns the route name.
func (k Key[P]) Name() RouteKey {
	return k.name
}

func (k Key[P]) String() string {
	return string(k.name)
}

// NoProps is the props type of routes whose component takes no props.
type NoProps struct{}
