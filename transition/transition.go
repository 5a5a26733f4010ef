// Package transition computes the routes exited and entered when moving
// from one matched route to another.
package transition

import "github.com/fasthttp/staterouter/tree"

// Transition goes from a route, nil when nothing is active yet, to
// another route with the params the target was matched with.
type Transition struct {
	from   *tree.Route
	to     *tree.Route
	params tree.Params
	scope  string
}

// New returns a transition. The scope is used as link prefix when
// comparing the ancestors of both routes.
func New(from, to *tree.Route, params tree.Params, scope string) *Transition {
	if params == nil {
		params = make(tree.Params)
	}

	return &Transition{
		from:   from,
		to:     to,
		params: params,
		scope:  scope,
	}
}

// From returns the route being left.
func (t *Transition) From() *tree.Route {
	return t.from
}

// To returns the route being entered.
func (t *Transition) To() *tree.Route {
	return t.to
}

// Params returns the params of the target route.
func (t *Transition) Params() tree.Params {
	return t.params
}

// Scope returns the link scope.
func (t *Transition) Scope() string {
	return t.scope
}

// Disabled returns the routes to exit, deepest first.
func (t *Transition) Disabled(fromParams tree.Params) []*tree.Route {
	routes := make([]*tree.Route, 0)

	if t.from == nil {
		return routes
	}

	origin := t.from.Hierarchy()

	for i := len(origin) - 1; i >= t.common(fromParams); i-- {
		routes = append(routes, origin[i])
	}

	return routes
}

// Enabled returns the routes to enter, shallowest first.
func (t *Transition) Enabled(fromParams tree.Params) []*tree.Route {
	target := t.to.Hierarchy()
	k := t.common(fromParams)

	routes := make([]*tree.Route, 0, len(target)-k)

	return append(routes, target[k:]...)
}

// Junction returns the parent of the first entered route, nil when no
// route is entered.
func (t *Transition) Junction(fromParams tree.Params) *tree.Route {
	enabled := t.Enabled(fromParams)
	if len(enabled) == 0 {
		return nil
	}

	return enabled[0].Parent()
}

// common returns the length of the shared ancestor prefix of both routes.
func (t *Transition) common(fromParams tree.Params) int {
	if t.from == nil {
		return 0
	}

	origin := t.from.Hierarchy()
	target := t.to.Hierarchy()

	k := 0
	for k < len(origin) && k < len(target) && t.same(origin[k], target[k], fromParams) {
		k++
	}

	return k
}

// same reports whether a route stays active: same node, same query
// variables and same link under both params.
func (t *Transition) same(a, b *tree.Route, fromParams tree.Params) bool {
	if a != b || !a.MatchParams(fromParams, t.params) {
		return false
	}

	opts := &tree.LinkOptions{Scope: t.scope}

	from, err := a.Link(fromParams, opts)
	if err != nil {
		return false
	}

	to, err := b.Link(t.params, opts)
	if err != nil {
		return false
	}

	return from == to
}
