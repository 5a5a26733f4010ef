// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package tree is a hierarchy of named routes.
//
// Each route owns a pattern appended to the pattern of its parent, so the
// route "post.comment" declared with "/{cid}" under "post" declared with
// "post/{id}" matches "post/{id}/{cid}". Routes are addressed by dotted
// names, matched depth first with the first declared child winning, and
// turned back into paths from their parameters.
package tree

import (
	"strings"

	"github.com/fasthttp/staterouter/pattern"
	"github.com/savsgio/gotils"
)

const nameSeparator = "."

// Params maps variable names to values. Matching yields nil for absent
// optional variables, a string for ordinary variables and a []any for
// repeat variables. Generation accepts any printable value and slices.
type Params map[string]any

// Route is a node of the route tree.
//
// WARNING: Not concurrency-safe while routes are being added.
type Route struct {
	name     string
	pattern  string
	content  any
	params   Params
	query    []string
	compiled *pattern.Pattern

	parent   *Route
	children []*Route
	segments map[string]*Route

	data *Data
}

// New returns an empty root route.
func New() *Route {
	return &Route{
		params:   make(Params),
		compiled: pattern.MustParse(""),
		segments: make(map[string]*Route),
		data:     newData(),
	}
}

// NewRoute returns a parentless route with the given pattern.
func NewRoute(p string, content any) (*Route, error) {
	r := New()
	r.content = content

	if err := r.SetPattern(p); err != nil {
		return nil, err
	}

	return r, nil
}

// Name returns the full dotted name, empty for the root.
func (r *Route) Name() string {
	return r.name
}

// Pattern returns the effective pattern without leading slash and query
// variables.
func (r *Route) Pattern() string {
	return r.pattern
}

// SetPattern parses and compiles the pattern. Query variables are declared
// after a '?', e.g. "post/{id}?{foo}&{bar}".
func (r *Route) SetPattern(p string) error {
	raw, qs := cutQuery(p)
	raw = strings.TrimLeft(raw, "/")

	compiled, err := pattern.Parse(raw)
	if err != nil {
		return err
	}

	query := make([]string, 0)

	if qs != "" {
		for _, param := range strings.Split(qs, "&") {
			name := strings.TrimSuffix(strings.TrimPrefix(param, "{"), "}")
			if name != "" && !gotils.StringSliceInclude(query, name) {
				query = append(query, name)
			}
		}
	}

	r.pattern = raw
	r.compiled = compiled
	r.query = query

	return nil
}

// cutQuery splits the pattern at the first '?' outside of braces.
func cutQuery(p string) (string, string) {
	depth := 0

	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		case '?':
			if depth == 0 {
				return p[:i], p[i+1:]
			}
		}
	}

	return p, ""
}

// Compiled returns the compiled pattern.
func (r *Route) Compiled() *pattern.Pattern {
	return r.compiled
}

// Token returns the root token of the pattern.
func (r *Route) Token() *pattern.Group {
	return r.compiled.Token()
}

// Rule returns the compiled rule of the pattern.
func (r *Route) Rule() *pattern.Rule {
	return r.compiled.Rule()
}

// QueryVariables returns the names declared after the '?' of the pattern.
func (r *Route) QueryVariables() []string {
	return r.query
}

// Content returns the payload attached to the route.
func (r *Route) Content() any {
	return r.content
}

// SetContent replaces the payload attached to the route.
func (r *Route) SetContent(content any) *Route {
	r.content = content

	return r
}

// Params returns the default parameters merged by Path.
func (r *Route) Params() Params {
	return r.params
}

// SetParams replaces the default parameters.
func (r *Route) SetParams(params Params) *Route {
	if params == nil {
		params = make(Params)
	}

	r.params = params

	return r
}

// Data returns the free-form data bag of the route.
func (r *Route) Data() *Data {
	return r.data
}

// Parent returns the parent route, nil for a root.
func (r *Route) Parent() *Route {
	return r.parent
}

// IsRoot reports whether the route has no parent.
func (r *Route) IsRoot() bool {
	return r.parent == nil
}

// Children returns the child routes in declaration order.
func (r *Route) Children() []*Route {
	return r.children
}

// Child returns the child registered under the name segment, or nil.
func (r *Route) Child(segment string) *Route {
	return r.segments[segment]
}

// Hierarchy returns the ancestors of the route, root first, and the route
// itself.
func (r *Route) Hierarchy() []*Route {
	depth := 0
	for n := r; n != nil; n = n.parent {
		depth++
	}

	routes := make([]*Route, depth)
	for n := r; n != nil; n = n.parent {
		depth--
		routes[depth] = n
	}

	return routes
}

// Walk calls fn for every descendant, depth first in declaration order.
func (r *Route) Walk(fn func(*Route)) {
	for _, child := range r.children {
		fn(child)
		child.Walk(fn)
	}
}

// Add compiles the pattern and attaches a new route under the dotted name.
// Every segment but the last must exist. An existing route with the same
// name is replaced, keeping its position among its siblings.
func (r *Route) Add(name, p string, content any) (*Route, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	segments := strings.Split(name, nameSeparator)
	parent := r

	for i, segment := range segments[:len(segments)-1] {
		child := parent.Child(segment)
		if child == nil {
			return nil, &UnknownParentError{
				Name:   name,
				Parent: strings.Join(segments[:i+1], nameSeparator),
			}
		}

		parent = child
	}

	return parent.addChild(segments[len(segments)-1], p, content)
}

func (r *Route) addChild(segment, p string, content any) (*Route, error) {
	if segment == "" {
		return nil, ErrEmptyName
	}

	name := segment
	if r.name != "" {
		name = r.name + nameSeparator + segment
	}

	child := &Route{
		name:     name,
		content:  content,
		params:   make(Params),
		parent:   r,
		segments: make(map[string]*Route),
		data:     newData(),
	}

	if err := child.SetPattern(joinPattern(r.pattern, p)); err != nil {
		return nil, err
	}

	if prev, ok := r.segments[segment]; ok {
		for i, c := range r.children {
			if c == prev {
				r.children[i] = child
				break
			}
		}
	} else {
		r.children = append(r.children, child)
	}

	r.segments[segment] = child

	return child, nil
}

// joinPattern appends a child pattern to its parent's with a single '/'.
// The child's query variables stay at the end.
func joinPattern(parent, child string) string {
	child = strings.TrimLeft(child, "/")

	switch {
	case parent == "":
		return child
	case child == "", child[0] == '?':
		return parent + child
	}

	return strings.TrimRight(parent, "/") + "/" + child
}

// Fetch returns the route registered under the dotted name.
func (r *Route) Fetch(name string) (*Route, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	route := r

	for _, segment := range strings.Split(name, nameSeparator) {
		child := route.Child(segment)
		if child == nil {
			return nil, &UnknownRouteError{Name: name, Segment: segment}
		}

		route = child
	}

	return route, nil
}
