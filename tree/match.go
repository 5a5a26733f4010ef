package tree

import (
	"net/url"
	"strings"
)

// Result is a successful match.
type Result struct {
	Route  *Route
	Params Params
}

// Match finds the deepest route matching the whole path. Children are tried
// in declaration order and the first match wins. The query parameters are
// only read for the query variables declared along the matched branch.
//
// The path is matched in its escaped form and every captured value is
// unescaped, so "%2F" inside a segment yields a '/' in the value.
//
// Path variables override query variables, which override the route's
// default params. An absent optional path variable keeps the query value.
func (r *Route) Match(path string, query Params) (*Result, bool) {
	return r.match(strings.TrimLeft(path, "/"), query, nil)
}

func (r *Route) match(path string, query, accumulated Params) (*Result, bool) {
	if !r.compiled.MatchPrefix(path) {
		return nil, false
	}

	scoped := make(Params, len(accumulated)+len(r.query))
	for k, v := range r.QueryParams(query) {
		scoped[k] = v
	}

	for k, v := range accumulated {
		scoped[k] = v
	}

	for _, child := range r.children {
		if result, ok := child.match(path, query, scoped); ok {
			return result, true
		}
	}

	matches := r.compiled.MatchFull(path)
	if matches == nil {
		return nil, false
	}

	params := make(Params, len(r.params)+len(scoped))
	for k, v := range r.params {
		params[k] = v
	}

	for k, v := range scoped {
		params[k] = v
	}

	for k, v := range r.buildVariables(matches) {
		if _, ok := scoped[k]; ok && v == nil {
			continue
		}

		params[k] = v
	}

	return &Result{Route: r, Params: params}, true
}

// buildVariables maps the capture groups of a full match to the route's
// variables.
func (r *Route) buildVariables(matches []string) Params {
	rule := r.compiled.Rule()
	variables := make(Params, len(rule.Variables))

	for _, v := range rule.Variables {
		var captured string
		if v.Index < len(matches) {
			captured = matches[v.Index]
		}

		switch {
		case v.Repeated():
			if captured == "" {
				variables[v.Name] = make([]any, 0)
			} else {
				variables[v.Name] = unescapeList(r.compiled.Expand(v.Name, captured))
			}
		case captured == "":
			variables[v.Name] = nil
		default:
			variables[v.Name] = unescape(captured)
		}
	}

	return variables
}

// unescape decodes a captured value. A value that is not a valid escape
// sequence is returned as is.
func unescape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}

	return s
}

func unescapeList(values []any) []any {
	for i, v := range values {
		switch v := v.(type) {
		case string:
			values[i] = unescape(v)
		case []string:
			for j := range v {
				v[j] = unescape(v[j])
			}
		}
	}

	return values
}

// QueryParams returns the entries of params named by the route's own query
// variables.
func (r *Route) QueryParams(params Params) Params {
	found := make(Params, len(r.query))

	for _, name := range r.query {
		if v, ok := params[name]; ok && v != nil {
			found[name] = v
		}
	}

	return found
}

// MatchParams reports whether the route's query variables are equal in both
// mappings. Values are compared in their string form.
func (r *Route) MatchParams(from, to Params) bool {
	for _, name := range r.query {
		if stringify(from[name]) != stringify(to[name]) {
			return false
		}
	}

	return true
}
