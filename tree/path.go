package tree

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/fasthttp/staterouter/pattern"
	"github.com/valyala/bytebufferpool"
)

// Path generates the path of the route. The params are merged over the
// route's default params. The result starts with a '/', or is empty when
// the route's pattern produces nothing.
func (r *Route) Path(params Params) (string, error) {
	merged := make(Params, len(r.params)+len(params))
	for k, v := range r.params {
		merged[k] = v
	}

	for k, v := range params {
		merged[k] = v
	}

	path, err := r.expand(r.compiled.Token(), merged)
	if err != nil {
		return "", err
	}

	path = strings.TrimLeft(path, "/")
	if path == "" {
		return "", nil
	}

	return "/" + path, nil
}

// expand writes the tokens of a group. A missing variable discards the
// whole group when it is optional and fails otherwise.
func (r *Route) expand(g *pattern.Group, params Params) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, t := range g.Tokens {
		switch t := t.(type) {
		case pattern.Literal:
			buf.WriteString(string(t))

		case *pattern.Group:
			if t.Repeat == "" {
				s, err := r.expand(t, params)
				if err != nil {
					return "", err
				}

				buf.WriteString(s)

				continue
			}

			values := repeatValues(params[t.Repeat])
			if len(values) == 0 && !t.Optional {
				return "", r.missing(t.Repeat)
			}

			for _, v := range values {
				scoped := make(Params, len(params))
				for k, pv := range params {
					scoped[k] = pv
				}

				scoped[t.Repeat] = v

				s, err := r.expand(t, scoped)
				if err != nil {
					return "", err
				}

				buf.WriteString(s)
			}

		case *pattern.Variable:
			v, ok := params[t.Name]
			if !ok || v == nil {
				if !g.Optional {
					return "", r.missing(t.Name)
				}

				return "", nil
			}

			value := encodeValue(v)
			if !r.compiled.Validate(t.Name, value) {
				return "", &PatternMismatchError{Name: t.Name, Pattern: t.Pattern, Value: value}
			}

			buf.WriteString(value)
		}
	}

	return buf.String(), nil
}

func (r *Route) missing(name string) error {
	return &MissingParameterError{Name: name, Route: r.name, Pattern: r.pattern}
}

// repeatValues promotes a scalar to a one element list.
func repeatValues(v any) []any {
	if v == nil {
		return nil
	}

	if _, ok := v.([]byte); ok {
		return []any{v}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}

	values := make([]any, rv.Len())
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}

	return values
}

// encodeValue percent-encodes a value. The elements of a list are encoded
// one by one and joined with '/'.
func encodeValue(v any) string {
	if !isList(v) {
		return url.PathEscape(stringify(v))
	}

	items := repeatValues(v)
	parts := make([]string, len(items))

	for i, item := range items {
		parts[i] = url.PathEscape(stringify(item))
	}

	return strings.Join(parts, "/")
}

func isList(v any) bool {
	if _, ok := v.([]byte); ok {
		return false
	}

	kind := reflect.ValueOf(v).Kind()

	return kind == reflect.Slice || kind == reflect.Array
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	}

	if isList(v) {
		items := repeatValues(v)
		parts := make([]string, len(items))

		for i, item := range items {
			parts[i] = stringify(item)
		}

		return strings.Join(parts, ",")
	}

	return fmt.Sprint(v)
}
