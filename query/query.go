// Package query converts query strings to and from key/value mappings.
//
// A key seen once maps to a string, a key seen several times or suffixed
// with "[]" maps to a []string.
package query

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/valyala/fasthttp"
)

const arraySuffix = "[]"

// Values maps query keys to string or []string values.
type Values map[string]any

// Parse parses a raw query string. A leading '?' is ignored.
func Parse(raw string) Values {
	values := make(Values)

	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return values
	}

	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	args.Parse(raw)
	args.VisitAll(func(key, value []byte) {
		k, v := string(key), string(value)

		name, isArray := strings.CutSuffix(k, arraySuffix)

		switch prev := values[name].(type) {
		case nil:
			if isArray {
				values[name] = []string{v}
			} else {
				values[name] = v
			}
		case string:
			values[name] = []string{prev, v}
		case []string:
			values[name] = append(prev, v)
		}
	})

	return values
}

// Encode serializes values in key order. Slices are written as repeated
// "key[]" pairs, nil values are skipped.
func Encode(values map[string]any) string {
	if len(values) == 0 {
		return ""
	}

	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		v := values[k]
		if v == nil {
			continue
		}

		if items, ok := list(v); ok {
			for _, item := range items {
				args.Add(k+arraySuffix, item)
			}

			continue
		}

		args.Add(k, fmt.Sprint(v))
	}

	return string(args.QueryString())
}

// list returns the string form of each element of a slice value.
func list(v any) ([]string, bool) {
	switch v := v.(type) {
	case string, []byte:
		return nil, false
	case []string:
		return v, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	items := make([]string, rv.Len())
	for i := range items {
		items[i] = fmt.Sprint(rv.Index(i).Interface())
	}

	return items, true
}
