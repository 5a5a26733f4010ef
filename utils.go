package staterouter

import (
	"fmt"
	"strings"

	"github.com/fasthttp/staterouter/tree"
)

func validateName(name string) {
	switch {
	case len(name) == 0:
		panic("route name must not be empty")
	case strings.HasPrefix(name, ".") || strings.HasSuffix(name, "."):
		panic("route name must not begin or end with '.' in name '" + name + "'")
	case strings.Contains(name, ".."):
		panic("route name must not contain an empty segment in name '" + name + "'")
	}
}

// paramsMatch reports whether every entry of params has the same string
// form in current.
func paramsMatch(current, params tree.Params) bool {
	for k, v := range params {
		if fmt.Sprint(current[k]) != fmt.Sprint(v) {
			return false
		}
	}

	return true
}

func copyParams(params tree.Params) tree.Params {
	c := make(tree.Params, len(params))
	for k, v := range params {
		c[k] = v
	}

	return c
}
