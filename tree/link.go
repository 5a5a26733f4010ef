package tree

import (
	"strings"

	"github.com/fasthttp/staterouter/query"
	"github.com/valyala/bytebufferpool"
)

const defaultScheme = "http"

// LinkOptions prefixes and suffixes a generated path.
type LinkOptions struct {
	// Absolute prepends Scheme and Host.
	Absolute bool
	Scheme   string
	Host     string

	BasePath string

	// Scope is a path prefix inserted between BasePath and the route path.
	Scope string

	// Query is appended as query string. The query variables of the route
	// and its ancestors found in the params take precedence.
	Query map[string]any
}

// Link generates the URL of the route.
//
//	r.Link(tree.Params{"id": 5}, &tree.LinkOptions{BasePath: "app", Query: map[string]any{"page": 2}})
//	// "/app/post/5?page=2"
func (r *Route) Link(params Params, opts *LinkOptions) (string, error) {
	if opts == nil {
		opts = &LinkOptions{}
	}

	path, err := r.Path(params)
	if err != nil {
		return "", err
	}

	values := make(map[string]any, len(opts.Query))
	for k, v := range opts.Query {
		values[k] = v
	}

	for _, route := range r.Hierarchy() {
		for k, v := range route.QueryParams(params) {
			values[k] = v
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if opts.Absolute {
		scheme := opts.Scheme
		if scheme == "" {
			scheme = defaultScheme
		}

		buf.WriteString(scheme)
		buf.WriteString("://")
		buf.WriteString(opts.Host)
	}

	origin := buf.Len()

	for _, prefix := range []string{opts.BasePath, opts.Scope} {
		if prefix = strings.Trim(prefix, "/"); prefix != "" {
			buf.WriteString("/")
			buf.WriteString(prefix)
		}
	}

	buf.WriteString(path)

	if buf.Len() == origin {
		buf.WriteString("/")
	}

	if qs := query.Encode(values); qs != "" {
		buf.WriteString("?")
		buf.WriteString(qs)
	}

	return buf.String(), nil
}
