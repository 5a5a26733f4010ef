package staterouter

import (
	"github.com/fasthttp/staterouter/tree"
	"github.com/valyala/fasthttp"
)

// Group returns a new group for the routes under the dotted name.
// The route of the group itself must exist before children are added.
func (g *Group) Group(name string) *Group {
	validateName(name)

	middleware := make([]func(fasthttp.RequestHandler) fasthttp.RequestHandler, len(g.middleware))
	copy(middleware, g.middleware)

	return &Group{
		router:     g.router,
		prefix:     g.prefix + "." + name,
		middleware: middleware,
	}
}

// Name returns the dotted name of the group.
func (g *Group) Name() string {
	return g.prefix
}

// Add registers the route g.Name() + "." + name. The handler of the
// content is wrapped with the group middleware.
func (g *Group) Add(name, pattern string, content Content) (*tree.Route, error) {
	validateName(name)

	if content.Handler != nil {
		content.Handler = g.applyMiddleware(content.Handler)
	}

	return g.router.Add(g.prefix+"."+name, pattern, content)
}

// MustAdd is like Add but panics on error.
func (g *Group) MustAdd(name, pattern string, content Content) *tree.Route {
	route, err := g.Add(name, pattern, content)
	if err != nil {
		panic(err)
	}

	return route
}

func (g *Group) AddMiddleware(h func(fasthttp.RequestHandler) fasthttp.RequestHandler) {
	g.middleware = append(g.middleware, h)
}

func (g *Group) applyMiddleware(handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	if len(g.middleware) == 0 {
		return handler
	}

	for i := len(g.middleware) - 1; i >= 0; i-- {
		handler = g.middleware[i](handler)
	}

	return handler
}
