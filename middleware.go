package staterouter

import "github.com/valyala/fasthttp"

type Middleware interface {
	Handle(*fasthttp.RequestCtx)
}

type MiddlewareFunc func(*fasthttp.RequestCtx)

func (fn MiddlewareFunc) Handle(ctx *fasthttp.RequestCtx) {
	fn(ctx)
}

// Before registers middleware run before the handler of every matched
// route.
func (r *Router) Before(m ...Middleware) {
	r.before = append(r.before, m...)
}

// After registers middleware run after the handler of every matched route.
func (r *Router) After(m ...Middleware) {
	r.after = append(r.after, m...)
}

func (r *Router) serve(ctx *fasthttp.RequestCtx, handler fasthttp.RequestHandler) {
	for _, m := range r.before {
		m.Handle(ctx)
	}

	handler(ctx)

	for _, m := range r.after {
		m.Handle(ctx)
	}
}
