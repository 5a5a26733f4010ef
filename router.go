package staterouter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fasthttp/staterouter/query"
	"github.com/fasthttp/staterouter/transition"
	"github.com/fasthttp/staterouter/tree"
	"github.com/savsgio/gotils"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const maxRedirects = 16

var (
	questionMark = byte('?')

	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

	// MatchedRouteNameParam is the param name under which the name of the matched
	// route is stored, if Router.SaveMatchedRouteName is set.
	MatchedRouteNameParam = fmt.Sprintf("__matchedRouteName::%s__", gotils.RandBytes(make([]byte, 15)))

	// TransitionUserValue is the param name under which the
	// *transition.Transition of the request is stored.
	TransitionUserValue = fmt.Sprintf("__transition::%s__", gotils.RandBytes(make([]byte, 15)))
)

// New returns a new initialized Router.
func New() *Router {
	return &Router{
		tree:          tree.New(),
		currentParams: make(tree.Params),
		ongoingParams: make(tree.Params),
	}
}

func (r *Router) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}

	return discardLogger
}

// Add registers a route under the dotted name. The pattern is appended to
// the pattern of the parent route.
//
// WARNING: Not concurrency-safe.
func (r *Router) Add(name, pattern string, content Content) (*tree.Route, error) {
	route, err := r.tree.Add(name, pattern, content)
	if err != nil {
		return nil, fmt.Errorf("add route '%s': %w", name, err)
	}

	if r.SaveMatchedRouteName && content.Handler != nil {
		route.SetContent(r.saveMatchedRouteName(route.Name(), content))
	}

	r.logger().Debug("route added", slog.String("name", route.Name()), slog.String("pattern", route.Pattern()))

	return route, nil
}

// MustAdd is like Add but panics on error.
func (r *Router) MustAdd(name, pattern string, content Content) *tree.Route {
	route, err := r.Add(name, pattern, content)
	if err != nil {
		panic(err)
	}

	return route
}

func (r *Router) saveMatchedRouteName(name string, content Content) Content {
	handler := content.Handler

	content.Handler = func(ctx *fasthttp.RequestCtx) {
		ctx.SetUserValue(MatchedRouteNameParam, name)
		handler(ctx)
	}

	return content
}

// Group returns a new group for the routes under the dotted name.
func (r *Router) Group(name string) *Group {
	validateName(name)

	return &Group{router: r, prefix: name}
}

// Fetch returns the route registered under the dotted name.
func (r *Router) Fetch(name string) (*tree.Route, error) {
	return r.tree.Fetch(name)
}

// Root returns the root of the route tree.
func (r *Router) Root() *tree.Route {
	return r.tree
}

// Routes returns the names of all routes, depth first in declaration order.
func (r *Router) Routes() []string {
	names := make([]string, 0)

	r.tree.Walk(func(route *tree.Route) {
		names = append(names, route.Name())
	})

	return names
}

// resolve follows the RedirectTo chain of the route.
func (r *Router) resolve(route *tree.Route) (*tree.Route, error) {
	origin := route.Name()

	for hops := 0; ; hops++ {
		content, _ := route.Content().(Content)
		if content.RedirectTo == "" {
			return route, nil
		}

		if hops == maxRedirects {
			return nil, &RedirectLoopError{Name: origin, Hops: hops}
		}

		next, err := r.tree.Fetch(content.RedirectTo)
		if err != nil {
			return nil, fmt.Errorf("redirect from '%s': %w", route.Name(), err)
		}

		route = next
	}
}

// Link generates the URL of the named route. Absolute URLs are returned as
// is and the name "." stands for the route being dispatched. RedirectTo
// targets are followed.
//
// BasePath, Scheme and Host default to the router's ones.
func (r *Router) Link(name string, params tree.Params, opts *tree.LinkOptions) (string, error) {
	if absoluteURL.MatchString(name) {
		return name, nil
	}

	if name == "." {
		ongoing := r.OngoingRoute()
		if ongoing == nil {
			return "", ErrNoOngoingRoute
		}

		name = ongoing.Name()
	}

	route, err := r.tree.Fetch(name)
	if err != nil {
		return "", err
	}

	if route, err = r.resolve(route); err != nil {
		return "", err
	}

	o := tree.LinkOptions{}
	if opts != nil {
		o = *opts
	}

	if o.BasePath == "" {
		o.BasePath = r.BasePath
	}

	if o.Scheme == "" {
		o.Scheme = r.Scheme
	}

	if o.Host == "" {
		o.Host = r.Host
	}

	return route.Link(params, &o)
}

// BuildQueryParams returns the params declared as query variables by the
// named route or one of its ancestors.
func (r *Router) BuildQueryParams(name string, params tree.Params) (tree.Params, error) {
	route, err := r.tree.Fetch(name)
	if err != nil {
		return nil, err
	}

	result := make(tree.Params)

	for _, ancestor := range route.Hierarchy() {
		for k, v := range ancestor.QueryParams(params) {
			result[k] = v
		}
	}

	return result, nil
}

// Location normalizes a raw location: the base path and a trailing
// index.html are removed and the path starts with a single '/'. The path
// stays escaped, captured values are unescaped when matching.
func (r *Router) Location(raw string) string {
	return cleanLocation(raw, cleanBasePath(r.BasePath))
}

// Match returns the transition from the current route to the route
// matching the location, following RedirectTo. The location may carry a
// query string. It returns nil when no route matches.
func (r *Router) Match(location string) (*transition.Transition, error) {
	return r.match(location, r.CurrentRoute())
}

func (r *Router) match(location string, from *tree.Route) (*transition.Transition, error) {
	path, raw, _ := strings.Cut(location, "?")

	result, ok := r.tree.Match(path, tree.Params(query.Parse(raw)))
	if !ok || result.Route.IsRoot() {
		r.Metrics.recordNotFound()

		return nil, nil
	}

	route, err := r.resolve(result.Route)
	if err != nil {
		return nil, err
	}

	r.Metrics.recordMatch(route.Name())

	return transition.New(from, route, result.Params, ""), nil
}

// Dispatch matches the location and runs the Dispatcher with the
// transition. The current route and params are updated when the
// Dispatcher succeeds and left untouched otherwise. Dispatching the
// current location again is a no-op returning a nil transition.
func (r *Router) Dispatch(ctx context.Context, location string) (*transition.Transition, error) {
	if r.Dispatcher == nil {
		return nil, ErrNoDispatcher
	}

	start := time.Now()
	location = r.Location(location)

	r.mu.RLock()
	same := r.current != nil && r.currentLocation == location
	r.mu.RUnlock()

	if same {
		return nil, nil
	}

	t, err := r.Match(location)
	if err != nil {
		return nil, err
	}

	if t == nil {
		r.logger().Debug("no route matches", slog.String("location", location))

		return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
	}

	name := t.To().Name()

	canonical, err := t.To().Link(t.Params(), nil)
	if err != nil {
		return nil, fmt.Errorf("link '%s': %w", name, err)
	}

	if pathOf(canonical) != pathOf(location) {
		r.Metrics.recordRedirect()
		r.logger().Debug("location redirected", slog.String("from", location), slog.String("to", canonical))
	}

	r.mu.Lock()
	r.ongoing, r.ongoingParams = t.To(), copyParams(t.Params())
	r.mu.Unlock()

	err = r.Dispatcher(ctx, t)

	r.mu.Lock()
	r.ongoing, r.ongoingParams = nil, make(tree.Params)

	if err == nil {
		r.current, r.currentParams, r.currentLocation = t.To(), copyParams(t.Params()), canonical
	}
	r.mu.Unlock()

	if err != nil {
		r.Metrics.observeDispatch(name, "error", start)
		r.logger().Error("dispatch failed", slog.String("route", name), slog.Any("error", err))

		return t, fmt.Errorf("dispatch '%s': %w", name, err)
	}

	r.Metrics.observeDispatch(name, "success", start)
	r.logger().Debug("dispatched", slog.String("route", name), slog.String("location", canonical))

	return t, nil
}

// IsActive reports whether the named route or one of its descendants is
// the current route, and params agree with the current params.
func (r *Router) IsActive(name string, params tree.Params) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return false
	}

	current := r.current.Name()
	if current != name && !strings.HasPrefix(current, name+".") {
		return false
	}

	return paramsMatch(r.currentParams, params)
}

// CurrentRoute returns the route of the last successful dispatch.
func (r *Router) CurrentRoute() *tree.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current
}

// CurrentParams returns a copy of the params of the last successful
// dispatch.
func (r *Router) CurrentParams() tree.Params {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return copyParams(r.currentParams)
}

// CurrentLocation returns the canonical location of the last successful
// dispatch.
func (r *Router) CurrentLocation() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.currentLocation
}

// OngoingRoute returns the route being dispatched, nil outside of a
// dispatch.
func (r *Router) OngoingRoute() *tree.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ongoing
}

// OngoingParams returns a copy of the params of the route being
// dispatched.
func (r *Router) OngoingParams() tree.Params {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return copyParams(r.ongoingParams)
}

func (r *Router) recv(ctx *fasthttp.RequestCtx) {
	if rcv := recover(); rcv != nil {
		r.logger().Error("handler panic", slog.Any("panic", rcv), slog.String("path", string(ctx.Path())))
		r.PanicHandler(ctx, rcv)
	}
}

// Handler makes the router implement the fasthttp.RequestHandler interface.
func (r *Router) Handler(ctx *fasthttp.RequestCtx) {
	if r.PanicHandler != nil {
		defer r.recv(ctx)
	}

	path := gotils.B2S(ctx.Path())
	method := gotils.B2S(ctx.Method())

	// Captures are unescaped by the tree, so match the path as sent.
	location := r.Location(gotils.B2S(ctx.URI().PathOriginal()))
	if queryBuf := ctx.URI().QueryString(); len(queryBuf) > 0 {
		location += "?" + string(queryBuf)
	}

	t, err := r.match(location, nil)
	if err != nil {
		r.logger().Error("match failed", slog.String("path", path), slog.Any("error", err))
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)

		return
	}

	if t != nil && r.RedirectCanonical && method != fasthttp.MethodConnect && r.redirectCanonical(ctx, t, path, method) {
		return
	}

	if t != nil {
		if content, _ := t.To().Content().(Content); content.Handler != nil {
			for k, v := range t.Params() {
				ctx.SetUserValue(k, v)
			}

			ctx.SetUserValue(TransitionUserValue, t)

			r.serve(ctx, content.Handler)

			return
		}
	}

	// Handle 404
	if r.NotFound != nil {
		r.NotFound(ctx)
	} else {
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusNotFound), fasthttp.StatusNotFound)
	}
}

func (r *Router) redirectCanonical(ctx *fasthttp.RequestCtx, t *transition.Transition, path, method string) bool {
	link, err := r.Link(t.To().Name(), t.Params(), &tree.LinkOptions{})
	if err != nil {
		r.logger().Debug("no canonical link", slog.String("route", t.To().Name()), slog.Any("error", err))

		return false
	}

	canonical := pathOf(link)
	if decoded, err := url.PathUnescape(canonical); err == nil && decoded == path {
		return false
	}

	// Moved Permanently, request with GET method
	code := fasthttp.StatusMovedPermanently
	if method != fasthttp.MethodGet {
		// Permanent Redirect, request with same method
		code = fasthttp.StatusPermanentRedirect
	}

	uri := bytebufferpool.Get()
	defer bytebufferpool.Put(uri)

	uri.SetString(canonical)

	queryBuf := ctx.URI().QueryString()
	if len(queryBuf) > 0 {
		uri.WriteByte(questionMark)
		uri.Write(queryBuf)
	}

	r.Metrics.recordRedirect()
	ctx.Redirect(uri.String(), code)

	return true
}
