package staterouter

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fasthttp/staterouter/transition"
	"github.com/fasthttp/staterouter/tree"
	"github.com/valyala/fasthttp"
)

// Router resolves locations against a tree of named routes and generates
// links back from route names.
type Router struct {
	tree *tree.Route

	mu              sync.RWMutex
	current         *tree.Route
	currentParams   tree.Params
	currentLocation string
	ongoing         *tree.Route
	ongoingParams   tree.Params

	before []Middleware
	after  []Middleware

	// BasePath is stripped from dispatched locations and prepended to
	// generated links.
	BasePath string

	// Scheme and Host are used by absolute links when the options leave
	// them empty.
	Scheme string
	Host   string

	// If enabled, adds the matched route name onto the ctx.UserValue context
	// before invoking the handler.
	// The matched route name is only added to handlers of routes that were
	// registered when this option was enabled.
	SaveMatchedRouteName bool

	// If enabled, a request whose path differs from the link generated for
	// the matched route and params is redirected to that link.
	// For example a request for /post/5/ or a location followed through a
	// RedirectTo is redirected.
	// 301 for GET requests and 308 for all other request methods.
	RedirectCanonical bool

	// Configurable http.Handler which is called when no matching route is
	// found or the matched route has no handler. If it is not set,
	// ctx.Error with fasthttp.StatusNotFound is used.
	NotFound fasthttp.RequestHandler

	// Function to handle panics recovered from http handlers.
	// It should be used to generate a error page and return the http error code
	// 500 (Internal Server Error).
	// The handler can be used to keep your server from crashing because of
	// unrecovered panics.
	PanicHandler func(*fasthttp.RequestCtx, interface{})

	// Dispatcher runs a transition for Dispatch. The router's current
	// route only changes when it returns nil.
	Dispatcher func(ctx context.Context, t *transition.Transition) error

	// Logger receives debug and error records. Nothing is logged when nil.
	Logger *slog.Logger

	// Metrics is optional.
	Metrics *Metrics
}

// Content is the payload attached to every route of a Router.
type Content struct {
	// Handler serves the route over HTTP. Routes without a handler are
	// matched but answered with NotFound.
	Handler fasthttp.RequestHandler

	// RedirectTo is the dotted name of the route to go to instead of this
	// one, both when matching and when generating links.
	RedirectTo string

	// Value is free for the application.
	Value any
}

// Group registers routes under a common dotted name and wraps their
// handlers with its middleware.
type Group struct {
	router     *Router
	prefix     string
	middleware []func(fasthttp.RequestHandler) fasthttp.RequestHandler
}
