package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fasthttp/staterouter"
	"github.com/fasthttp/staterouter/tree"
	"github.com/valyala/fasthttp"
)

// routeEntry is one element of a routes file. Parents must come before
// their children.
type routeEntry struct {
	Name       string         `json:"name"`
	Pattern    string         `json:"pattern"`
	RedirectTo string         `json:"redirectTo,omitempty"`
	Defaults   map[string]any `json:"defaults,omitempty"`
	Body       string         `json:"body,omitempty"`
}

func readRoutes(rd io.Reader) ([]routeEntry, error) {
	var entries []routeEntry

	dec := json.NewDecoder(rd)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode routes: %w", err)
	}

	return entries, nil
}

func loadRoutesFile(r *staterouter.Router, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := readRoutes(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return addRoutes(r, entries)
}

func addRoutes(r *staterouter.Router, entries []routeEntry) error {
	for _, e := range entries {
		route, err := r.Add(e.Name, e.Pattern, staterouter.Content{
			Handler:    routeHandler(e),
			RedirectTo: e.RedirectTo,
			Value:      e.Body,
		})
		if err != nil {
			return err
		}

		if len(e.Defaults) > 0 {
			route.SetParams(tree.Params(e.Defaults))
		}
	}

	return nil
}

// routeHandler answers with the configured body, or with the matched
// route and params as JSON.
func routeHandler(e routeEntry) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if e.Body != "" {
			ctx.SetContentType("text/plain; charset=utf-8")
			ctx.SetBodyString(e.Body)

			return
		}

		params := make(map[string]any)
		ctx.VisitUserValues(func(key []byte, v any) {
			if k := string(key); k != staterouter.TransitionUserValue && k != staterouter.MatchedRouteNameParam {
				params[k] = v
			}
		})

		ctx.SetContentType("application/json")

		if err := json.NewEncoder(ctx).Encode(map[string]any{"route": e.Name, "params": params}); err != nil {
			ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		}
	}
}
