package staterouter

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Dispatch when no route matches.
	ErrNotFound = errors.New("no route matches the location")

	// ErrNoOngoingRoute is returned by Link for the "." shortcut outside
	// of a dispatch.
	ErrNoOngoingRoute = errors.New("no current route available, the '.' shortcut can't be used")

	// ErrNoDispatcher is returned by Dispatch when Router.Dispatcher is nil.
	ErrNoDispatcher = errors.New("missing dispatcher, a dispatcher must be defined")
)

// RedirectLoopError is returned when following RedirectTo does not reach a
// final route.
type RedirectLoopError struct {
	Name string
	Hops int
}

func (e *RedirectLoopError) Error() string {
	return fmt.Sprintf("too many redirects from '%s' (%d)", e.Name, e.Hops)
}
