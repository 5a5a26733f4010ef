package tree

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned when a route name is empty.
var ErrEmptyName = errors.New("a route's name can't be empty")

// UnknownParentError is returned by Add when an intermediate segment of a
// dotted name does not exist.
type UnknownParentError struct {
	Name   string
	Parent string
}

func (e *UnknownParentError) Error() string {
	return fmt.Sprintf("missing parent route '%s' for '%s'", e.Parent, e.Name)
}

// UnknownRouteError is returned by Fetch when a segment of a dotted name
// does not exist.
type UnknownRouteError struct {
	Name    string
	Segment string
}

func (e *UnknownRouteError) Error() string {
	return fmt.Sprintf("missing route '%s' in '%s'", e.Segment, e.Name)
}

// MissingParameterError is returned by Path when a required variable has
// no value.
type MissingParameterError struct {
	Name    string
	Route   string
	Pattern string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing parameter `%s` for route: `%s#/%s`", e.Name, e.Route, e.Pattern)
}

// PatternMismatchError is returned by Path when a value does not match the
// capture pattern of its variable.
type PatternMismatchError struct {
	Name    string
	Pattern string
	Value   string
}

func (e *PatternMismatchError) Error() string {
	return fmt.Sprintf("expected `%s` to match `%s`, but received `%s`", e.Name, e.Pattern, e.Value)
}
