package signpost

import "errors"

var (
	// ErrInvalidMethod is returned when a route is defined with a method other
	// than GET, POST, DELETE, or PUT.
	ErrInvalidMethod = errors.New("invalid http method")

	// ErrEmptyName is returned when a route is defined without a name.
	ErrEmptyName = errors.New("route name must not be empty")

	// ErrEmptyPattern is returned when a route is defined without a pattern.
	ErrEmptyPattern = errors.New("route pattern must not be empty")

	// ErrUnbalancedGroup is returned when a pattern contains an optional group
	// that is never closed, or a closing delimiter without an opening one.
	ErrUnbalancedGroup = errors.New("unbalanced optional group")

	// ErrDuplicateParam is returned when a pattern names the same parameter
	// more than once. The implicit query_string parameter counts.
	ErrDuplicateParam = errors.New("duplicate parameter name")

	// ErrInvalidCondition is returned when a parameter condition is not a
	// valid regular expression.
	ErrInvalidCondition = errors.New("invalid parameter condition")

	// ErrInvalidDescriptor is returned when a route descriptor cannot be
	// compiled back into a route.
	ErrInvalidDescriptor = errors.New("invalid route descriptor")

	// ErrDuplicateRouteName is returned by Router.AddRoute when a route with
	// the same name is already registered.
	ErrDuplicateRouteName = errors.New("duplicate route name")

	// ErrRouteNotFound is returned by Router.Build when no route has the
	// requested name.
	ErrRouteNotFound = errors.New("route not found")
)
