package signpost

import (
	"fmt"
	"slices"
	"strings"
)

// Methods lists the HTTP methods a route may be defined with.
var Methods = []string{"GET", "POST", "DELETE", "PUT"}

const (
	queryStringParam     = "query_string"
	queryStringCondition = ".*"
)

// queryStringSuffix is appended to every route pattern so that any path may
// carry a '?...' suffix.
var queryStringSuffix = string(groupOpenChar) + "?" +
	string(paramOpenChar) + queryStringParam + string(paramCloseChar) +
	string(groupCloseChar)

// Route is a compiled route. It pairs a matcher, which decides whether a path
// belongs to the route and extracts its parameters, with a builder, which
// renders a path from parameters. A Route is immutable once created apart
// from the payload set with Bind.
type Route struct {
	method     string
	name       string
	pattern    string
	conditions Conditions
	defaults   Defaults
	nodes      []Node
	matcher    *matcher
	paramSet   map[string]bool
	build      buildFunc
	queryCodec QueryCodec
	data       any
}

// RouteOption configures a Route at construction time.
type RouteOption func(*routeOptions)

type routeOptions struct {
	queryCodec QueryCodec
}

// WithQueryCodec sets the codec used to decode the query string when parsing
// and to encode leftover parameters when building. URLQueryCodec is used by
// default.
func WithQueryCodec(codec QueryCodec) RouteOption {
	return func(o *routeOptions) {
		o.queryCodec = codec
	}
}

// NewRoute compiles a route. The method must be one of GET, POST, DELETE, or
// PUT in any case. Conditions and defaults are keyed by parameter name and
// may be nil.
//
// Every route implicitly ends with an optional '?<query_string>' group which
// matches anything, so paths may always carry a query string.
func NewRoute(method, name, pattern string, conditions Conditions, defaults Defaults, opts ...RouteOption) (*Route, error) {
	upperMethod, err := normalizeMethod(method)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	parsedPattern, err := NewPattern(pattern + queryStringSuffix)
	if err != nil {
		return nil, fmt.Errorf("invalid route pattern %q: %w", pattern, err)
	}

	routeConditions := conditions.clone()
	routeConditions[queryStringParam] = Matching(queryStringCondition)

	routeMatcher, err := compileMatcher(parsedPattern.nodes, routeConditions)
	if err != nil {
		return nil, fmt.Errorf("invalid route %q: %w", name, err)
	}

	return newRoute(upperMethod, name, pattern, routeConditions, defaults, parsedPattern.nodes, routeMatcher, opts), nil
}

func newRoute(method, name, pattern string, conditions Conditions, defaults Defaults, nodes []Node, m *matcher, opts []RouteOption) *Route {
	options := &routeOptions{queryCodec: URLQueryCodec{}}
	for _, opt := range opts {
		opt(options)
	}

	routeDefaults := defaults.clone()

	paramSet := make(map[string]bool, len(m.paramOrder))
	for _, name := range m.paramOrder {
		paramSet[name] = true
	}

	return &Route{
		method:     method,
		name:       name,
		pattern:    pattern,
		conditions: conditions,
		defaults:   routeDefaults,
		nodes:      nodes,
		matcher:    m,
		paramSet:   paramSet,
		build:      compileBuilder(nodes, routeDefaults),
		queryCodec: options.queryCodec,
	}
}

func normalizeMethod(method string) (string, error) {
	upperMethod := strings.ToUpper(method)
	if !slices.Contains(Methods, upperMethod) {
		return "", fmt.Errorf("%w %q", ErrInvalidMethod, method)
	}
	return upperMethod, nil
}

// Parse matches a path and method against the route. It returns the route
// parameters and true when both match, or nil and false otherwise.
//
// Parameters are filled from the path first, then from the route defaults,
// then from the decoded query string. A query string value never replaces a
// path or default value of the same name.
func (r *Route) Parse(path, method string) (RouteParams, bool) {
	if !strings.EqualFold(method, r.method) {
		return nil, false
	}

	params, ok := r.matcher.match(path)
	if !ok {
		return nil, false
	}

	for key, value := range r.defaults {
		if _, ok := params[key]; !ok {
			params[key] = value
		}
	}

	if queryString, ok := params[queryStringParam]; ok {
		for key, value := range r.queryCodec.Decode(queryString) {
			if _, ok := params[key]; !ok {
				params[key] = value
			}
		}
	}
	delete(params, queryStringParam)

	return params, true
}

// Build renders a path from params. Parameters that are not part of the
// pattern are encoded into a trailing query string. Missing parameters render
// as their default or as an empty string; Build never fails.
func (r *Route) Build(params map[string]string) string {
	pathParams := make(map[string]string, len(params)+1)
	queryParams := make(map[string]string)

	for key, value := range params {
		if r.paramSet[key] {
			pathParams[key] = value
		} else {
			queryParams[key] = value
		}
	}

	if queryString := r.queryCodec.Encode(queryParams); queryString != "" {
		pathParams[queryStringParam] = queryString
	}

	out := strings.Builder{}
	r.build(pathParams, &out)
	return out.String()
}

// Bind associates an opaque payload with the route, such as the handler or
// controller it dispatches to. Bind is not synchronized; callers that rebind
// while other goroutines read the payload must provide their own locking.
func (r *Route) Bind(data any) *Route {
	r.data = data
	return r
}

// Data returns the payload associated with Bind, or nil.
func (r *Route) Data() any {
	return r.data
}

// Method returns the upper case HTTP method of the route.
func (r *Route) Method() string {
	return r.method
}

// Name returns the route name.
func (r *Route) Name() string {
	return r.name
}

// Pattern returns the pattern the route was created with.
func (r *Route) Pattern() string {
	return r.pattern
}

// ParamOrder returns the parameter names in capture order, including the
// implicit query_string parameter.
func (r *Route) ParamOrder() []string {
	return append([]string(nil), r.matcher.paramOrder...)
}

// MatcherSource returns the regular expression source the route matches
// paths with.
func (r *Route) MatcherSource() string {
	return r.matcher.source()
}

// Conditions returns a copy of the route conditions, including the implicit
// query_string condition.
func (r *Route) Conditions() Conditions {
	return r.conditions.clone()
}

// Defaults returns a copy of the route defaults.
func (r *Route) Defaults() Defaults {
	return r.defaults.clone()
}

// Nodes returns a copy of the route's pattern tree, including the implicit
// query string group.
func (r *Route) Nodes() []Node {
	return cloneNodes(r.nodes)
}

// String returns the method and pattern of the route.
func (r *Route) String() string {
	return r.method + " " + r.pattern
}
