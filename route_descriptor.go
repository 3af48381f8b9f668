package signpost

import (
	"fmt"
)

// RouteDescriptor describes a compiled route in a form that can be sent to
// another process. The receiver does not need to parse the pattern again:
// MatcherSource, ParamOrder, and CaptureIndexes reproduce matching, and
// Builder is the pattern tree the path builder is compiled from. Use
// Router.Bundle to collect descriptors for every route, and Compile to turn a
// descriptor back into a Route.
type RouteDescriptor struct {
	Name           string     `json:"name" msgpack:"name"`
	Method         string     `json:"method" msgpack:"method"`
	Pattern        string     `json:"pattern" msgpack:"pattern"`
	Conditions     Conditions `json:"conditions,omitempty" msgpack:"conditions,omitempty"`
	Defaults       Defaults   `json:"defaults,omitempty" msgpack:"defaults,omitempty"`
	ParamOrder     []string   `json:"paramOrder" msgpack:"paramOrder"`
	CaptureIndexes []int      `json:"captureIndexes" msgpack:"captureIndexes"`
	MatcherSource  string     `json:"matcherSource" msgpack:"matcherSource"`
	Builder        []Node     `json:"builder" msgpack:"builder"`
	Controller     string     `json:"controller,omitempty" msgpack:"controller,omitempty"`
}

// ControllerNamer may be implemented by route payloads to name the controller
// the route dispatches to. The name is carried in route descriptors.
type ControllerNamer interface {
	ControllerName() string
}

// BundleCodec encodes and decodes route bundles for transmission.
type BundleCodec interface {
	Marshal(descriptors []*RouteDescriptor) ([]byte, error)
	Unmarshal(data []byte) ([]*RouteDescriptor, error)
	ContentType() string
}

// Descriptor returns a descriptor for the route.
func (r *Route) Descriptor() *RouteDescriptor {
	descriptor := &RouteDescriptor{
		Name:           r.name,
		Method:         r.method,
		Pattern:        r.pattern,
		Conditions:     r.Conditions(),
		Defaults:       r.Defaults(),
		ParamOrder:     r.ParamOrder(),
		CaptureIndexes: append([]int(nil), r.matcher.captureIndexes...),
		MatcherSource:  r.MatcherSource(),
		Builder:        r.Nodes(),
	}

	switch data := r.data.(type) {
	case ControllerNamer:
		descriptor.Controller = data.ControllerName()
	case string:
		descriptor.Controller = data
	}

	return descriptor
}

// Compile reconstructs a route from the descriptor. The resulting route
// parses and builds paths exactly as the route the descriptor was taken from.
// The controller name, if any, is bound as the route payload.
func (d *RouteDescriptor) Compile(opts ...RouteOption) (*Route, error) {
	method, err := normalizeMethod(d.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	if d.Name == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, ErrEmptyName)
	}

	routeMatcher, err := newMatcher(d.MatcherSource, d.ParamOrder, d.CaptureIndexes)
	if err != nil {
		return nil, err
	}

	nodes := cloneNodes(d.Builder)
	conditions := d.Conditions.clone()
	route := newRoute(method, d.Name, d.Pattern, conditions, d.Defaults, nodes, routeMatcher, opts)
	if d.Controller != "" {
		route.Bind(d.Controller)
	}

	return route, nil
}

// CompileBundle compiles every descriptor of a bundle. It fails on the first
// descriptor that cannot be compiled.
func CompileBundle(descriptors []*RouteDescriptor, opts ...RouteOption) ([]*Route, error) {
	routes := make([]*Route, 0, len(descriptors))
	for _, descriptor := range descriptors {
		route, err := descriptor.Compile(opts...)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", descriptor.Name, err)
		}
		routes = append(routes, route)
	}
	return routes, nil
}
