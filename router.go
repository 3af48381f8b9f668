package signpost

import (
	"fmt"
	"net/http"

	"github.com/RobertWHurst/navaros"
)

// Router is an ordered registry of compiled routes. Find returns the first
// route, in registration order, that matches a path and method. Routes can
// also be looked up by name for link generation.
//
// Router implements http.Handler and can be mounted in a Navaros router with
// Middleware. Routes whose payload is an http.Handler receive matching
// requests.
//
// Router does no locking. Register every route before serving requests.
type Router struct {
	routes       []*Route
	routesByName map[string]*Route
	routeOptions []RouteOption
	observer     Observer
}

var _ http.Handler = &Router{}

// Observer is notified of router activity. See the metrics package for a
// Prometheus implementation.
type Observer interface {
	RouteMatched(route *Route, method string)
	RouteMissed(path, method string)
	RouteBuilt(route *Route)
}

// NewRouter creates a router. The options are applied to every route added
// with AddRoute.
func NewRouter(opts ...RouteOption) *Router {
	return &Router{
		routes:       []*Route{},
		routesByName: map[string]*Route{},
		routeOptions: opts,
	}
}

// SetObserver sets the observer notified on matches, misses, and builds.
func (r *Router) SetObserver(observer Observer) {
	r.observer = observer
}

// AddRoute compiles a route and registers it after all previously added
// routes. See NewRoute for the meaning of the arguments. Returns an error if
// the route is invalid or its name is already registered.
//
// Example:
//
//	router.AddRoute("GET", "article", "/articles/<id>(/<slug>)",
//	    signpost.Conditions{"id": signpost.Matching(`\d+`)}, nil)
func (r *Router) AddRoute(method, name, pattern string, conditions Conditions, defaults Defaults) (*Route, error) {
	if _, ok := r.routesByName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateRouteName, name)
	}

	route, err := NewRoute(method, name, pattern, conditions, defaults, r.routeOptions...)
	if err != nil {
		return nil, err
	}

	r.routes = append(r.routes, route)
	r.routesByName[name] = route

	return route, nil
}

// AddBundle compiles the descriptors of a bundle, usually received from
// another process, and registers the routes in bundle order. Either every
// route is added or none is.
func (r *Router) AddBundle(descriptors []*RouteDescriptor) error {
	for _, descriptor := range descriptors {
		if _, ok := r.routesByName[descriptor.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateRouteName, descriptor.Name)
		}
	}

	routes, err := CompileBundle(descriptors, r.routeOptions...)
	if err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, route := range routes {
		if seen[route.name] {
			return fmt.Errorf("%w: %q", ErrDuplicateRouteName, route.name)
		}
		seen[route.name] = true
	}

	for _, route := range routes {
		r.routes = append(r.routes, route)
		r.routesByName[route.name] = route
	}
	return nil
}

// MustAddRoute is like AddRoute but panics if the route cannot be added.
func (r *Router) MustAddRoute(method, name, pattern string, conditions Conditions, defaults Defaults) *Route {
	route, err := r.AddRoute(method, name, pattern, conditions, defaults)
	if err != nil {
		panic("invalid route \"" + name + "\": " + err.Error())
	}
	return route
}

// Find returns the first route that matches path and method along with the
// parsed parameters. The last return value is false if no route matches.
func (r *Router) Find(path, method string) (*Route, RouteParams, bool) {
	for _, route := range r.routes {
		if params, ok := route.Parse(path, method); ok {
			if r.observer != nil {
				r.observer.RouteMatched(route, route.method)
			}
			return route, params, true
		}
	}

	if r.observer != nil {
		r.observer.RouteMissed(path, method)
	}
	return nil, nil, false
}

// RouteByName returns the route registered under name.
func (r *Router) RouteByName(name string) (*Route, bool) {
	route, ok := r.routesByName[name]
	return route, ok
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []*Route {
	return append([]*Route(nil), r.routes...)
}

// Build renders a path for the named route. Returns ErrRouteNotFound if no
// route has that name.
func (r *Router) Build(name string, params map[string]string) (string, error) {
	route, ok := r.routesByName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	path := route.Build(params)
	if r.observer != nil {
		r.observer.RouteBuilt(route)
	}
	return path, nil
}

// Bundle returns a descriptor for every route, in registration order. The
// descriptors carry everything another process needs to match and build
// paths the same way. See RouteDescriptor.
func (r *Router) Bundle() []*RouteDescriptor {
	descriptors := make([]*RouteDescriptor, 0, len(r.routes))
	for _, route := range r.routes {
		descriptors = append(descriptors, route.Descriptor())
	}
	return descriptors
}

// ServeHTTP implements http.Handler. The request path, with its raw query
// string, is matched against the routes. A matching route's payload must be
// an http.Handler or a func(http.ResponseWriter, *http.Request); the route
// parameters are available to it through ParamsFromRequest. Responds with
// 404 if no route matches and 501 if the matching route has no handler.
func (r *Router) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	route, params, ok := r.Find(requestPath(req), req.Method)
	if !ok {
		http.NotFound(res, req)
		return
	}

	handler, ok := httpHandler(route.Data())
	if !ok {
		res.WriteHeader(http.StatusNotImplemented)
		return
	}

	handler.ServeHTTP(res, withRouteParams(req, route, params))
}

// Middleware returns a Navaros middleware function that dispatches requests
// to matching routes the same way ServeHTTP does. If no route matches, or the
// matching route has no handler, the request is passed to the next handler in
// the Navaros chain.
func (r *Router) Middleware() navaros.HandlerFunc {
	return func(ctx *navaros.Context) {
		req := ctx.Request()

		route, params, ok := r.Find(requestPath(req), req.Method)
		if !ok {
			ctx.Next()
			return
		}

		handler, ok := httpHandler(route.Data())
		if !ok {
			ctx.Next()
			return
		}

		navaros.CtxInhibitResponse(ctx)
		handler.ServeHTTP(ctx.ResponseWriter(), withRouteParams(req, route, params))
	}
}

func requestPath(req *http.Request) string {
	path := req.URL.EscapedPath()
	if req.URL.RawQuery != "" {
		path += "?" + req.URL.RawQuery
	}
	return path
}

func httpHandler(data any) (http.Handler, bool) {
	switch handler := data.(type) {
	case http.Handler:
		return handler, true
	case func(http.ResponseWriter, *http.Request):
		return http.HandlerFunc(handler), true
	}
	return nil, false
}
