package signpost

import (
	"context"
	"net/http"
)

type requestParamsKey struct{}

type requestParams struct {
	route  *Route
	params RouteParams
}

func withRouteParams(req *http.Request, route *Route, params RouteParams) *http.Request {
	ctx := context.WithValue(req.Context(), requestParamsKey{}, &requestParams{
		route:  route,
		params: params,
	})
	return req.WithContext(ctx)
}

// ParamsFromRequest returns the route parameters of a request dispatched by
// Router. Returns nil if the request was not dispatched by a Router.
func ParamsFromRequest(req *http.Request) RouteParams {
	if p, ok := req.Context().Value(requestParamsKey{}).(*requestParams); ok {
		return p.params
	}
	return nil
}

// RouteFromRequest returns the route a request was dispatched to by Router.
func RouteFromRequest(req *http.Request) (*Route, bool) {
	if p, ok := req.Context().Value(requestParamsKey{}).(*requestParams); ok {
		return p.route, true
	}
	return nil, false
}
