// Package signpost compiles route patterns into matchers and path builders.
//
// A route pattern describes a family of paths with literal text, named
// parameters, and optional groups that may nest to any depth. Signpost turns
// a pattern into a Route that can both parse a concrete path into parameters
// and build a concrete path back from parameters.
//
// # Key Features
//
//   - Named parameters with per-parameter conditions
//   - Nested optional groups
//   - Defaults that fill parsed parameters and suppress optional groups
//   - Query strings merged into parsed parameters and generated from leftovers
//   - Route bundles that can be shipped to another process and recompiled
//   - Works with any HTTP router via http.Handler, or with Navaros
//
// # Quick Start
//
//	router := signpost.NewRouter()
//	router.MustAddRoute("GET", "archive", "/archive(/<year>(/<month>))",
//	    signpost.Conditions{"year": signpost.Matching(`\d{4}`)}, nil)
//
//	route, params, ok := router.Find("/archive/2024?page=2", "GET")
//	// route.Name() == "archive", params == {"year": "2024", "page": "2"}
//
//	path, _ := router.Build("archive", map[string]string{"year": "2024", "page": "3"})
//	// path == "/archive/2024?page=3"
//
// # Pattern Syntax
//
//	/users              Literal text
//	/users/<id>         Named parameter, names match [A-Za-z_][\w-]*
//	/users(/<id>)       Optional group
//	/a(/<b>(/<c>))      Nested optional groups
//
// Parameters without a condition match one or more word characters or
// hyphens. Conditions either list the allowed values or give a regular
// expression:
//
//	signpost.Conditions{
//	    "color": signpost.OneOf("red", "blue"),
//	    "id":    signpost.Matching(`\d+`),
//	}
//
// # Building Paths
//
// An optional group is rendered only when at least one of its own
// parameters is supplied with a value that differs from its default.
// Parameters the pattern does not name are encoded into a query string.
//
// # Bundles
//
// Router.Bundle returns a RouteDescriptor per route. Descriptors can be
// encoded with the codec packages and sent over NATS or a WebSocket, then
// turned back into routes with RouteDescriptor.Compile.
package signpost
