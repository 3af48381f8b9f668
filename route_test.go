package signpost_test

import (
	"strings"
	"testing"

	"github.com/RobertWHurst/signpost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRoute(t *testing.T, method, pattern string, conditions signpost.Conditions, defaults signpost.Defaults) *signpost.Route {
	t.Helper()
	route, err := signpost.NewRoute(method, "test", pattern, conditions, defaults)
	require.NoError(t, err)
	return route
}

func TestNewRouteErrors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		routeName  string
		pattern    string
		conditions signpost.Conditions
		expected   error
	}{
		{"unsupported method", "PATCH", "r", "/a", nil, signpost.ErrInvalidMethod},
		{"garbage method", "GET ", "r", "/a", nil, signpost.ErrInvalidMethod},
		{"empty name", "GET", "", "/a", nil, signpost.ErrEmptyName},
		{"empty pattern", "GET", "r", "", nil, signpost.ErrEmptyPattern},
		{"unbalanced pattern", "GET", "r", "/a(/<b>", nil, signpost.ErrUnbalancedGroup},
		{"stray close in pattern", "GET", "r", "/a)", nil, signpost.ErrUnbalancedGroup},
		{"reserved query_string parameter", "GET", "r", "/<query_string>", nil, signpost.ErrDuplicateParam},
		{"invalid condition", "GET", "r", "/<a>", signpost.Conditions{"a": signpost.Matching("(")}, signpost.ErrInvalidCondition},
		{"condition without values", "GET", "r", "/<a>", signpost.Conditions{"a": signpost.OneOf()}, signpost.ErrInvalidCondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, err := signpost.NewRoute(tt.method, tt.routeName, tt.pattern, tt.conditions, nil)
			assert.Nil(t, route)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestNewRouteNormalizesMethod(t *testing.T) {
	for _, method := range []string{"get", "Post", "delete", "PUT"} {
		route, err := signpost.NewRoute(method, "r", "/a", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, strings.ToUpper(method), route.Method())
	}
}

func TestRouteMatcherSource(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		conditions signpost.Conditions
		expected   string
	}{
		{
			name:     "literal text is quoted",
			pattern:  "/files/a.b+c",
			expected: `^/files/a\.b\+c(?:\?(.*))?$`,
		},
		{
			name:     "optional group",
			pattern:  "/a<x>(/b<y>)",
			expected: `^/a([\w\-]+)(?:/b([\w\-]+))?(?:\?(.*))?$`,
		},
		{
			name:       "enumerated condition",
			pattern:    "/paint/<color>",
			conditions: signpost.Conditions{"color": signpost.OneOf("red", "blue")},
			expected:   `^/paint/((?:red|blue))(?:\?(.*))?$`,
		},
		{
			name:       "regular expression condition is used verbatim",
			pattern:    "/items/<id>",
			conditions: signpost.Conditions{"id": signpost.Matching(`\d+`)},
			expected:   `^/items/(\d+)(?:\?(.*))?$`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := mustRoute(t, "GET", tt.pattern, tt.conditions, nil)
			assert.Equal(t, tt.expected, route.MatcherSource())
		})
	}
}

func TestRouteParse(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		conditions  signpost.Conditions
		defaults    signpost.Defaults
		path        string
		shouldMatch bool
		expected    signpost.RouteParams
	}{
		{
			name:        "static route",
			pattern:     "/users",
			path:        "/users",
			shouldMatch: true,
			expected:    signpost.RouteParams{},
		},
		{
			name:    "trailing slash is not ignored",
			pattern: "/users",
			path:    "/users/",
		},
		{
			name:        "parameters",
			pattern:     "/users/<userId>/posts/<postId>",
			path:        "/users/42/posts/hello-world",
			shouldMatch: true,
			expected:    signpost.RouteParams{"userId": "42", "postId": "hello-world"},
		},
		{
			name:    "default parameter value does not cross slashes",
			pattern: "/files/<name>",
			path:    "/files/a/b",
		},
		{
			name:        "absent optional parameter is left unset",
			pattern:     "/a(/<y>)",
			path:        "/a",
			shouldMatch: true,
			expected:    signpost.RouteParams{},
		},
		{
			name:        "absent optional parameter is filled from defaults",
			pattern:     "/a(/<y>)",
			defaults:    signpost.Defaults{"y": "d"},
			path:        "/a",
			shouldMatch: true,
			expected:    signpost.RouteParams{"y": "d"},
		},
		{
			name:        "defaults never replace matched values",
			pattern:     "/a(/<y>)",
			defaults:    signpost.Defaults{"y": "d"},
			path:        "/a/e",
			shouldMatch: true,
			expected:    signpost.RouteParams{"y": "e"},
		},
		{
			name:        "defaults for parameters outside the pattern are included",
			pattern:     "/a",
			defaults:    signpost.Defaults{"format": "html"},
			path:        "/a",
			shouldMatch: true,
			expected:    signpost.RouteParams{"format": "html"},
		},
		{
			name:        "nested optional groups",
			pattern:     "/archive(/<year>(/<month>))",
			path:        "/archive/2024/05",
			shouldMatch: true,
			expected:    signpost.RouteParams{"year": "2024", "month": "05"},
		},
		{
			name:        "query string is merged",
			pattern:     "/a<x>",
			path:        "/a1?y=2",
			shouldMatch: true,
			expected:    signpost.RouteParams{"x": "1", "y": "2"},
		},
		{
			name:        "path parameters win over the query string",
			pattern:     "/a<x>(/b<y>)",
			path:        "/a1/b2?y=9&z=3",
			shouldMatch: true,
			expected:    signpost.RouteParams{"x": "1", "y": "2", "z": "3"},
		},
		{
			name:        "defaults win over the query string",
			pattern:     "/a<x>",
			defaults:    signpost.Defaults{"z": "d"},
			path:        "/a1?z=q",
			shouldMatch: true,
			expected:    signpost.RouteParams{"x": "1", "z": "d"},
		},
		{
			name:        "query string values are decoded",
			pattern:     "/search",
			path:        "/search?q=hello+world&tag=a%2Fb",
			shouldMatch: true,
			expected:    signpost.RouteParams{"q": "hello world", "tag": "a/b"},
		},
		{
			name:        "empty query string",
			pattern:     "/a<x>",
			path:        "/a1?",
			shouldMatch: true,
			expected:    signpost.RouteParams{"x": "1"},
		},
		{
			name:        "enumerated condition accepts listed value",
			pattern:     "/paint/<color>",
			conditions:  signpost.Conditions{"color": signpost.OneOf("red", "blue")},
			path:        "/paint/red",
			shouldMatch: true,
			expected:    signpost.RouteParams{"color": "red"},
		},
		{
			name:       "enumerated condition rejects other values",
			pattern:    "/paint/<color>",
			conditions: signpost.Conditions{"color": signpost.OneOf("red", "blue")},
			path:       "/paint/green",
		},
		{
			name:       "enumerated values are literal",
			pattern:    "/v/<version>",
			conditions: signpost.Conditions{"version": signpost.OneOf("1.0")},
			path:       "/v/1x0",
		},
		{
			name:        "regular expression condition",
			pattern:     "/items/<id>",
			conditions:  signpost.Conditions{"id": signpost.Matching(`\d+`)},
			path:        "/items/123",
			shouldMatch: true,
			expected:    signpost.RouteParams{"id": "123"},
		},
		{
			name:       "regular expression condition rejects",
			pattern:    "/items/<id>",
			conditions: signpost.Conditions{"id": signpost.Matching(`\d+`)},
			path:       "/items/abc",
		},
		{
			name:        "capture groups inside conditions do not shift parameters",
			pattern:     "/range/<span>/<page>",
			conditions:  signpost.Conditions{"span": signpost.Matching(`(\d+)-(\d+)`)},
			path:        "/range/1-5/3",
			shouldMatch: true,
			expected:    signpost.RouteParams{"span": "1-5", "page": "3"},
		},
		{
			name:        "condition allowing slashes",
			pattern:     "/files/<path>",
			conditions:  signpost.Conditions{"path": signpost.Matching(`[\w/.]+`)},
			path:        "/files/docs/readme.md",
			shouldMatch: true,
			expected:    signpost.RouteParams{"path": "docs/readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := mustRoute(t, "GET", tt.pattern, tt.conditions, tt.defaults)
			params, ok := route.Parse(tt.path, "GET")
			assert.Equal(t, tt.shouldMatch, ok)
			if tt.shouldMatch {
				assert.Equal(t, tt.expected, params)
			} else {
				assert.Nil(t, params)
			}
		})
	}
}

func TestRouteParseMethod(t *testing.T) {
	route := mustRoute(t, "POST", "/users/<id>", nil, nil)

	_, ok := route.Parse("/users/1", "GET")
	assert.False(t, ok)

	params, ok := route.Parse("/users/1", "post")
	assert.True(t, ok)
	assert.Equal(t, signpost.RouteParams{"id": "1"}, params)
}

func TestRouteBuild(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		defaults signpost.Defaults
		params   map[string]string
		expected string
	}{
		{
			name:     "parameters",
			pattern:  "/users/<userId>/posts/<postId>",
			params:   map[string]string{"userId": "42", "postId": "7"},
			expected: "/users/42/posts/7",
		},
		{
			name:     "missing parameter renders empty",
			pattern:  "/users/<id>",
			params:   map[string]string{},
			expected: "/users/",
		},
		{
			name:     "missing parameter renders default",
			pattern:  "/users/<id>",
			defaults: signpost.Defaults{"id": "me"},
			params:   nil,
			expected: "/users/me",
		},
		{
			name:     "optional group omitted",
			pattern:  "/a<x>(/b<y>)",
			params:   map[string]string{"x": "1"},
			expected: "/a1",
		},
		{
			name:     "optional group included",
			pattern:  "/a<x>(/b<y>)",
			params:   map[string]string{"x": "1", "y": "2"},
			expected: "/a1/b2",
		},
		{
			name:     "optional group suppressed when value equals default",
			pattern:  "/a(/<y>)",
			defaults: signpost.Defaults{"y": "d"},
			params:   map[string]string{"y": "d"},
			expected: "/a",
		},
		{
			name:     "optional group rendered when value overrides default",
			pattern:  "/a(/<y>)",
			defaults: signpost.Defaults{"y": "d"},
			params:   map[string]string{"y": "e"},
			expected: "/a/e",
		},
		{
			name:     "empty value still includes optional group",
			pattern:  "/a(/<y>)",
			params:   map[string]string{"y": ""},
			expected: "/a/",
		},
		{
			name:     "optional group without parameters is never rendered",
			pattern:  "/a(/b)",
			params:   map[string]string{},
			expected: "/a",
		},
		{
			name:     "nested group parameters do not include the outer group",
			pattern:  "/a(/<b>(/<c>))",
			params:   map[string]string{"c": "3"},
			expected: "/a",
		},
		{
			name:     "nested groups included",
			pattern:  "/a(/<b>(/<c>))",
			params:   map[string]string{"b": "2", "c": "3"},
			expected: "/a/2/3",
		},
		{
			name:     "outer group with default renders inner default",
			pattern:  "/a(/<b>(/<c>))",
			defaults: signpost.Defaults{"c": "x"},
			params:   map[string]string{"b": "2"},
			expected: "/a/2",
		},
		{
			name:     "leftover parameters become the query string",
			pattern:  "/a<x>",
			params:   map[string]string{"x": "1", "z": "2", "q": "a b"},
			expected: "/a1?q=a+b&z=2",
		},
		{
			name:     "only leftover parameters",
			pattern:  "/search",
			params:   map[string]string{"q": "go"},
			expected: "/search?q=go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := mustRoute(t, "GET", tt.pattern, nil, tt.defaults)
			assert.Equal(t, tt.expected, route.Build(tt.params))
		})
	}
}

func TestRouteRoundTrip(t *testing.T) {
	tests := []struct {
		pattern string
		params  map[string]string
	}{
		{"/users/<id>", map[string]string{"id": "42"}},
		{"/users/<userId>/posts/<postId>", map[string]string{"userId": "a-1", "postId": "b_2"}},
		{"/<a>.<b>", map[string]string{"a": "file", "b": "txt"}},
		{"/static", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			route := mustRoute(t, "PUT", tt.pattern, nil, nil)
			params, ok := route.Parse(route.Build(tt.params), "PUT")
			require.True(t, ok)
			assert.Equal(t, signpost.RouteParams(tt.params), params)
		})
	}
}

func TestRouteRoundTripWithQueryString(t *testing.T) {
	route := mustRoute(t, "GET", "/a(/<y>)", nil, signpost.Defaults{"y": "d"})

	path := route.Build(map[string]string{"y": "e", "page": "2"})
	assert.Equal(t, "/a/e?page=2", path)

	params, ok := route.Parse(path, "GET")
	require.True(t, ok)
	assert.Equal(t, signpost.RouteParams{"y": "e", "page": "2"}, params)
}

func TestRouteCompilationIsDeterministic(t *testing.T) {
	conditions := signpost.Conditions{"kind": signpost.OneOf("a", "b")}
	defaults := signpost.Defaults{"page": "1"}
	pattern := "/list/<kind>(/page/<page>)"

	first := mustRoute(t, "GET", pattern, conditions, defaults)
	second := mustRoute(t, "GET", pattern, conditions, defaults)

	assert.Equal(t, first.MatcherSource(), second.MatcherSource())
	assert.Equal(t, first.ParamOrder(), second.ParamOrder())

	inputs := []map[string]string{
		{"kind": "a"},
		{"kind": "b", "page": "1"},
		{"kind": "b", "page": "3", "sort": "asc"},
	}
	for _, input := range inputs {
		assert.Equal(t, first.Build(input), second.Build(input))
	}

	for _, path := range []string{"/list/a", "/list/b/page/2", "/list/c", "/list/a?sort=asc"} {
		firstParams, firstOK := first.Parse(path, "GET")
		secondParams, secondOK := second.Parse(path, "GET")
		assert.Equal(t, firstOK, secondOK)
		assert.Equal(t, firstParams, secondParams)
	}
}

func TestRouteIsolatedFromCallerMaps(t *testing.T) {
	conditions := signpost.Conditions{"id": signpost.OneOf("1", "2")}
	defaults := signpost.Defaults{"id": "1"}
	route := mustRoute(t, "GET", "/a(/<id>)", conditions, defaults)

	defaults["id"] = "2"
	conditions["id"] = signpost.OneOf("3")

	assert.Equal(t, "/a", route.Build(map[string]string{"id": "1"}))
	assert.Equal(t, signpost.Defaults{"id": "1"}, route.Defaults())
	_, ok := route.Parse("/a/3", "GET")
	assert.False(t, ok)
}

func TestRouteAccessors(t *testing.T) {
	route, err := signpost.NewRoute("get", "user", "/users/<id>(/<tab>)", nil, signpost.Defaults{"tab": "profile"})
	require.NoError(t, err)

	assert.Equal(t, "GET", route.Method())
	assert.Equal(t, "user", route.Name())
	assert.Equal(t, "/users/<id>(/<tab>)", route.Pattern())
	assert.Equal(t, "GET /users/<id>(/<tab>)", route.String())
	assert.Equal(t, []string{"id", "tab", "query_string"}, route.ParamOrder())
	assert.Equal(t, signpost.Matching(".*"), route.Conditions()["query_string"])
	assert.Len(t, route.Nodes(), 4)

	assert.Nil(t, route.Data())
	assert.Same(t, route, route.Bind("users#show"))
	assert.Equal(t, "users#show", route.Data())
}

type pairCodec struct{}

func (pairCodec) Decode(queryString string) map[string]string {
	params := map[string]string{}
	for _, pair := range strings.Split(queryString, ";") {
		if key, value, ok := strings.Cut(pair, ":"); ok {
			params[key] = value
		}
	}
	return params
}

func (pairCodec) Encode(params map[string]string) string {
	if len(params) != 1 {
		return ""
	}
	for key, value := range params {
		return key + ":" + value
	}
	return ""
}

func TestRouteWithQueryCodec(t *testing.T) {
	route, err := signpost.NewRoute("GET", "r", "/a", nil, nil, signpost.WithQueryCodec(pairCodec{}))
	require.NoError(t, err)

	params, ok := route.Parse("/a?x:1;y:2", "GET")
	require.True(t, ok)
	assert.Equal(t, signpost.RouteParams{"x": "1", "y": "2"}, params)

	assert.Equal(t, "/a?x:1", route.Build(map[string]string{"x": "1"}))
}

func TestURLQueryCodec(t *testing.T) {
	codec := signpost.URLQueryCodec{}

	assert.Equal(t, map[string]string{"a": "1", "b": "x y"}, codec.Decode("a=1&b=x+y&a=2"))
	assert.Equal(t, map[string]string{}, codec.Decode(""))
	assert.Equal(t, "a=1&b=x+y", codec.Encode(map[string]string{"b": "x y", "a": "1"}))
	assert.Equal(t, "", codec.Encode(nil))
}

func TestRouteParamsGet(t *testing.T) {
	cases := []struct {
		message       string
		params        signpost.RouteParams
		key           string
		expectedValue string
	}{
		{"should return the value for a key that exists",
			signpost.RouteParams{"userId": "42"},
			"userId", "42",
		},
		{"should return the value for a key that exists with different casing",
			signpost.RouteParams{"userId": "42"},
			"USERID", "42",
		},
		{"should prefer an exact match",
			signpost.RouteParams{"id": "1", "ID": "2"},
			"ID", "2",
		},
		{"should return an empty string for a key that does not exist",
			signpost.RouteParams{"userId": "42"},
			"postId", "",
		},
	}

	for _, c := range cases {
		t.Run(c.message, func(t *testing.T) {
			assert.Equal(t, c.expectedValue, c.params.Get(c.key))
		})
	}
}
