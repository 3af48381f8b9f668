package signpost

import "strings"

// RouteParams holds the parameters extracted from a path by Route.Parse:
// path parameters, defaults, and query string values, in that order of
// precedence.
type RouteParams map[string]string

// Get returns the value of a parameter by key. The lookup is case-insensitive
// (e.g., 'ID' and 'id' match the same parameter) when there is no exact
// match. Returns an empty string if the key doesn't exist.
func (p RouteParams) Get(key string) string {
	if value, ok := p[key]; ok {
		return value
	}
	for k, v := range p {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
