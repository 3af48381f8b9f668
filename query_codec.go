package signpost

import "net/url"

// QueryCodec decodes and encodes the query string carried by the implicit
// trailing '?<query_string>' group of every route.
type QueryCodec interface {
	Decode(queryString string) map[string]string
	Encode(params map[string]string) string
}

// URLQueryCodec is the default QueryCodec. It is backed by net/url: values
// are form encoded, keys are encoded in sorted order, and when a key repeats
// the first value wins. Malformed pairs are skipped.
type URLQueryCodec struct{}

var _ QueryCodec = URLQueryCodec{}

// Decode implements QueryCodec.
func (URLQueryCodec) Decode(queryString string) map[string]string {
	values, _ := url.ParseQuery(queryString)

	params := make(map[string]string, len(values))
	for key, keyValues := range values {
		if len(keyValues) != 0 {
			params[key] = keyValues[0]
		}
	}
	return params
}

// Encode implements QueryCodec.
func (URLQueryCodec) Encode(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	values := make(url.Values, len(params))
	for key, value := range params {
		values.Set(key, value)
	}
	return values.Encode()
}
