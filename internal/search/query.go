package search

import "strings"

// QueryTransformer rewrites a trimmed, non-empty query right before it is
// sent to the gateway.
type QueryTransformer interface {
	TransformQuery(query string) string
}

// QueryTransformerFunc adapts a plain function to QueryTransformer.
type QueryTransformerFunc func(query string) string

func (f QueryTransformerFunc) TransformQuery(query string) string { return f(query) }

// Identity leaves queries unchanged.
var Identity QueryTransformer = QueryTransformerFunc(func(q string) string { return q })

// CountrySuffix restricts lookups to one country by appending ",<code>" to
// every query, e.g. "Sydney" becomes "Sydney,au". An empty code yields Identity.
func CountrySuffix(code string) QueryTransformer {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return Identity
	}
	return QueryTransformerFunc(func(q string) string {
		return q + "," + code
	})
}
