// Package share implements the caller-side sharing policy: building share
// URLs with either a short identifier or an embedded token, and reading old
// links that predate the token format.
package share

import (
	"net/url"
	"strings"
)

var legacyScalarParams = []string{"to", "msg", "about", "question", "world", "vibe", "template"}

// ParseLegacyQuery reconstructs a document from the flat query parameters
// used before the tagged token format existed (?from=...&to=...&reasons=a|b).
// The "from" parameter marks a legacy link; without it ok is false. Reasons
// accept both "," and "|" as separators, as both appear in links in the
// wild.
func ParseLegacyQuery(q url.Values) (doc map[string]any, ok bool) {
	from := q.Get("from")
	if from == "" {
		return nil, false
	}

	doc = map[string]any{"from": from}
	for _, k := range legacyScalarParams {
		if v := q.Get(k); v != "" {
			doc[k] = v
		}
	}
	if raw := q.Get("reasons"); raw != "" {
		if reasons := splitList(raw); len(reasons) > 0 {
			doc["reasons"] = reasons
		}
	}
	return doc, true
}

func splitList(raw string) []any {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '|'
	})
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
