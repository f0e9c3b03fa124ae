package codec

// Prune returns a copy of doc with empty leaves removed: empty strings, nils,
// empty slices and empty maps, applied recursively. A container that becomes
// empty after its children are pruned is removed as well. Numbers and
// booleans are never pruned. Prune is idempotent.
//
// Slice types are normalized to []any so that a pruned document compares
// equal to the result of decoding its own token.
func Prune(doc map[string]any) map[string]any {
	v := pruneValue(doc)
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

func pruneValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		if x == "" {
			return nil
		}
		return x
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			if p := pruneValue(val); p != nil {
				out[k] = p
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		return pruneSlice(x)
	case []string:
		elems := make([]any, len(x))
		for i, s := range x {
			elems[i] = s
		}
		return pruneSlice(elems)
	case []map[string]any:
		elems := make([]any, len(x))
		for i, m := range x {
			elems[i] = m
		}
		return pruneSlice(elems)
	default:
		return x
	}
}

func pruneSlice(elems []any) any {
	out := make([]any, 0, len(elems))
	for _, el := range elems {
		if p := pruneValue(el); p != nil {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
