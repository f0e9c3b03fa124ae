package codec

// keyMap shortens document field names on the wire. The table is append
// only: once an entry has shipped, renaming or removing it would break
// previously issued links. Keys absent from the table pass through
// unchanged in both directions, which keeps tokens readable across codec
// versions that disagree on the table contents.
var keyMap = map[string]string{
	"from":        "f",
	"to":          "t",
	"msg":         "m",
	"about":       "a",
	"reasons":     "r",
	"world":       "w",
	"vibe":        "v",
	"template":    "te",
	"moments":     "mo",
	"photos":      "p",
	"question":    "q",
	"date":        "d",
	"title":       "ti",
	"description": "de",
	"photo":       "ph",
}

var keyMapReverse = func() map[string]string {
	m := make(map[string]string, len(keyMap))
	for long, short := range keyMap {
		m[short] = long
	}
	return m
}()

// compact recursively renames map keys to their short codes.
func compact(v any) any {
	return renameKeys(v, keyMap)
}

// expand recursively renames short codes back to full field names.
func expand(v any) any {
	return renameKeys(v, keyMapReverse)
}

// renameKeys walks the document tree applying the partial mapping to every
// map key it encounters; unmapped keys keep their identity.
func renameKeys(v any, table map[string]string) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			nk, ok := table[k]
			if !ok {
				nk = k
			}
			out[nk] = renameKeys(val, table)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, el := range x {
			out[i] = renameKeys(el, table)
		}
		return out
	default:
		return x
	}
}
