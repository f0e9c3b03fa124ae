package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrune_RemovesEmptyLeaves(t *testing.T) {
	doc := map[string]any{
		"from":    "Alex",
		"to":      "",
		"msg":     "Hi",
		"reasons": []any{"one", "", "two"},
		"photos":  []string{},
		"moments": []any{
			map[string]any{"date": "", "title": "", "photo": ""},
			map[string]any{"date": "2026-02-14", "title": "Dinner"},
		},
		"extra": nil,
	}

	got := Prune(doc)

	assert.Equal(t, map[string]any{
		"from":    "Alex",
		"msg":     "Hi",
		"reasons": []any{"one", "two"},
		"moments": []any{
			map[string]any{"date": "2026-02-14", "title": "Dinner"},
		},
	}, got)
}

func TestPrune_Idempotent(t *testing.T) {
	doc := map[string]any{
		"from":    "A",
		"to":      "",
		"reasons": []string{"x", ""},
		"nested":  map[string]any{"inner": map[string]any{"v": ""}},
	}

	once := Prune(doc)
	twice := Prune(once)
	assert.Equal(t, once, twice)
}

func TestPrune_KeepsZeroNumbersAndFalse(t *testing.T) {
	doc := map[string]any{"count": float64(0), "flag": false, "empty": ""}
	assert.Equal(t, map[string]any{"count": float64(0), "flag": false}, Prune(doc))
}

func TestPrune_EmptyDocument(t *testing.T) {
	assert.Equal(t, map[string]any{}, Prune(map[string]any{}))
	assert.Equal(t, map[string]any{}, Prune(map[string]any{"a": "", "b": []any{}}))
}
