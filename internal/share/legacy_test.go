package share

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLegacyQuery(t *testing.T) {
	q, err := url.ParseQuery("from=Alex&to=Sam&msg=Hi&world=cards&vibe=soft&reasons=one,two%7Cthree")
	require.NoError(t, err)

	doc, ok := ParseLegacyQuery(q)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"from":    "Alex",
		"to":      "Sam",
		"msg":     "Hi",
		"world":   "cards",
		"vibe":    "soft",
		"reasons": []any{"one", "two", "three"},
	}, doc)
}

func TestParseLegacyQuery_NoFromParam(t *testing.T) {
	q, err := url.ParseQuery("to=Sam&msg=Hi")
	require.NoError(t, err)

	doc, ok := ParseLegacyQuery(q)
	assert.False(t, ok)
	assert.Nil(t, doc)
}

func TestParseLegacyQuery_EmptyReasonsDropped(t *testing.T) {
	q, err := url.ParseQuery("from=Alex&reasons=%7C%2C%7C")
	require.NoError(t, err)

	doc, ok := ParseLegacyQuery(q)
	require.True(t, ok)
	assert.NotContains(t, doc, "reasons")
}
