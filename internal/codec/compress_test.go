package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeflateInflate_RoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte(`{"f":"Alex","t":"Sam","m":"Hi"}`),
		[]byte(""),
		[]byte(strings.Repeat(`{"r":["because","because"]}`, 100)),
	}
	for _, p := range payloads {
		s, err := deflateToURLSafe(p)
		require.NoError(t, err)
		got, err := inflateFromURLSafe(s)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestDeflateToURLSafe_AlphabetIsURLSafe(t *testing.T) {
	s, err := deflateToURLSafe([]byte(`{"m":"I love you to the moon and back ❤"}`))
	require.NoError(t, err)
	for _, r := range s {
		ok := r == '-' || r == '_' ||
			(r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		assert.True(t, ok, "non URL-safe symbol %q", r)
	}
}

func TestInflateFromURLSafe_Garbage(t *testing.T) {
	_, err := inflateFromURLSafe("not base64!!")
	assert.Error(t, err)

	// Valid base64 that is not a DEFLATE stream.
	_, err = inflateFromURLSafe("aGVsbG8")
	assert.Error(t, err)
}
