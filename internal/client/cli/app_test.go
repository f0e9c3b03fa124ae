package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lovelab-app/lovelab/internal/codec"
)

func stubPIN(t *testing.T, pins ...string) {
	t.Helper()
	orig := readPassword
	i := 0
	readPassword = func() ([]byte, error) {
		require.Less(t, i, len(pins), "unexpected PIN prompt")
		pin := pins[i]
		i++
		return []byte(pin), nil
	}
	t.Cleanup(func() { readPassword = orig })
}

func writeDoc(t *testing.T, doc map[string]any) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRun_NoCommand(t *testing.T) {
	var out bytes.Buffer
	app := NewApp(strings.NewReader(""), &out)

	require.Error(t, app.Run(context.Background(), nil))
	assert.Contains(t, out.String(), "usage:")
}

func TestEncodeDecode_Stdin(t *testing.T) {
	in := strings.NewReader(`{"from": "Alex", "to": "Sam", "msg": "hi"}`)
	var out bytes.Buffer
	app := NewApp(in, &out)

	require.NoError(t, app.Run(context.Background(), []string{"encode"}))
	token := strings.TrimSpace(out.String())
	assert.True(t, strings.HasPrefix(token, "raw_"))

	out.Reset()
	require.NoError(t, app.Run(context.Background(), []string{"decode", token}))
	assert.Contains(t, out.String(), `"from": "Alex"`)
	assert.Contains(t, out.String(), `"msg": "hi"`)
}

func TestEncode_WithPIN(t *testing.T) {
	stubPIN(t, "1234")
	path := writeDoc(t, map[string]any{"from": "Alex", "to": "Sam"})
	var out bytes.Buffer
	app := NewApp(strings.NewReader(""), &out)

	require.NoError(t, app.Run(context.Background(), []string{"encode", "-pin", "-f", path}))

	lines := strings.Fields(out.String())
	token := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(token, "enc_"))

	doc, err := codec.Decode(token, "1234")
	require.NoError(t, err)
	assert.Equal(t, "Alex", doc["from"])
}

func TestDecode_WrongPINThenRight(t *testing.T) {
	token, err := codec.Encode(map[string]any{"from": "Alex"}, "1234")
	require.NoError(t, err)

	stubPIN(t, "0000", "1234")
	var out bytes.Buffer
	app := NewApp(strings.NewReader(""), &out)

	require.NoError(t, app.Run(context.Background(), []string{"decode", token}))
	assert.Contains(t, out.String(), "Incorrect PIN")
	assert.Contains(t, out.String(), `"from": "Alex"`)
}

func TestDecode_MissingToken(t *testing.T) {
	app := NewApp(strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, app.Run(context.Background(), []string{"decode"}))
}

func TestShare_ShortLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/save", r.URL.Path)
		var payload string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.True(t, strings.HasPrefix(payload, "raw_"))
		json.NewEncoder(w).Encode(map[string]any{"id": "a1B2c3D4", "success": true})
	}))
	defer srv.Close()

	path := writeDoc(t, map[string]any{"from": "Alex", "to": "Sam"})
	var out bytes.Buffer
	app := NewApp(strings.NewReader(""), &out)

	require.NoError(t, app.Run(context.Background(),
		[]string{"share", "-f", path, "-server", srv.URL}))
	assert.Contains(t, out.String(), "?id=a1B2c3D4")
	assert.NotContains(t, out.String(), "warning")
}

func TestShare_FallsBackWhenServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	path := writeDoc(t, map[string]any{"from": "Alex", "to": "Sam"})
	var out bytes.Buffer
	app := NewApp(strings.NewReader(""), &out)

	require.NoError(t, app.Run(context.Background(),
		[]string{"share", "-f", path, "-server", srv.URL, "-base", "https://love.example/v"}))
	assert.Contains(t, out.String(), "warning: short link unavailable")
	assert.Contains(t, out.String(), "https://love.example/v?data=raw_")
}

func TestStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/stats", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"count": 321})
	}))
	defer srv.Close()

	var out bytes.Buffer
	app := NewApp(strings.NewReader(""), &out)

	require.NoError(t, app.Run(context.Background(), []string{"stats", "-server", srv.URL}))
	assert.Contains(t, out.String(), "links generated: 321")
}
