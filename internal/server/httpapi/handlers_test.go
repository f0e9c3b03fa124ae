package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lovelab-app/lovelab/internal/codec"
	"github.com/lovelab-app/lovelab/internal/logging"
	"github.com/lovelab-app/lovelab/internal/server/auth"
	"github.com/lovelab-app/lovelab/internal/server/links"
	"github.com/lovelab-app/lovelab/internal/server/media"
	"github.com/lovelab-app/lovelab/internal/server/storage"
	"github.com/lovelab-app/lovelab/internal/server/suggestions"
)

func newTestHandler(t *testing.T, store storage.Store) http.Handler {
	t.Helper()
	logger := logging.NewJSONLogger(io.Discard)
	s := NewServer(":0", logger,
		links.NewService(store, time.Hour, 124, logger),
		suggestions.NewService(store, logger),
		auth.NewManager([]byte("test-secret"), time.Minute, "love2026"),
		media.NewService(media.Settings{}),
	)
	return s.routes()
}

func doJSON(t *testing.T, h http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSaveAndGet_RoundTrip(t *testing.T) {
	h := newTestHandler(t, storage.NewMemoryStore())

	rec := doJSON(t, h, http.MethodPost, "/api/save", `{"from":"Alex","to":"Sam","msg":"Hi"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var saved struct {
		ID      string `json:"id"`
		Success bool   `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.True(t, saved.Success)
	require.Len(t, saved.ID, 8)

	rec = doJSON(t, h, http.MethodGet, "/api/get?id="+saved.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"from":"Alex","to":"Sam","msg":"Hi"}`, rec.Body.String())
}

func TestSave_ProtectedShareStoresOnlyCiphertext(t *testing.T) {
	store := storage.NewMemoryStore()
	h := newTestHandler(t, store)

	token, err := codec.Encode(map[string]any{"from": "Alex", "msg": "secret"}, "1234")
	require.NoError(t, err)
	body, err := json.Marshal(token)
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodPost, "/api/save", string(body), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var saved struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))

	rec = doJSON(t, h, http.MethodGet, "/api/get?id="+saved.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.True(t, strings.HasPrefix(fetched, "enc_"))
	assert.NotContains(t, rec.Body.String(), "secret")

	doc, err := codec.Decode(fetched, "1234")
	require.NoError(t, err)
	assert.Equal(t, "secret", doc["msg"])
}

func TestSave_RejectsUntaggedString(t *testing.T) {
	h := newTestHandler(t, storage.NewMemoryStore())

	rec := doJSON(t, h, http.MethodPost, "/api/save", `"plain text"`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSave_StoreUnavailable(t *testing.T) {
	h := newTestHandler(t, storage.FailingStore{})

	rec := doJSON(t, h, http.MethodPost, "/api/save", `{"from":"Alex"}`, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGet_UnknownID(t *testing.T) {
	h := newTestHandler(t, storage.NewMemoryStore())

	rec := doJSON(t, h, http.MethodGet, "/api/get?id=doesnotexist", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGet_MissingID(t *testing.T) {
	h := newTestHandler(t, storage.NewMemoryStore())

	rec := doJSON(t, h, http.MethodGet, "/api/get", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats(t *testing.T) {
	h := newTestHandler(t, storage.NewMemoryStore())

	rec := doJSON(t, h, http.MethodPost, "/api/save", `{"from":"Alex"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1}`, rec.Body.String())
}

func TestStats_FallbackOnOutage(t *testing.T) {
	h := newTestHandler(t, storage.FailingStore{})

	rec := doJSON(t, h, http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":124}`, rec.Body.String())
}

func TestSuggestFlow_WithAdminListing(t *testing.T) {
	h := newTestHandler(t, storage.NewMemoryStore())

	rec := doJSON(t, h, http.MethodPost, "/api/suggest", `{"suggestion":"more worlds"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Listing requires a token.
	rec = doJSON(t, h, http.MethodGet, "/api/suggestions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/admin/login", `{"password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/admin/login", `{"password":"love2026"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	header := http.Header{"Authorization": {"Bearer " + login.Token}}
	rec = doJSON(t, h, http.MethodGet, "/api/suggestions", "", header)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Suggestions []struct {
			Name       string `json:"name"`
			Suggestion string `json:"suggestion"`
		} `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "Anonymous", resp.Suggestions[0].Name)
	assert.Equal(t, "more worlds", resp.Suggestions[0].Suggestion)
}

func TestSuggest_EmptyTextRejected(t *testing.T) {
	h := newTestHandler(t, storage.NewMemoryStore())

	rec := doJSON(t, h, http.MethodPost, "/api/suggest", `{"name":"Sam"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMedia_UnconfiguredReturns503(t *testing.T) {
	h := newTestHandler(t, storage.NewMemoryStore())

	rec := doJSON(t, h, http.MethodPost, "/api/media/upload-url", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/media/url?key=x", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
