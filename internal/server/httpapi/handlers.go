package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/lovelab-app/lovelab/internal/common"
	"github.com/lovelab-app/lovelab/internal/models"
)

// maxPayloadBytes bounds save/suggest bodies; documents are a few KB at
// most.
const maxPayloadBytes = 64 << 10

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read body")
		return
	}

	id, err := s.links.Save(r.Context(), body)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to save data")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "success": true})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}

	payload, err := s.links.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to fetch data")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// handleStats never fails the caller: the service already substitutes the
// fallback count on backend trouble.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"count": s.links.Stats(r.Context())})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Suggestion string `json:"suggestion"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := s.suggestions.Add(r.Context(), req.Name, req.Suggestion); err != nil {
		s.writeServiceError(w, r, err, "failed to save suggestion")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.auth.Login(req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (s *Server) handleListSuggestions(w http.ResponseWriter, r *http.Request) {
	list, err := s.suggestions.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "failed to fetch suggestions")
		return
	}
	if list == nil {
		list = []models.Suggestion{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": list})
}

func (s *Server) handleMediaUploadURL(w http.ResponseWriter, r *http.Request) {
	if !s.media.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "media storage not configured")
		return
	}
	key, url, err := s.media.UploadURL(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "presign upload failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to create upload url")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": key, "url": url})
}

func (s *Server) handleMediaDownloadURL(w http.ResponseWriter, r *http.Request) {
	if !s.media.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "media storage not configured")
		return
	}
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing key")
		return
	}
	url, err := s.media.DownloadURL(r.Context(), key)
	if err != nil {
		s.logger.Error(r.Context(), "presign download failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to create download url")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"url": url})
}

// writeServiceError maps service sentinels to HTTP statuses; anything
// unexpected becomes a logged 500 with a generic message.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, common.ErrInvalidPayload):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, msg)
	default:
		s.logger.Error(r.Context(), "unexpected service error", "error", err.Error())
		writeError(w, http.StatusInternalServerError, msg)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
