// Package httpapi exposes the link resolution service, the suggestion
// inbox and the media presigner over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lovelab-app/lovelab/internal/logging"
	"github.com/lovelab-app/lovelab/internal/server/auth"
	"github.com/lovelab-app/lovelab/internal/server/links"
	"github.com/lovelab-app/lovelab/internal/server/media"
	"github.com/lovelab-app/lovelab/internal/server/suggestions"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	srv         *http.Server
	logger      logging.Logger
	links       *links.Service
	suggestions *suggestions.Service
	auth        *auth.Manager
	media       *media.Service
}

func NewServer(addr string, logger logging.Logger, linkSvc *links.Service,
	sugSvc *suggestions.Service, authMgr *auth.Manager, mediaSvc *media.Service) *Server {

	s := &Server{
		logger:      logger.With("component", "http"),
		links:       linkSvc,
		suggestions: sugSvc,
		auth:        authMgr,
		media:       mediaSvc,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/api/save", requireMethod(http.MethodPost, http.HandlerFunc(s.handleSave)))
	mux.Handle("/api/get", requireMethod(http.MethodGet, http.HandlerFunc(s.handleGet)))
	mux.Handle("/api/stats", requireMethod(http.MethodGet, http.HandlerFunc(s.handleStats)))
	mux.Handle("/api/suggest", requireMethod(http.MethodPost, http.HandlerFunc(s.handleSuggest)))
	mux.Handle("/api/admin/login", requireMethod(http.MethodPost, http.HandlerFunc(s.handleAdminLogin)))
	mux.Handle("/api/suggestions", requireMethod(http.MethodGet, s.requireAdmin(http.HandlerFunc(s.handleListSuggestions))))
	mux.Handle("/api/media/upload-url", requireMethod(http.MethodPost, http.HandlerFunc(s.handleMediaUploadURL)))
	mux.Handle("/api/media/url", requireMethod(http.MethodGet, http.HandlerFunc(s.handleMediaDownloadURL)))

	return s.withLogging(mux)
}

// requireMethod replicates Go 1.22+ ServeMux method patterns (e.g.
// "POST /api/save") for the Go 1.21 toolchain: same path routing, a 405
// with an Allow header on method mismatch, and HEAD accepted for GET.
func requireMethod(method string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
			w.Header().Set("Allow", method)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()
	s.logger.Info(ctx, "http server listening", "addr", s.srv.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
