// Package web serves the sign-in UI and the HTTP export endpoints.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"roomlog/internal/app"
	"roomlog/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server wires the shared Service into HTTP handlers.
type Server struct {
	svc  *app.Service
	cfg  *config.Config
	mux  *http.ServeMux
	tmpl *template.Template
}

// NewServer constructs the HTTP server for the sign-in UI.
func NewServer(svc *app.Service, cfg *config.Config) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		svc:  svc,
		cfg:  cfg,
		mux:  http.NewServeMux(),
		tmpl: tmpl,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /sign", s.handleSign)
	s.mux.HandleFunc("POST /scan", s.handleScan)
	s.mux.HandleFunc("GET /admin", s.handleAdmin)
	s.mux.HandleFunc("GET /export", s.handleExportCSV)
	s.mux.HandleFunc("GET /export/sheets", s.handleExportSheets)
	s.mux.HandleFunc("POST /remove/{id}", s.handleRemove)
	s.mux.HandleFunc("POST /edit/{id}", s.handleEdit)
	s.mux.HandleFunc("GET /cards", s.handleCards)
	s.mux.HandleFunc("POST /cards/link", s.handleLinkCard)
	s.mux.HandleFunc("POST /cards/unlink", s.handleUnlinkCard)
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.logMiddleware(s.mux)
}

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logMiddleware stamps each request with a correlation id and writes one
// access-log line per request.
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		slog.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("render template", "template", name, "error", err)
	}
}
