package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kestrel-sir/api/handlers"
	"kestrel-sir/config"
	"kestrel-sir/core/reports"
	"kestrel-sir/core/store"
	"kestrel-sir/core/utils"
)

// BackgroundWorker is anything started alongside the HTTP server and stopped
// on shutdown.
type BackgroundWorker interface {
	StartWithContext(ctx context.Context)
	StopWithContext(ctx context.Context) error
}

type ServerDeps struct {
	Drafts     store.DraftsStore
	Audits     store.AuditStore
	ReportsSvc *reports.Service
	Sender     handlers.SubmitSender
}

type Server struct {
	cfg    *config.AppConfig
	logger *utils.Logger
	deps   ServerDeps
	router chi.Router
}

func NewServer(cfg *config.AppConfig, deps ServerDeps, logger *utils.Logger) *Server {
	s := &Server{cfg: cfg, logger: logger, deps: deps}
	s.router = s.buildRouter()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	h := s.newRouteHandlers()
	r := chi.NewRouter()
	r.Use(s.recoverMiddleware)
	r.Use(s.requestIDMiddleware)
	r.Use(s.securityHeadersMiddleware)
	r.Use(s.loggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/reports", h.reports.List)
		r.Get("/reports/export", h.reports.Export)
		r.Get("/reports/{reportNumber}", h.reports.Get)

		r.Get("/form", h.form.Init)
		r.Get("/drafts", h.form.ListDrafts)
		r.Get("/drafts/{key}", h.form.GetDraft)
		r.Put("/drafts/{key}", h.form.SaveDraft)
		r.Delete("/drafts/{key}", h.form.ClearDraft)
		r.Post("/submissions", h.form.Submit)

		r.Get("/logs", h.logs.List)
		r.Get("/logs/export", h.logs.Export)
	})
	return r
}
