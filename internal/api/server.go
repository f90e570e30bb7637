package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/planweave/planweave/internal/config"
	"github.com/planweave/planweave/internal/export"
	"github.com/planweave/planweave/internal/ipfilter"
	"github.com/planweave/planweave/internal/metrics"
	"github.com/planweave/planweave/internal/plan"
	"github.com/planweave/planweave/internal/render"
	"github.com/planweave/planweave/internal/store"
)

// Version is stamped by the build.
var Version = "dev"

// Server is the editor HTTP API. It owns the working document: every
// mutation goes through the server's lock, and applied mutations are
// mirrored to storage through the debounced mirror.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	store      *store.Store
	mirror     *store.Mirror
	renderer   *render.Renderer
	exporter   *export.Exporter
	config     *config.ServerConfig
	logger     *slog.Logger
	startTime  time.Time

	mu  sync.Mutex
	doc plan.Document
}

// NewServer creates a new API server around an initial working document.
func NewServer(doc plan.Document, st *store.Store, mirror *store.Mirror, renderer *render.Renderer, exporter *export.Exporter, cfg *config.ServerConfig, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		store:     st,
		mirror:    mirror,
		renderer:  renderer,
		exporter:  exporter,
		config:    cfg,
		logger:    logger,
		startTime: time.Now(),
		doc:       doc,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	// Middleware
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(metrics.HTTPMiddleware)
	s.router.Use(middleware.Recoverer)

	if filter := ipfilter.New(s.config.AllowedIPs, s.logger); filter.Enabled() {
		s.logger.Info("API IP filtering enabled", "allowed_networks", filter.Count())
		s.router.Use(filter.HTTPMiddleware)
	}

	// Health check (no auth required)
	s.router.Get("/health", s.handleHealth)

	// API v1 routes (auth required)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/document", s.handleGetDocument)
		r.Post("/document/reset", s.handleResetDocument)
		r.Put("/document/meta", s.handleSetMeta)

		r.Post("/sections", s.handleAddSection)
		r.Delete("/sections/{id}", s.handleRemoveSection)
		r.Post("/sections/{id}/visibility", s.handleToggleVisibility)
		r.Patch("/sections/{id}/content", s.handlePatchContent)
		r.Patch("/sections/{id}/styles", s.handlePatchStyles)

		r.Post("/sections/{id}/items", s.handleAddItem)
		r.Patch("/sections/{id}/items/{itemID}", s.handleUpdateItem)
		r.Delete("/sections/{id}/items/{itemID}", s.handleRemoveItem)

		r.Post("/sections/{id}/buttons", s.handleAddButton)
		r.Put("/sections/{id}/buttons/{index}", s.handleUpdateButton)
		r.Delete("/sections/{id}/buttons/{index}", s.handleRemoveButton)

		r.Post("/sections/{id}/schedule/toggle-day", s.handleToggleDay)

		r.Get("/drafts", s.handleListDrafts)
		r.Post("/drafts", s.handleSaveDraft)
		r.Delete("/drafts/{draftID}", s.handleDeleteDraft)
		r.Post("/drafts/{draftID}/load", s.handleLoadDraft)
		r.Get("/drafts/export", s.handleExportDrafts)
		r.Post("/drafts/import", s.handleImportDrafts)

		r.Post("/export/all", s.handleExportAll)
		r.Post("/export/{region}", s.handleExportRegion)

		r.Get("/preview", s.handlePreviewPage)
		r.Get("/preview/{region}", s.handlePreviewRegion)
	})
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:           s.config.ListenAddr,
		Handler:        s.router,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		IdleTimeout:    s.config.IdleTimeout,
		MaxHeaderBytes: s.config.MaxHeaderBytes,
	}

	s.logger.Info("starting HTTP API server", "addr", s.config.ListenAddr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP API server")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// snapshot returns the current working document.
func (s *Server) snapshot() plan.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// apply runs one pure mutation against the working document under the
// server lock. Applied mutations replace the document and schedule a
// mirror write; no-ops leave everything untouched.
func (s *Server) apply(op string, fn func(plan.Document) (plan.Document, bool)) (plan.Document, bool) {
	s.mu.Lock()
	next, applied := fn(s.doc)
	if applied {
		s.doc = next
		if s.mirror != nil {
			s.mirror.Touch(next)
		}
	}
	doc := s.doc
	s.mu.Unlock()

	metrics.IncMutation(op, applied)
	if !applied {
		s.logger.Debug("mutation was a no-op", "op", op)
	}
	return doc, applied
}

// replace swaps the whole working document (reset, draft load).
func (s *Server) replace(doc plan.Document, mirror bool) {
	s.mu.Lock()
	s.doc = doc
	if mirror && s.mirror != nil {
		s.mirror.Touch(doc)
	}
	s.mu.Unlock()
}
