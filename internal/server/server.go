// Package server exposes the HTTP API: record CRUD, data source upload and
// inspection, and the narrative endpoints backed by the generation pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmilbury/agentpress/apimodels"
	"github.com/jmilbury/agentpress/internal/config"
	"github.com/jmilbury/agentpress/internal/generator"
	"github.com/jmilbury/agentpress/internal/store"
)

type Server struct {
	cfg       config.ServerConfig
	router    *chi.Mux
	server    *http.Server
	store     *store.Store
	generator *generator.Service
}

func New(cfg config.ServerConfig, st *store.Store, gen *generator.Service) *Server {
	s := &Server{
		cfg:       cfg,
		router:    chi.NewRouter(),
		store:     st,
		generator: gen,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/organizations", func(r chi.Router) {
			r.Post("/", s.handleOrganizationCreate)
			r.Get("/", s.handleOrganizationList)
			r.Get("/{id}", s.handleOrganizationGet)
			r.Put("/{id}", s.handleOrganizationUpdate)
			r.Delete("/{id}", s.handleOrganizationDelete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", s.handleUserRegister)
			r.Get("/", s.handleUserList)
			r.Get("/{id}", s.handleUserGet)
			r.Put("/{id}", s.handleUserUpdate)
			r.Delete("/{id}", s.handleUserDelete)
		})

		r.Route("/data-sources", func(r chi.Router) {
			r.Post("/", s.handleDataSourceCreate)
			r.Get("/", s.handleDataSourceList)
			r.Post("/upload", s.handleDataSourceUpload)
			r.Get("/{id}", s.handleDataSourceGet)
			r.Put("/{id}", s.handleDataSourceUpdate)
			r.Delete("/{id}", s.handleDataSourceDelete)
			r.Get("/{id}/test", s.handleDataSourceTest)
			r.Get("/{id}/preview", s.handleDataSourcePreview)
		})

		r.Route("/agent-instances", func(r chi.Router) {
			r.Post("/", s.handleInstanceCreate)
			r.Get("/", s.handleInstanceList)
			r.Get("/{id}", s.handleInstanceGet)
			r.Put("/{id}", s.handleInstanceUpdate)
			r.Delete("/{id}", s.handleInstanceDelete)
			r.Post("/{id}/datasources", s.handleDataSourceLink)
			r.Post("/{id}/articles", s.handleArticleCreate)
			r.Get("/{id}/metrics", s.handleInstanceMetrics)
		})

		r.Route("/narratives", func(r chi.Router) {
			r.Get("/daily/{date}", s.handleDailyNarratives)
			r.Get("/agent/{id}", s.handleAgentNarratives)
		})
	})
}

// Run starts the server and blocks until it fails or a shutdown signal
// arrives, then drains outstanding requests.
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", s.server.Addr)
		serverErrors <- s.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		slog.Info("starting shutdown", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apimodels.ErrorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.Organizations.List(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy", "store": "disconnected",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "store": "connected"})
}
