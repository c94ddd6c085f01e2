// Package server exposes the motion pipeline and session history over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/repcoach/internal/config"
	"github.com/claude/repcoach/internal/feedback"
	"github.com/claude/repcoach/internal/motion"
	"github.com/claude/repcoach/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db         *storage.DB
	live       *registry
	dispatcher *feedback.Dispatcher
	trackerCfg motion.Config
	tracking   config.TrackingConfig
	log        *slog.Logger
	apiKey     string
	router     chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, dispatcher *feedback.Dispatcher, tracking config.TrackingConfig, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:         db,
		live:       newRegistry(),
		dispatcher: dispatcher,
		trackerCfg: motion.Config{
			PauseThreshold: tracking.PauseThreshold,
			MinRepInterval: tracking.MinRepInterval(),
		},
		tracking: tracking,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Live session pipeline
	s.router.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", s.handleStartSession)
		r.Get("/", s.handleQuerySessions)
		r.Get("/{id}", s.handleGetSession)
		r.Post("/{id}/frames", s.handleFrame)
		r.Post("/{id}/finish", s.handleFinishSession)
		r.Delete("/{id}", s.handleAbandonSession)
	})

	s.router.Post("/api/v1/calibration", s.handleCalibration)
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/stats/reps", s.handleRepStats)
	s.router.Get("/api/v1/stats/daily", s.handleDailyReps)

	// Bulk import from the replay CLI (API key required)
	s.router.Route("/api/v1/import", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleImport)
	})

	s.router.Handle("/metrics", promhttp.Handler())
}
