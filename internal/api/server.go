// Package api is the HTTP front door for the scheduler service.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/example/vocabhub/internal/study"
)

// Server is the vocabhub HTTP API server.
type Server struct {
	svc     *study.Service
	db      *sqlx.DB
	router  chi.Router
	log     *zap.Logger
	version string
	started time.Time
}

// New creates a Server over the study service.
func New(svc *study.Service, db *sqlx.DB, log *zap.Logger, version string) *Server {
	s := &Server{
		svc:     svc,
		db:      db,
		log:     log,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/words", s.handleSaveWord)
		r.Post("/words/{wordID}/known", s.handleMarkKnown)
		r.Post("/words/{wordID}/reviews", s.handleSubmitReview)
		r.Get("/words/{wordID}/curve", s.handleCurve)

		r.Get("/users/{userID}/batch", s.handleBatch)
		r.Post("/users/{userID}/reviews", s.handleSubmitReviewByWord)
		r.Get("/users/{userID}/streak", s.handleStreak)
		r.Post("/users/{userID}/curves", s.handleCurves)

		r.Post("/projection", s.handleProjection)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
