package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mindbuddy/mindbuddy/internal/config"
	"github.com/mindbuddy/mindbuddy/internal/llm"
	"github.com/mindbuddy/mindbuddy/internal/pipeline"
	"github.com/mindbuddy/mindbuddy/internal/room"
)

// Server is the HTTP API for mindbuddy.
type Server struct {
	router   chi.Router
	pipeline *pipeline.Service
	store    *room.Store
	stats    *llm.Stats
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(p *pipeline.Service, store *room.Store, stats *llm.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		pipeline: p,
		store:    store,
		stats:    stats,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/mindmap/generate", s.handleGenerate)
		r.Post("/mindmap/preview", s.handlePreview)
		r.Post("/mindmap/from-document", s.handleFromDocument)

		r.Get("/stats/llm", s.handleLLMStats)

		r.Get("/rooms/{code}", s.handleGetRoom)

		// Mutating room endpoints; auth only applies when a key is
		// configured.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(s.cfg.APIKey))

			r.Post("/rooms", s.handleCreateRoom)
			r.Post("/rooms/{code}/topics", s.handleAddTopic)
			r.Post("/rooms/{code}/topics/{topicID}/comments", s.handleAddComment)
			r.Post("/rooms/{code}/comments/{commentID}/vote", s.handleVote)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
