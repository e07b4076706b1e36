package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"WordTracker/internal/auth"
	"WordTracker/internal/ingest"
	"WordTracker/internal/ports"
	"WordTracker/internal/words"
)

// Deps are the collaborators the HTTP layer exposes.
type Deps struct {
	Articles ports.ArticleRepository
	Words    ports.WordRepository
	Users    ports.UserRepository
	Source   ports.NewsSource
	Runner   *ingest.Runner
	WordSvc  *words.Service
	Auth     *auth.Manager
	Logger   *slog.Logger
}

// Server is the public HTTP API.
type Server struct {
	deps Deps
	http *http.Server
}

func New(addr string, deps Deps) *Server {
	s := &Server{deps: deps}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", s.handleRoot)
	r.Route("/api", func(r chi.Router) {
		r.Get("/articles", s.handleListArticles)
		r.Get("/news", s.handleNews)
		r.Get("/news/ingest", s.handleIngest)

		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.With(s.requireAuth).Get("/me", s.handleMe)
		r.With(s.requireAuth).Get("/me/words", s.handleMyWords)

		r.Get("/words", s.handleListWords)
		r.With(s.requireAuth).Post("/words", s.handleAddWord)
		r.With(s.requireAuth).Delete("/words/{id}", s.handleDeleteWord)
		r.Get("/words/stats", s.handleWordStats)
		r.Get("/words/{id}/appearances", s.handleWordAppearances)
	})

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	s.deps.Logger.Info("http server listening", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
