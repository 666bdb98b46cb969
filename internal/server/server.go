// Package server exposes the repositories over a small JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/julianstephens/qingka/internal/feed"
	"github.com/julianstephens/qingka/internal/logger"
	"github.com/julianstephens/qingka/internal/models"
)

type ProfileStore interface {
	Load(userID string) (models.UserProfile, error)
	Save(userID string, p models.UserProfile) error
	Reset(userID string) error
}

type FeedStore interface {
	List(filterTag string) ([]models.SocialPost, error)
	Get(id string) (models.SocialPost, error)
	Create(d feed.Draft) (models.SocialPost, error)
	ToggleLike(id string) (models.SocialPost, error)
	ToggleFavorite(id string) (models.SocialPost, error)
	Delete(id string) error
}

type MilestoneStore interface {
	List(userID string) ([]models.DaysMatterEvent, error)
	Create(userID string, e models.DaysMatterEvent) (models.DaysMatterEvent, error)
	Delete(userID, id string) error
}

type AssistantStore interface {
	History(userID string) ([]models.ChatMessage, error)
	Append(userID string, msg models.ChatMessage) (models.ChatMessage, error)
	Clear(userID string) error
}

type Deps struct {
	Profiles   ProfileStore
	Feed       FeedStore
	Milestones MilestoneStore
	Assistant  AssistantStore
	// Now is the clock used for day counts; defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	deps Deps
}

func New(deps Deps) *Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Server{deps: deps}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, NewSuccessResponse(map[string]string{"status": "ok"}))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.listCategories)

		r.Route("/knowledge", func(r chi.Router) {
			r.Get("/categories", s.listKnowledgeCategories)
			r.Get("/categories/{categoryId}", s.getKnowledgeCategory)
			r.Get("/articles", s.listArticles)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", s.listPosts)
			r.Post("/", s.createPost)

			r.Route("/{postId}", func(r chi.Router) {
				r.Get("/", s.getPost)
				r.Delete("/", s.deletePost)
				r.Post("/like", s.likePost)
				r.Post("/favorite", s.favoritePost)
			})
		})

		r.Route("/users/{userId}", func(r chi.Router) {
			r.Get("/profile", s.getProfile)
			r.Put("/profile", s.putProfile)
			r.Delete("/profile", s.resetProfile)

			r.Get("/milestones", s.listMilestones)
			r.Post("/milestones", s.createMilestone)
			r.Delete("/milestones/{eventId}", s.deleteMilestone)

			r.Get("/assistant/history", s.getHistory)
			r.Post("/assistant/history", s.appendHistory)
			r.Delete("/assistant/history", s.clearHistory)
			r.Get("/assistant/context", s.getContext)
		})
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.With("request_id", middleware.GetReqID(r.Context())).Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
