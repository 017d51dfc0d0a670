package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"groupme/internal/auth"
	"groupme/internal/config"
	"groupme/internal/core"
	"groupme/internal/social"
)

const defaultAddr = ":8888"

type Server struct {
	server *http.Server

	Logger   *slog.Logger
	Config   *config.Config
	Social   *social.Service
	Users    core.UserRepository
	Themes   core.ThemeRepository
	Sessions *auth.Sessions
	Storage  core.ObjectStorage
}

func (s *Server) Run(ctx context.Context) error {
	s.Logger.Info("Starting API server", "addr", s.server.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "api.Server")

	addr := s.Config.ListenAddr
	if addr == "" {
		addr = defaultAddr
	}

	s.server = &http.Server{
		Handler:           s.Routes(),
		Addr:              addr,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}
	return nil
}

// Routes builds the full handler tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()

	r.Use(
		middleware.RequestID,
		jsonContentType,
		s.requestContext,
		logRequests,
		recoverPanics,
	)

	r.With(requireGuest).Post("/join", s.join)
	r.With(requireGuest).Post("/login", s.login)
	r.With(requireViewer).Post("/logout", s.logout)

	r.Route("/api", func(r chi.Router) {
		r.Get("/feed", s.feed)
		r.Post("/paginate", s.paginate)

		r.Get("/posts/{id}", s.post)
		r.Get("/posts/{id}/likes", s.postLikes)
		r.Get("/posts/{id}/comments", s.postComments)
		r.With(requireViewer).Post("/posts", s.createPost)
		r.With(requireViewer).Post("/posts/{id}/delete", s.deletePost)

		r.Route("/forms", func(r chi.Router) {
			r.Use(requireViewer)

			r.Post("/newlike", s.like)
			r.Post("/deletelike", s.unlike)
			r.Post("/newcomment", s.comment)
			r.Post("/block", s.block)
			r.Post("/newseen", s.seen)
		})

		r.Get("/theme", s.theme)
		r.Get("/themes", s.themes)

		r.With(requireViewer).Get("/blocks", s.blocked)

		r.With(requireViewer).Get("/settings", s.settings)
		r.With(requireViewer).Post("/settings", s.updateSettings)

		r.With(requireViewer).Get("/me", s.me)
		r.With(requireViewer).Post("/account/delete", s.deleteAccount)

		r.Get("/users/{id}", s.profile)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ack{Message: http.StatusText(http.StatusNotFound)})
	})

	return r
}
