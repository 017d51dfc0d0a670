package api

import (
	"context"
	"log/slog"
	"sync"

	"groupme/internal/core"
)

type contextKey string

const requestContextKey = contextKey("request")

// Request is built fresh for every HTTP request and carries who is asking, a scoped logger and the
// viewer's theme, resolved on first use.
type Request struct {
	Viewer core.Viewer
	Logger *slog.Logger

	theme func() (*core.Theme, error)
}

// NewRequest builds the per-request context value.
func NewRequest(ctx context.Context, viewer core.Viewer, logger *slog.Logger, themes core.ThemeRepository) *Request {
	return &Request{
		Viewer: viewer,
		Logger: logger,
		theme: sync.OnceValues(func() (*core.Theme, error) {
			return themes.ForViewer(ctx, viewer)
		}),
	}
}

// Theme returns the viewer's theme. Storage is queried at most once per request.
func (r *Request) Theme() (*core.Theme, error) {
	return r.theme()
}

func withRequest(ctx context.Context, req *Request) context.Context {
	return context.WithValue(ctx, requestContextKey, req)
}

// RequestFromContext returns the request context, or an anonymous one with the default logger.
func RequestFromContext(ctx context.Context) *Request {
	if req, ok := ctx.Value(requestContextKey).(*Request); ok {
		return req
	}
	return &Request{
		Viewer: core.Anonymous(),
		Logger: slog.Default(),
		theme: func() (*core.Theme, error) {
			return nil, core.ErrThemeNotFound
		},
	}
}
