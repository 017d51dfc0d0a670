package api

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"groupme/internal/auth"
	"groupme/internal/core"
)

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "groupme_http_request_duration_seconds",
	Help:    "Duration of HTTP requests.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route", "status"})

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestContext resolves the viewer and attaches a fresh Request to the context.
func (s *Server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer := s.viewer(r)

		logger := s.Logger.With(
			"method", r.Method,
			"path", r.URL.Path,
			"requestId", middleware.GetReqID(r.Context()),
		)
		if viewer.IsAuthenticated() {
			logger = logger.With("userId", viewer.UserID)
		}

		ctx := withRequest(r.Context(), NewRequest(r.Context(), viewer, logger, s.Themes))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) viewer(r *http.Request) core.Viewer {
	token := ""
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		token = cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		return core.Anonymous()
	}

	viewer, err := s.Sessions.Parse(token)
	if err != nil {
		s.Logger.Debug("ignoring invalid session", "error", err)
		return core.Anonymous()
	}
	return viewer
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(duration.Seconds())

		RequestFromContext(r.Context()).Logger.Info("request", "duration", duration, "status", status, "bytes", ww.BytesWritten())
	})
}

// recoverPanics answers with the JSON error body. middleware.Recoverer would reply with an empty 500.
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler { //nolint:errorlint
					panic(err)
				}
				RequestFromContext(r.Context()).Logger.Error("panic recovered", "error", err, "stack", string(debug.Stack()))
				writeJSON(w, http.StatusInternalServerError, ack{Message: http.StatusText(http.StatusInternalServerError)})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func requireViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !RequestFromContext(r.Context()).Viewer.IsAuthenticated() {
			fail(w, r, core.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RequestFromContext(r.Context()).Viewer.IsAuthenticated() {
			fail(w, r, errAlreadySignedIn)
			return
		}
		next.ServeHTTP(w, r)
	})
}
