package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"groupme/internal/core"
)

func loggedRequest(t *testing.T, handler http.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	r := chi.NewMux()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := withRequest(req.Context(), &Request{Viewer: core.Anonymous(), Logger: logger})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}, logRequests, recoverPanics)
	r.Get("/things", handler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &line))
	return rec, line
}

func TestLogRequests(t *testing.T) {
	t.Parallel()

	t.Run("records the written status", func(t *testing.T) {
		t.Parallel()

		rec, line := loggedRequest(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte("done")) //nolint:errcheck
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "request", line["msg"])
		require.EqualValues(t, http.StatusCreated, line["status"])
		require.EqualValues(t, 4, line["bytes"])
	})

	t.Run("implicit ok", func(t *testing.T) {
		t.Parallel()

		_, line := loggedRequest(t, func(http.ResponseWriter, *http.Request) {})

		require.EqualValues(t, http.StatusOK, line["status"])
	})
}

func TestRecoverPanics(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	handler := recoverPanics(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(withRequest(req.Context(), &Request{Viewer: core.Anonymous(), Logger: logger}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ack
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.False(t, body.OK)
	require.Equal(t, http.StatusText(http.StatusInternalServerError), body.Message)
	require.Contains(t, logs.String(), "panic recovered")
}
