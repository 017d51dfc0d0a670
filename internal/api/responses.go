package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"groupme/internal/core"
	"groupme/internal/storage"
)

var errInvalidID = errors.New("invalid id")

// ack acknowledges a mutation.
type ack struct {
	OK         bool   `json:"ok"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func ok(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, ack{OK: true, Message: message})
}

// fail maps domain errors to status codes. Anything unexpected is logged and hidden behind a generic message.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		RequestFromContext(r.Context()).Logger.Error("request failed", "error", err)
		message = http.StatusText(http.StatusInternalServerError)
	}

	writeJSON(w, status, ack{OK: false, Message: message})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, core.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, storage.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func idParam(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s", core.ErrValidation, errInvalidID)
	}
	return uint(id), nil
}
