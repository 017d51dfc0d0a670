package api

import (
	"net/http"

	"groupme/internal/core"
	"groupme/internal/forms"
)

type settingsResponse struct {
	User   *core.User   `json:"user"`
	Themes []core.Theme `json:"themes"`
}

// theme returns the viewer's theme from the request context.
func (s *Server) theme(w http.ResponseWriter, r *http.Request) {
	theme, err := RequestFromContext(r.Context()).Theme()
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, theme)
}

func (s *Server) themes(w http.ResponseWriter, r *http.Request) {
	themes, err := s.Themes.List(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, themes)
}

func (s *Server) settings(w http.ResponseWriter, r *http.Request) {
	user, themes, err := s.Users.Settings(r.Context(), RequestFromContext(r.Context()).Viewer.UserID)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{User: user, Themes: themes})
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	req, err := forms.Parse[forms.Settings](r)
	if err != nil {
		fail(w, r, err)
		return
	}

	user, err := s.Users.Update(r.Context(), RequestFromContext(r.Context()).Viewer.UserID, core.UserUpdate{
		Email:         req.Email,
		ThemeID:       req.ThemeID,
		Notifications: req.NotificationsEnabled(),
		Privacy:       req.Privacy,
		Accessibility: req.Accessibility,
	})
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}

	user, err := s.Users.Profile(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
