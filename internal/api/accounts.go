package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"groupme/internal/auth"
	"groupme/internal/core"
	"groupme/internal/forms"
)

var errAlreadySignedIn = fmt.Errorf("%w: already signed in", core.ErrConflict)

func (s *Server) join(w http.ResponseWriter, r *http.Request) {
	req, err := forms.Parse[forms.Join](r)
	if err != nil {
		fail(w, r, err)
		return
	}

	user, err := s.Users.Create(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := s.startSession(w, user.ID); err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ack{OK: true, Message: "welcome " + user.Name, RedirectTo: safeRedirect(req.RedirectTo)})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	req, err := forms.Parse[forms.Login](r)
	if err != nil {
		fail(w, r, err)
		return
	}

	user, err := s.Users.VerifyLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := s.startSession(w, user.ID); err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ack{OK: true, Message: "welcome back " + user.Name, RedirectTo: safeRedirect(req.RedirectTo)})
}

func (s *Server) logout(w http.ResponseWriter, _ *http.Request) {
	clearSession(w)
	writeJSON(w, http.StatusOK, ack{OK: true, Message: "signed out", RedirectTo: "/"})
}

// me returns the signed-in user's own account.
func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	user, err := s.Users.Get(r.Context(), RequestFromContext(r.Context()).Viewer.UserID)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// deleteAccount removes the signed-in user with everything they own and ends the session.
func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	user, err := s.Users.Get(r.Context(), RequestFromContext(r.Context()).Viewer.UserID)
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := s.Users.DeleteByEmail(r.Context(), user.Email); err != nil {
		fail(w, r, err)
		return
	}

	clearSession(w)
	writeJSON(w, http.StatusOK, ack{OK: true, Message: "account deleted", RedirectTo: "/"})
}

func clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) startSession(w http.ResponseWriter, userID uint) error {
	token, err := s.Sessions.Issue(userID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.Sessions.TTL()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// safeRedirect only allows local paths, falling back to the root.
func safeRedirect(to string) string {
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		return "/"
	}
	return to
}
