package api

import (
	"net/http"

	"groupme/internal/core"
	"groupme/internal/forms"
)

// likeAck carries the like count after the change so clients can settle optimistic state.
type likeAck struct {
	ack
	LikeCount int `json:"likeCount"`
}

type commentAck struct {
	ack
	Comment *core.Comment `json:"comment"`
}

func (s *Server) like(w http.ResponseWriter, r *http.Request) {
	req, err := forms.Parse[forms.Like](r)
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := s.Social.Like(r.Context(), RequestFromContext(r.Context()).Viewer, req.UserID, req.PostID); err != nil {
		fail(w, r, err)
		return
	}

	s.likeAck(w, r, req.PostID, "like successful")
}

func (s *Server) unlike(w http.ResponseWriter, r *http.Request) {
	req, err := forms.Parse[forms.Like](r)
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := s.Social.Unlike(r.Context(), RequestFromContext(r.Context()).Viewer, req.UserID, req.PostID); err != nil {
		fail(w, r, err)
		return
	}

	s.likeAck(w, r, req.PostID, "like removed")
}

func (s *Server) likeAck(w http.ResponseWriter, r *http.Request, postID uint, message string) {
	count, err := s.Social.LikeCount(r.Context(), postID)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, likeAck{ack: ack{OK: true, Message: message}, LikeCount: count})
}

func (s *Server) comment(w http.ResponseWriter, r *http.Request) {
	req, err := forms.Parse[forms.Comment](r)
	if err != nil {
		fail(w, r, err)
		return
	}

	comment, err := s.Social.AddComment(r.Context(), RequestFromContext(r.Context()).Viewer, req.UserID, req.PostID, req.Body)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentAck{
		ack:     ack{OK: true, Message: "comment added"},
		Comment: comment,
	})
}

func (s *Server) block(w http.ResponseWriter, r *http.Request) {
	req, err := forms.Parse[forms.Block](r)
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := s.Social.BlockPost(r.Context(), RequestFromContext(r.Context()).Viewer, req.PostID); err != nil {
		fail(w, r, err)
		return
	}

	ok(w, "post blocked")
}

func (s *Server) seen(w http.ResponseWriter, r *http.Request) {
	req, err := forms.Parse[forms.Seen](r)
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := s.Social.MarkSeen(r.Context(), RequestFromContext(r.Context()).Viewer, req.PostID); err != nil {
		fail(w, r, err)
		return
	}

	ok(w, "post seen")
}

func (s *Server) blocked(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Social.BlockedPosts(r.Context(), RequestFromContext(r.Context()).Viewer)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ids)
}
