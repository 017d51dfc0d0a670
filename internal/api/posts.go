package api

import (
	"errors"
	"net/http"

	"groupme/internal/core"
	"groupme/internal/forms"
	"groupme/internal/storage"
)

// feed serves the viewer's feed: global for anonymous viewers, without blocked posts otherwise.
func (s *Server) feed(w http.ResponseWriter, r *http.Request) {
	page, err := forms.Decode[forms.Page](r.URL.Query())
	if err != nil {
		fail(w, r, err)
		return
	}

	result, err := s.Social.ListFeed(r.Context(), RequestFromContext(r.Context()).Viewer, page.Number())
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// paginate backs infinite scrolling and always pages over the global feed.
func (s *Server) paginate(w http.ResponseWriter, r *http.Request) {
	page, err := forms.Parse[forms.Page](r)
	if err != nil {
		fail(w, r, err)
		return
	}

	result, err := s.Social.ListFeed(r.Context(), core.Anonymous(), page.Number())
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) post(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}

	post, err := s.Social.Post(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (s *Server) postLikes(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}

	likes, err := s.Social.PostLikes(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

func (s *Server) postComments(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}

	comments, err := s.Social.PostComments(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// createPost accepts a multipart form with postTitle and an image under upload.
func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	req, err := forms.Parse[forms.NewPost](r)
	if err != nil {
		fail(w, r, err)
		return
	}

	file, header, err := r.FormFile("upload")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			err = core.ErrMissingImage
		}
		fail(w, r, err)
		return
	}
	defer file.Close()

	contentType, err := storage.DetectImage(file)
	if err != nil {
		fail(w, r, err)
		return
	}

	image, err := s.Storage.Upload(r.Context(), header.Filename, contentType, file)
	if err != nil {
		fail(w, r, err)
		return
	}

	post, err := s.Social.CreatePost(r.Context(), RequestFromContext(r.Context()).Viewer, req.Title, image)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := s.Social.DeletePost(r.Context(), RequestFromContext(r.Context()).Viewer, id); err != nil {
		fail(w, r, err)
		return
	}

	ok(w, "post deleted")
}
