package social

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"groupme/internal/core"
)

var mutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "groupme_mutations_total",
	Help: "Mutations by operation and result.",
}, []string{"operation", "result"})

// Service implements the feed and the post, like, comment and block operations on behalf of a viewer.
type Service struct {
	Logger *slog.Logger

	Posts    core.PostRepository
	Likes    core.LikeRepository
	Comments core.CommentRepository
	Blocks   core.BlockRepository
	Seen     core.SeenRepository
	Events   core.EventPublisher
}

func (s *Service) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "social.Service")
	return nil
}

// ListFeed returns one feed page. Items carry the viewer's seen markers when the viewer is signed in.
func (s *Service) ListFeed(ctx context.Context, viewer core.Viewer, page int) (core.FeedPage, error) {
	feed, err := s.Posts.Feed(ctx, viewer, page)
	if err != nil || !viewer.IsAuthenticated() {
		return feed, err
	}

	for i := range feed.Items {
		seen, err := s.Seen.Has(ctx, viewer.UserID, feed.Items[i].ID)
		if err != nil {
			return core.FeedPage{}, err
		}
		feed.Items[i].SeenByViewer = seen
	}
	return feed, nil
}

func (s *Service) Post(ctx context.Context, id uint) (*core.Post, error) {
	return s.Posts.Get(ctx, id)
}

func (s *Service) PostLikes(ctx context.Context, postID uint) ([]core.Like, error) {
	if err := s.exists(ctx, postID); err != nil {
		return nil, err
	}
	return s.Likes.ListByPost(ctx, postID)
}

// LikeCount is the current number of likes on a post.
func (s *Service) LikeCount(ctx context.Context, postID uint) (int, error) {
	count, err := s.Likes.Count(ctx, postID)
	return int(count), err
}

// PostComments lists the comments of a post, newest first.
func (s *Service) PostComments(ctx context.Context, postID uint) ([]core.Comment, error) {
	if err := s.exists(ctx, postID); err != nil {
		return nil, err
	}
	return s.Comments.ListByPost(ctx, postID)
}

// BlockedPosts lists the ids of the posts the viewer has hidden.
func (s *Service) BlockedPosts(ctx context.Context, viewer core.Viewer) ([]uint, error) {
	if err := s.authenticated(viewer); err != nil {
		return nil, err
	}
	return s.Blocks.PostIDs(ctx, viewer.UserID)
}

func (s *Service) CreatePost(ctx context.Context, viewer core.Viewer, title, image string) (*core.Post, error) {
	post, err := s.createPost(ctx, viewer, title, image)
	s.record(ctx, "create_post", err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, core.NewEvent(core.EventPostCreated, viewer.UserID, post.ID))
	return post, nil
}

func (s *Service) createPost(ctx context.Context, viewer core.Viewer, title, image string) (*core.Post, error) {
	if !viewer.IsAuthenticated() {
		return nil, core.ErrUnauthenticated
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, core.ErrEmptyTitle
	}
	if image == "" {
		return nil, core.ErrMissingImage
	}

	post := &core.Post{
		Title:  title,
		Image:  image,
		UserID: viewer.UserID,
	}
	if err := s.Posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) DeletePost(ctx context.Context, viewer core.Viewer, postID uint) error {
	err := s.authenticated(viewer)
	if err == nil {
		err = s.Posts.Delete(ctx, postID, viewer.UserID)
	}

	s.record(ctx, "delete_post", err)
	if err != nil {
		return err
	}

	s.publish(ctx, core.NewEvent(core.EventPostDeleted, viewer.UserID, postID))
	return nil
}

// Like records that userID likes postID. The viewer must be userID.
func (s *Service) Like(ctx context.Context, viewer core.Viewer, userID, postID uint) error {
	err := s.actingAs(viewer, userID)
	if err == nil {
		err = s.Likes.Create(ctx, userID, postID)
	}

	s.record(ctx, "like", err)
	if err != nil {
		return err
	}

	s.publish(ctx, core.NewEvent(core.EventLikeCreated, userID, postID))
	return nil
}

func (s *Service) Unlike(ctx context.Context, viewer core.Viewer, userID, postID uint) error {
	err := s.actingAs(viewer, userID)
	if err == nil {
		err = s.Likes.Delete(ctx, userID, postID)
	}

	s.record(ctx, "unlike", err)
	if err != nil {
		return err
	}

	s.publish(ctx, core.NewEvent(core.EventLikeDeleted, userID, postID))
	return nil
}

// AddComment appends a comment written by userID. A zero userID means the viewer.
func (s *Service) AddComment(ctx context.Context, viewer core.Viewer, userID, postID uint, body string) (*core.Comment, error) {
	if userID == 0 {
		userID = viewer.UserID
	}

	comment, err := s.addComment(ctx, viewer, userID, postID, body)
	s.record(ctx, "comment", err)
	if err != nil {
		return nil, err
	}

	event := core.NewEvent(core.EventCommentCreated, userID, postID)
	event.CommentID = comment.ID
	s.publish(ctx, event)

	return comment, nil
}

func (s *Service) addComment(ctx context.Context, viewer core.Viewer, userID, postID uint, body string) (*core.Comment, error) {
	if err := s.actingAs(viewer, userID); err != nil {
		return nil, err
	}

	body, err := ValidateComment(body)
	if err != nil {
		return nil, err
	}

	if err := s.exists(ctx, postID); err != nil {
		return nil, err
	}

	comment := &core.Comment{
		PostID: postID,
		UserID: userID,
		Body:   body,
	}
	if err := s.Comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) BlockPost(ctx context.Context, viewer core.Viewer, postID uint) error {
	err := s.authenticated(viewer)
	if err == nil {
		err = s.Blocks.Create(ctx, viewer.UserID, postID)
	}

	s.record(ctx, "block", err)
	if err != nil {
		return err
	}

	s.publish(ctx, core.NewEvent(core.EventPostBlocked, viewer.UserID, postID))
	return nil
}

func (s *Service) MarkSeen(ctx context.Context, viewer core.Viewer, postID uint) error {
	err := s.authenticated(viewer)
	if err == nil {
		err = s.Seen.Mark(ctx, viewer.UserID, postID)
	}

	s.record(ctx, "seen", err)
	return err
}

// ValidateComment trims the body and enforces the length limits.
func ValidateComment(body string) (string, error) {
	body = strings.TrimSpace(body)

	switch {
	case body == "":
		return "", core.ErrEmptyBody
	case utf8.RuneCountInString(body) > core.MaxCommentLength:
		return "", core.ErrCommentTooLong
	}
	return body, nil
}

func (s *Service) exists(ctx context.Context, postID uint) error {
	exists, err := s.Posts.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return core.ErrPostNotFound
	}
	return nil
}

func (s *Service) authenticated(viewer core.Viewer) error {
	if !viewer.IsAuthenticated() {
		return core.ErrUnauthenticated
	}
	return nil
}

// actingAs rejects a mutation on behalf of anyone but the viewer.
func (s *Service) actingAs(viewer core.Viewer, userID uint) error {
	if err := s.authenticated(viewer); err != nil {
		return err
	}
	if !viewer.Is(userID) {
		return core.ErrIdentityMismatch
	}
	return nil
}

func (s *Service) publish(ctx context.Context, event core.Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, event); err != nil {
		s.Logger.Warn("failed to publish event", "type", event.Type, "error", err)
	}
}

func (s *Service) record(ctx context.Context, operation string, err error) {
	mutations.WithLabelValues(operation, result(err)).Inc()

	if err != nil && result(err) == "error" {
		s.Logger.ErrorContext(ctx, "mutation failed", "operation", operation, "error", err)
	}
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, core.ErrNotFound):
		return "not_found"
	case errors.Is(err, core.ErrConflict):
		return "conflict"
	case errors.Is(err, core.ErrUnauthenticated), errors.Is(err, core.ErrUnauthorized):
		return "denied"
	case errors.Is(err, core.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
