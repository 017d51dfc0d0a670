package core

import (
	"fmt"
	"time"
)

type EventType string

const (
	EventPostCreated    EventType = "post.created"
	EventPostDeleted    EventType = "post.deleted"
	EventPostBlocked    EventType = "post.blocked"
	EventLikeCreated    EventType = "like.created"
	EventLikeDeleted    EventType = "like.deleted"
	EventCommentCreated EventType = "comment.created"
)

// Event describes a completed write.
type Event struct {
	Type      EventType `json:"$type"`
	UserID    uint      `json:"userId"`
	PostID    uint      `json:"postId"`
	CommentID uint      `json:"commentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewEvent(t EventType, userID, postID uint) Event {
	return Event{
		Type:      t,
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}
}

// ID is stable for a given write so redeliveries deduplicate.
func (e Event) ID() string {
	return fmt.Sprintf("%s-%d-%d-%d-%d", e.Type, e.UserID, e.PostID, e.CommentID, e.CreatedAt.UnixNano())
}
