package comments

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"groupme/internal/core"
	"groupme/internal/persistence"
)

type Repository struct {
	DB core.DB
}

// Create inserts the comment. A post or author deleted since the caller checked surfaces as ErrPostNotFound
// or ErrUserNotFound.
func (r *Repository) Create(ctx context.Context, comment *core.Comment) error {
	err := persistence.Classify(r.DB.Model(&core.Comment{}).WithContext(ctx).Create(comment).Error)
	if errors.Is(err, persistence.ErrForeignKey) {
		return persistence.MissingReference(ctx, r.DB, comment.PostID)
	}
	return err
}

// ListByPost returns the comments of a post, newest first.
func (r *Repository) ListByPost(ctx context.Context, postID uint) ([]core.Comment, error) {
	comments := []core.Comment{}
	err := r.DB.Model(&core.Comment{}).
		WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar")
		}).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	return comments, err
}
