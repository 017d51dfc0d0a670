package likes

import (
	"context"
	"errors"

	"groupme/internal/core"
	"groupme/internal/persistence"
)

type Repository struct {
	DB core.DB
}

// Create inserts the (user, post) pair. The primary key rejects a second like, including a racing one.
func (r *Repository) Create(ctx context.Context, userID, postID uint) error {
	err := persistence.Classify(r.DB.Model(&core.Like{}).
		WithContext(ctx).
		Create(&core.Like{UserID: userID, PostID: postID}).Error)

	switch {
	case errors.Is(err, persistence.ErrDuplicate):
		return core.ErrAlreadyLiked
	case errors.Is(err, persistence.ErrForeignKey):
		return persistence.MissingReference(ctx, r.DB, postID)
	}
	return err
}

func (r *Repository) Delete(ctx context.Context, userID, postID uint) error {
	result := r.DB.Model(&core.Like{}).
		WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&core.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.ErrNotLiked
	}
	return nil
}

func (r *Repository) ListByPost(ctx context.Context, postID uint) ([]core.Like, error) {
	likes := []core.Like{}
	err := r.DB.Model(&core.Like{}).
		WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&likes).Error
	return likes, err
}

func (r *Repository) Count(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&core.Like{}).WithContext(ctx).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
