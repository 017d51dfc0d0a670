package blocks

import (
	"context"
	"errors"

	"groupme/internal/core"
	"groupme/internal/persistence"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Create(ctx context.Context, userID, postID uint) error {
	err := persistence.Classify(r.DB.Model(&core.BlockedPost{}).
		WithContext(ctx).
		Create(&core.BlockedPost{UserID: userID, PostID: postID}).Error)

	switch {
	case errors.Is(err, persistence.ErrDuplicate):
		return core.ErrAlreadyBlocked
	case errors.Is(err, persistence.ErrForeignKey):
		return persistence.MissingReference(ctx, r.DB, postID)
	}
	return err
}

// PostIDs returns the ids of every post the user blocked.
func (r *Repository) PostIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.DB.Model(&core.BlockedPost{}).
		WithContext(ctx).
		Where("user_id = ?", userID).
		Order("post_id").
		Pluck("post_id", &ids).Error
	return ids, err
}
