package seen

import (
	"context"
	"errors"

	"gorm.io/gorm/clause"

	"groupme/internal/core"
	"groupme/internal/persistence"
)

type Repository struct {
	DB core.DB
}

// Mark records that the user has seen the post. Marking twice is a no-op.
func (r *Repository) Mark(ctx context.Context, userID, postID uint) error {
	err := persistence.Classify(r.DB.Model(&core.Seen{}).
		WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&core.Seen{UserID: userID, PostID: postID}).Error)
	if errors.Is(err, persistence.ErrForeignKey) {
		return persistence.MissingReference(ctx, r.DB, postID)
	}
	return err
}

func (r *Repository) Has(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&core.Seen{}).
		WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}
