package posts

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"groupme/internal/core"
	"groupme/internal/persistence"
)

type Repository struct {
	Logger *slog.Logger
	DB     core.DB
}

func (r *Repository) Init(_ context.Context) error {
	r.Logger = r.Logger.With("component", "posts.Repository")
	return nil
}

func (r *Repository) Create(ctx context.Context, post *core.Post) error {
	err := persistence.Classify(r.DB.Model(&core.Post{}).WithContext(ctx).Create(post).Error)
	if errors.Is(err, persistence.ErrForeignKey) {
		return core.ErrUserNotFound
	}
	return err
}

// Get returns the post with its author, likes and newest-first comments.
func (r *Repository) Get(ctx context.Context, id uint) (*core.Post, error) {
	var post core.Post

	err := r.DB.Model(&core.Post{}).
		WithContext(ctx).
		Scopes(withCard).
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrPostNotFound
		}
		return nil, err
	}

	post.LikeCount = len(post.Likes)

	return &post, nil
}

func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&core.Post{}).WithContext(ctx).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Feed returns one page of posts, newest first. Authenticated viewers never see posts they blocked,
// and their total count is computed over the same filtered set.
func (r *Repository) Feed(ctx context.Context, viewer core.Viewer, page int) (core.FeedPage, error) {
	if page < 1 {
		return core.FeedPage{}, core.ErrInvalidPage
	}

	visible := func(db *gorm.DB) *gorm.DB {
		if !viewer.IsAuthenticated() {
			return db
		}
		blocked := r.DB.Model(&core.BlockedPost{}).
			WithContext(ctx).
			Select("post_id").
			Where("user_id = ?", viewer.UserID)
		return db.Where("posts.id NOT IN (?)", blocked)
	}

	var total int64
	err := r.DB.Model(&core.Post{}).
		WithContext(ctx).
		Scopes(visible).
		Count(&total).Error
	if err != nil {
		return core.FeedPage{}, err
	}

	items := []core.Post{}
	err = r.DB.Model(&core.Post{}).
		WithContext(ctx).
		Scopes(visible, withCard).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Offset((page - 1) * core.PageSize).
		Limit(core.PageSize).
		Find(&items).Error
	if err != nil {
		return core.FeedPage{}, err
	}

	for i := range items {
		items[i].LikeCount = len(items[i].Likes)
	}

	return core.FeedPage{
		Items:      items,
		Page:       page,
		TotalCount: total,
	}, nil
}

// Delete removes the post only when userID is its author.
func (r *Repository) Delete(ctx context.Context, id, userID uint) error {
	result := r.DB.Model(&core.Post{}).
		WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&core.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	exists, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return core.ErrNotPostAuthor
	}
	return core.ErrPostNotFound
}

// withCard preloads everything a feed card renders.
func withCard(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", publicAuthor).
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC").Order("comments.id DESC")
		}).
		Preload("Comments.User", publicAuthor)
}

func publicAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "avatar")
}
