package core

import (
	"context"
	"database/sql"
	"io"

	"gorm.io/gorm"
)

type DB interface {
	Model(a any) *gorm.DB
	WithContext(ctx context.Context) *gorm.DB
	DB() (*sql.DB, error)
	EstimatedCount(ctx context.Context, tableName string) (int64, error)
	HealthCheck(ctx context.Context) error
}

type Migrator interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
}

type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	Get(ctx context.Context, id uint) (*Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Feed(ctx context.Context, viewer Viewer, page int) (FeedPage, error)
	Delete(ctx context.Context, id, userID uint) error
}

type LikeRepository interface {
	Create(ctx context.Context, userID, postID uint) error
	Delete(ctx context.Context, userID, postID uint) error
	ListByPost(ctx context.Context, postID uint) ([]Like, error)
	Count(ctx context.Context, postID uint) (int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	ListByPost(ctx context.Context, postID uint) ([]Comment, error)
}

type BlockRepository interface {
	Create(ctx context.Context, userID, postID uint) error
	PostIDs(ctx context.Context, userID uint) ([]uint, error)
}

type SeenRepository interface {
	Mark(ctx context.Context, userID, postID uint) error
	Has(ctx context.Context, userID, postID uint) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, email, password, name string) (*User, error)
	Get(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Profile(ctx context.Context, id uint) (*User, error)
	DeleteByEmail(ctx context.Context, email string) error
	VerifyLogin(ctx context.Context, email, password string) (*User, error)
	Settings(ctx context.Context, id uint) (*User, []Theme, error)
	Update(ctx context.Context, id uint, update UserUpdate) (*User, error)
}

type ThemeRepository interface {
	ForViewer(ctx context.Context, viewer Viewer) (*Theme, error)
	Default(ctx context.Context) (*Theme, error)
	Populate(ctx context.Context) error
	List(ctx context.Context) ([]Theme, error)
}

// HealthChecker is implemented by services whose dependencies can become unreachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EventPublisher announces completed writes to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// ObjectStorage stores uploaded images and returns their public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}
