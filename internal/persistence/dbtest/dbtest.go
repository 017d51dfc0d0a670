// Package dbtest provides an in-memory sqlite database with the full schema for repository and service tests.
package dbtest

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"groupme/internal/core"
	"groupme/internal/persistence"
)

var counter atomic.Int64

// New returns a fresh, isolated database. It is closed when the test ends.
func New(t *testing.T) *persistence.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:groupme_%d?mode=memory&cache=shared&_foreign_keys=on", counter.Add(1))

	db, err := persistence.Open(sqlite.Open(dsn))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(core.Models()...))

	t.Cleanup(func() {
		sqlDB.Close() //nolint:errcheck
	})

	return db
}

func CreateUser(t *testing.T, db core.DB, name string) *core.User {
	t.Helper()

	theme := core.DefaultTheme()
	err := db.WithContext(context.Background()).
		Where(core.Theme{Name: theme.Name}).
		FirstOrCreate(&theme).Error
	require.NoError(t, err)

	user := &core.User{
		Email: name + "@example.com",
		Name:  name,
		Settings: &core.Settings{
			ThemeID:       theme.ID,
			Notifications: true,
			Privacy:       "none",
			Accessibility: "none",
		},
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)

	return user
}

func CreatePost(t *testing.T, db core.DB, author *core.User, title string) *core.Post {
	t.Helper()

	post := &core.Post{
		Title:  title,
		Image:  "https://images.example.com/" + title + ".png",
		UserID: author.ID,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(post).Error)

	return post
}
