package seen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"groupme/internal/core"
	"groupme/internal/persistence/dbtest"
	"groupme/internal/persistence/seen"
)

func TestRepository(t *testing.T) {
	t.Parallel()

	t.Run("mark is idempotent", func(t *testing.T) {
		t.Parallel()

		db := dbtest.New(t)
		repo := &seen.Repository{DB: db}
		author := dbtest.CreateUser(t, db, "alice")
		reader := dbtest.CreateUser(t, db, "bob")
		post := dbtest.CreatePost(t, db, author, "cat")

		has, err := repo.Has(t.Context(), reader.ID, post.ID)
		require.NoError(t, err)
		require.False(t, has)

		require.NoError(t, repo.Mark(t.Context(), reader.ID, post.ID))
		require.NoError(t, repo.Mark(t.Context(), reader.ID, post.ID))

		has, err = repo.Has(t.Context(), reader.ID, post.ID)
		require.NoError(t, err)
		require.True(t, has)

		var count int64
		require.NoError(t, db.Model(&core.Seen{}).Count(&count).Error)
		require.EqualValues(t, 1, count)
	})

	t.Run("deleted user", func(t *testing.T) {
		t.Parallel()

		db := dbtest.New(t)
		repo := &seen.Repository{DB: db}
		author := dbtest.CreateUser(t, db, "alice")
		post := dbtest.CreatePost(t, db, author, "cat")

		err := repo.Mark(t.Context(), 999, post.ID)
		require.ErrorIs(t, err, core.ErrUserNotFound)
	})

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()

		db := dbtest.New(t)
		repo := &seen.Repository{DB: db}
		reader := dbtest.CreateUser(t, db, "bob")

		require.ErrorIs(t, repo.Mark(t.Context(), reader.ID, 42), core.ErrPostNotFound)
	})
}
