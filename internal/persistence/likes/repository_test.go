package likes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"groupme/internal/core"
	"groupme/internal/persistence/dbtest"
	"groupme/internal/persistence/likes"
)

func TestRepository(t *testing.T) {
	t.Parallel()

	t.Run("like twice keeps one row", func(t *testing.T) {
		t.Parallel()

		db := dbtest.New(t)
		repo := &likes.Repository{DB: db}
		author := dbtest.CreateUser(t, db, "alice")
		fan := dbtest.CreateUser(t, db, "bob")
		post := dbtest.CreatePost(t, db, author, "cat")

		require.NoError(t, repo.Create(t.Context(), fan.ID, post.ID))

		err := repo.Create(t.Context(), fan.ID, post.ID)
		require.ErrorIs(t, err, core.ErrAlreadyLiked)
		require.ErrorIs(t, err, core.ErrConflict)

		count, err := repo.Count(t.Context(), post.ID)
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
	})

	t.Run("like a missing post", func(t *testing.T) {
		t.Parallel()

		db := dbtest.New(t)
		repo := &likes.Repository{DB: db}
		fan := dbtest.CreateUser(t, db, "bob")

		err := repo.Create(t.Context(), fan.ID, 42)
		require.ErrorIs(t, err, core.ErrPostNotFound)
	})

	t.Run("like as a deleted user", func(t *testing.T) {
		t.Parallel()

		db := dbtest.New(t)
		repo := &likes.Repository{DB: db}
		author := dbtest.CreateUser(t, db, "alice")
		post := dbtest.CreatePost(t, db, author, "cat")

		err := repo.Create(t.Context(), 999, post.ID)
		require.ErrorIs(t, err, core.ErrUserNotFound)
		require.NotErrorIs(t, err, core.ErrPostNotFound)
	})

	t.Run("unlike", func(t *testing.T) {
		t.Parallel()

		db := dbtest.New(t)
		repo := &likes.Repository{DB: db}
		author := dbtest.CreateUser(t, db, "alice")
		fan := dbtest.CreateUser(t, db, "bob")
		post := dbtest.CreatePost(t, db, author, "cat")

		require.NoError(t, repo.Create(t.Context(), fan.ID, post.ID))
		require.NoError(t, repo.Delete(t.Context(), fan.ID, post.ID))

		count, err := repo.Count(t.Context(), post.ID)
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("unlike without a like", func(t *testing.T) {
		t.Parallel()

		db := dbtest.New(t)
		repo := &likes.Repository{DB: db}
		author := dbtest.CreateUser(t, db, "alice")
		fan := dbtest.CreateUser(t, db, "bob")
		other := dbtest.CreateUser(t, db, "carol")
		post := dbtest.CreatePost(t, db, author, "cat")
		require.NoError(t, repo.Create(t.Context(), other.ID, post.ID))

		err := repo.Delete(t.Context(), fan.ID, post.ID)
		require.ErrorIs(t, err, core.ErrNotLiked)

		list, err := repo.ListByPost(t.Context(), post.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, other.ID, list[0].UserID)
	})
}
