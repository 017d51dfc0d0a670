package posts_test

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"groupme/internal/core"
	"groupme/internal/persistence/dbtest"
	"groupme/internal/persistence/posts"
)

func newRepository(t *testing.T) (*posts.Repository, core.DB) {
	t.Helper()

	db := dbtest.New(t)
	return &posts.Repository{Logger: slog.New(slog.DiscardHandler), DB: db}, db
}

func seedPosts(t *testing.T, db core.DB, author *core.User, n int) []*core.Post {
	t.Helper()

	return lo.Times(n, func(i int) *core.Post {
		return dbtest.CreatePost(t, db, author, fmt.Sprintf("post-%d", i))
	})
}

func TestRepository_Feed(t *testing.T) {
	t.Parallel()

	t.Run("pages newest first", func(t *testing.T) {
		t.Parallel()

		repo, db := newRepository(t)
		author := dbtest.CreateUser(t, db, "alice")
		created := seedPosts(t, db, author, 11)

		first, err := repo.Feed(t.Context(), core.Anonymous(), 1)
		require.NoError(t, err)
		require.Len(t, first.Items, core.PageSize)
		require.EqualValues(t, 11, first.TotalCount)
		require.Equal(t, 1, first.Page)
		require.Equal(t, 2, first.LastPage())
		require.Equal(t, created[10].ID, first.Items[0].ID)

		for i := 1; i < len(first.Items); i++ {
			require.False(t, first.Items[i].CreatedAt.After(first.Items[i-1].CreatedAt))
		}

		second, err := repo.Feed(t.Context(), core.Anonymous(), 2)
		require.NoError(t, err)
		require.Len(t, second.Items, 1)
		require.Equal(t, created[0].ID, second.Items[0].ID)

		third, err := repo.Feed(t.Context(), core.Anonymous(), 3)
		require.NoError(t, err)
		require.NotNil(t, third.Items)
		require.Empty(t, third.Items)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		repo, db := newRepository(t)
		author := dbtest.CreateUser(t, db, "alice")
		seedPosts(t, db, author, 5)

		a, err := repo.Feed(t.Context(), core.Anonymous(), 1)
		require.NoError(t, err)
		b, err := repo.Feed(t.Context(), core.Anonymous(), 1)
		require.NoError(t, err)

		ids := func(p core.FeedPage) []uint {
			return lo.Map(p.Items, func(post core.Post, _ int) uint { return post.ID })
		}
		require.Equal(t, ids(a), ids(b))
	})

	t.Run("rejects non-positive pages", func(t *testing.T) {
		t.Parallel()

		repo, _ := newRepository(t)

		_, err := repo.Feed(t.Context(), core.Anonymous(), 0)
		require.ErrorIs(t, err, core.ErrInvalidPage)
		require.ErrorIs(t, err, core.ErrValidation)
	})

	t.Run("excludes posts blocked by the viewer only", func(t *testing.T) {
		t.Parallel()

		repo, db := newRepository(t)
		author := dbtest.CreateUser(t, db, "alice")
		blocker := dbtest.CreateUser(t, db, "bob")
		other := dbtest.CreateUser(t, db, "carol")
		created := seedPosts(t, db, author, 3)

		require.NoError(t, db.WithContext(t.Context()).Create(&core.BlockedPost{
			UserID: blocker.ID,
			PostID: created[1].ID,
		}).Error)

		blocked, err := repo.Feed(t.Context(), core.Authenticated(blocker.ID), 1)
		require.NoError(t, err)
		require.Len(t, blocked.Items, 2)
		require.EqualValues(t, 2, blocked.TotalCount)
		require.NotContains(t, lo.Map(blocked.Items, func(p core.Post, _ int) uint { return p.ID }), created[1].ID)

		unaffected, err := repo.Feed(t.Context(), core.Authenticated(other.ID), 1)
		require.NoError(t, err)
		require.Len(t, unaffected.Items, 3)

		anonymous, err := repo.Feed(t.Context(), core.Anonymous(), 1)
		require.NoError(t, err)
		require.EqualValues(t, 3, anonymous.TotalCount)
	})

	t.Run("carries likes and comments", func(t *testing.T) {
		t.Parallel()

		repo, db := newRepository(t)
		author := dbtest.CreateUser(t, db, "alice")
		fan := dbtest.CreateUser(t, db, "bob")
		post := dbtest.CreatePost(t, db, author, "cat")

		require.NoError(t, db.WithContext(t.Context()).Create(&core.Like{UserID: fan.ID, PostID: post.ID}).Error)
		require.NoError(t, db.WithContext(t.Context()).Create(&core.Comment{PostID: post.ID, UserID: fan.ID, Body: "first"}).Error)
		require.NoError(t, db.WithContext(t.Context()).Create(&core.Comment{PostID: post.ID, UserID: author.ID, Body: "second"}).Error)

		page, err := repo.Feed(t.Context(), core.Anonymous(), 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)

		item := page.Items[0]
		require.Equal(t, 1, item.LikeCount)
		require.Len(t, item.Comments, 2)
		require.Equal(t, "second", item.Comments[0].Body)
		require.Equal(t, "alice", item.Comments[0].User.Name)
		require.Equal(t, "alice", item.User.Name)
		require.Empty(t, item.User.Email)
	})
}

func TestRepository_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns the post", func(t *testing.T) {
		t.Parallel()

		repo, db := newRepository(t)
		author := dbtest.CreateUser(t, db, "alice")
		post := dbtest.CreatePost(t, db, author, "cat")

		got, err := repo.Get(t.Context(), post.ID)
		require.NoError(t, err)
		require.Equal(t, "cat", got.Title)
		require.Equal(t, author.ID, got.User.ID)
	})

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()

		repo, _ := newRepository(t)

		_, err := repo.Get(t.Context(), 42)
		require.ErrorIs(t, err, core.ErrPostNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	t.Parallel()

	t.Run("unknown author", func(t *testing.T) {
		t.Parallel()

		repo, _ := newRepository(t)

		err := repo.Create(t.Context(), &core.Post{Title: "t", Image: "i", UserID: 42})
		require.ErrorIs(t, err, core.ErrUserNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	t.Parallel()

	t.Run("author deletes", func(t *testing.T) {
		t.Parallel()

		repo, db := newRepository(t)
		author := dbtest.CreateUser(t, db, "alice")
		post := dbtest.CreatePost(t, db, author, "cat")

		require.NoError(t, repo.Delete(t.Context(), post.ID, author.ID))

		exists, err := repo.Exists(t.Context(), post.ID)
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("someone else", func(t *testing.T) {
		t.Parallel()

		repo, db := newRepository(t)
		author := dbtest.CreateUser(t, db, "alice")
		other := dbtest.CreateUser(t, db, "bob")
		post := dbtest.CreatePost(t, db, author, "cat")

		err := repo.Delete(t.Context(), post.ID, other.ID)
		require.ErrorIs(t, err, core.ErrNotPostAuthor)

		exists, err := repo.Exists(t.Context(), post.ID)
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()

		repo, db := newRepository(t)
		author := dbtest.CreateUser(t, db, "alice")

		err := repo.Delete(t.Context(), 42, author.ID)
		require.ErrorIs(t, err, core.ErrPostNotFound)
	})
}
