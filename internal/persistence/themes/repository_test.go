package themes_test

import (
	"log/slog"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"groupme/internal/core"
	"groupme/internal/persistence/dbtest"
	"groupme/internal/persistence/themes"
)

func newRepository(t *testing.T) (*themes.Repository, core.DB) {
	t.Helper()

	db := dbtest.New(t)
	repo := &themes.Repository{Logger: slog.New(slog.DiscardHandler), DB: db}
	require.NoError(t, repo.Init(t.Context()))
	return repo, db
}

func TestRepository_Default(t *testing.T) {
	t.Parallel()

	repo, _ := newRepository(t)

	first, err := repo.Default(t.Context())
	require.NoError(t, err)
	require.Equal(t, core.DefaultThemeName, first.Name)
	require.Equal(t, "#59A19F", first.Accent)

	second, err := repo.Default(t.Context())
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestRepository_ForViewer(t *testing.T) {
	t.Parallel()

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		repo, _ := newRepository(t)

		theme, err := repo.ForViewer(t.Context(), core.Anonymous())
		require.NoError(t, err)
		require.Equal(t, core.DefaultThemeName, theme.Name)
	})

	t.Run("user settings", func(t *testing.T) {
		t.Parallel()

		repo, db := newRepository(t)
		require.NoError(t, repo.Populate(t.Context()))
		user := dbtest.CreateUser(t, db, "alice")

		list, err := repo.List(t.Context())
		require.NoError(t, err)
		ruby, ok := lo.Find(list, func(theme core.Theme) bool { return theme.Name == "ruby" })
		require.True(t, ok)

		require.NoError(t, db.Model(&core.Settings{}).
			Where("user_id = ?", user.ID).
			Update("theme_id", ruby.ID).Error)

		theme, err := repo.ForViewer(t.Context(), core.Authenticated(user.ID))
		require.NoError(t, err)
		require.Equal(t, "ruby", theme.Name)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		repo, _ := newRepository(t)

		theme, err := repo.ForViewer(t.Context(), core.Authenticated(42))
		require.NoError(t, err)
		require.Equal(t, core.DefaultThemeName, theme.Name)
	})
}

func TestRepository_Populate(t *testing.T) {
	t.Parallel()

	repo, _ := newRepository(t)

	require.NoError(t, repo.Populate(t.Context()))
	require.NoError(t, repo.Populate(t.Context()))

	list, err := repo.List(t.Context())
	require.NoError(t, err)

	names := lo.Map(list, func(theme core.Theme, _ int) string { return theme.Name })
	require.ElementsMatch(t, []string{"default", "purple", "azure", "jasmine", "ruby", "dark"}, names)
}
