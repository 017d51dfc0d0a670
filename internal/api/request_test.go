package api_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"groupme/internal/api"
	"groupme/internal/core"
)

func TestRequestFromContext(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)

	req := api.RequestFromContext(r.Context())
	require.False(t, req.Viewer.IsAuthenticated())
	require.Equal(t, slog.Default(), req.Logger)

	_, err := req.Theme()
	require.ErrorIs(t, err, core.ErrThemeNotFound)
}

type countingThemes struct {
	core.ThemeRepository

	calls int
}

func (c *countingThemes) ForViewer(_ context.Context, viewer core.Viewer) (*core.Theme, error) {
	c.calls++
	return &core.Theme{Name: "viewer-" + strconv.FormatUint(uint64(viewer.UserID), 10)}, nil
}

func TestRequest_Theme(t *testing.T) {
	t.Parallel()

	themes := &countingThemes{}
	req := api.NewRequest(t.Context(), core.Authenticated(3), slog.New(slog.DiscardHandler), themes)

	for range 3 {
		theme, err := req.Theme()
		require.NoError(t, err)
		require.Equal(t, "viewer-3", theme.Name)
	}
	require.Equal(t, 1, themes.calls)

	other := api.NewRequest(t.Context(), core.Anonymous(), slog.New(slog.DiscardHandler), themes)
	theme, err := other.Theme()
	require.NoError(t, err)
	require.Equal(t, "viewer-0", theme.Name)
	require.Equal(t, 2, themes.calls)
}
