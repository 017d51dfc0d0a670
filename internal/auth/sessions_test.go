package auth_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"groupme/internal/auth"
	"groupme/internal/config"
	"groupme/internal/core"
)

func newSessions(t *testing.T, secret string, ttl time.Duration) *auth.Sessions {
	t.Helper()

	s := &auth.Sessions{
		Logger: slog.New(slog.DiscardHandler),
		Config: &config.Config{SessionSecret: secret, SessionTTL: ttl},
	}
	require.NoError(t, s.Init(t.Context()))
	return s
}

func TestSessions(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		s := newSessions(t, "secret", time.Hour)

		token, err := s.Issue(7)
		require.NoError(t, err)

		viewer, err := s.Parse(token)
		require.NoError(t, err)
		require.True(t, viewer.Is(7))
	})

	t.Run("default ttl", func(t *testing.T) {
		t.Parallel()

		s := newSessions(t, "secret", 0)
		require.Equal(t, 7*24*time.Hour, s.TTL())
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()

		token, err := newSessions(t, "secret", time.Hour).Issue(7)
		require.NoError(t, err)

		viewer, err := newSessions(t, "other", time.Hour).Parse(token)
		require.ErrorIs(t, err, auth.ErrInvalidSession)
		require.ErrorIs(t, err, core.ErrUnauthenticated)
		require.False(t, viewer.IsAuthenticated())
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:    "groupme",
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = newSessions(t, "secret", time.Hour).Parse(token)
		require.ErrorIs(t, err, auth.ErrInvalidSession)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		_, err := newSessions(t, "secret", time.Hour).Parse("not-a-token")
		require.ErrorIs(t, err, auth.ErrInvalidSession)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Parallel()

		s := &auth.Sessions{
			Logger: slog.New(slog.DiscardHandler),
			Config: &config.Config{},
		}
		require.ErrorIs(t, s.Init(t.Context()), auth.ErrNoSessionSecret)
	})
}

func TestPassword(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse", hash)

	require.True(t, auth.ComparePassword(hash, "correct horse"))
	require.False(t, auth.ComparePassword(hash, "battery staple"))
}
