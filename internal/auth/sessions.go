package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"groupme/internal/config"
	"groupme/internal/core"
)

const (
	issuer = "groupme"

	// CookieName is the session cookie set on login.
	CookieName = "__session"

	defaultTTL = 7 * 24 * time.Hour
)

var (
	ErrNoSessionSecret = errors.New("no session secret provided")
	ErrInvalidSession  = fmt.Errorf("%w: invalid session", core.ErrUnauthenticated)
)

// Sessions issues and verifies signed session tokens carrying the user id.
type Sessions struct {
	Logger *slog.Logger
	Config *config.Config

	secret []byte
	ttl    time.Duration
}

func (s *Sessions) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "auth.Sessions")

	if s.Config.SessionSecret == "" {
		return ErrNoSessionSecret
	}

	s.secret = []byte(s.Config.SessionSecret)
	s.ttl = s.Config.SessionTTL
	if s.ttl <= 0 {
		s.ttl = defaultTTL
	}

	return nil
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

func (s *Sessions) Issue(userID uint) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Parse verifies the token and returns the viewer it was issued for.
func (s *Sessions) Parse(token string) (core.Viewer, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return core.Anonymous(), fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return core.Anonymous(), ErrInvalidSession
	}

	return core.Authenticated(uint(id)), nil
}
