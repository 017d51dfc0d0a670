package core

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of them.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("authentication required")
	ErrUnauthorized    = errors.New("not allowed")
	ErrValidation      = errors.New("invalid input")
)

var (
	ErrPostNotFound  = fmt.Errorf("post %w", ErrNotFound)
	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
	ErrThemeNotFound = fmt.Errorf("theme %w", ErrNotFound)
	ErrNotLiked      = fmt.Errorf("like %w", ErrNotFound)

	ErrAlreadyLiked   = fmt.Errorf("%w: post already liked", ErrConflict)
	ErrAlreadyBlocked = fmt.Errorf("%w: post already blocked", ErrConflict)
	ErrEmailTaken     = fmt.Errorf("%w: email already registered", ErrConflict)

	ErrIdentityMismatch   = fmt.Errorf("%w: acting user does not match the session", ErrUnauthorized)
	ErrNotPostAuthor      = fmt.Errorf("%w: only the author can delete a post", ErrUnauthorized)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)

	ErrEmptyBody      = fmt.Errorf("%w: comment body is empty", ErrValidation)
	ErrCommentTooLong = fmt.Errorf("%w: comment body is longer than %d characters", ErrValidation, MaxCommentLength)
	ErrInvalidPage    = fmt.Errorf("%w: page must be a positive integer", ErrValidation)
	ErrEmptyTitle     = fmt.Errorf("%w: title is empty", ErrValidation)
	ErrMissingImage   = fmt.Errorf("%w: image is missing", ErrValidation)
	ErrNotAnImage     = fmt.Errorf("%w: upload is not an image", ErrValidation)
)

// MaxCommentLength is the longest accepted comment body, in characters.
const MaxCommentLength = 280
