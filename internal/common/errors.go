// Package common defines shared constants and sentinel errors used across
// client and server layers of Streakkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Invite-token lifecycle errors.
	ErrInviteInvalid   = errors.New("invite token invalid")
	ErrInviteExpired   = errors.New("invite token expired")
	ErrInviteExhausted = errors.New("invite token exhausted")
)
