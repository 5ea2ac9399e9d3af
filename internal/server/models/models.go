// Package models defines the server-side domain entities stored in Postgres.
package models

import (
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/streak"
)

// User is an account row. PasswordHash is a bcrypt digest; Avatar holds
// the S3 object key of the uploaded picture, empty when unset.
type User struct {
	Username     string
	PasswordHash []byte
	XP           int
	Avatar       string
	CreatedAt    time.Time
}

// Task is one habit owned by a user. LastDone is the calendar day of
// the most recent completion, zero when never done.
type Task struct {
	ID            string
	Owner         string
	Name          string
	Streak        int
	LongestStreak int
	LastDone      streak.Day
	CreatedAt     time.Time
}

// InviteKind distinguishes one-shot codes from multi-use ones.
type InviteKind string

const (
	InviteSingle InviteKind = "single"
	InviteMulti  InviteKind = "multi"
)

// InviteToken gates signup. Uses counts remaining redemptions;
// a zero ExpiresAt means the token never expires.
type InviteToken struct {
	Code      string
	Kind      InviteKind
	Uses      int
	MaxUses   int
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's deadline has passed.
func (t InviteToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
