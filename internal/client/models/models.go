// Package models defines the client-side data models persisted in the
// local database.
package models

import (
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/streak"
)

// User is a local account. The credential is an opaque one-way
// derivation of the password; plaintext is never stored.
type User struct {
	// Username is the primary key, immutable after creation.
	Username string

	// Credential is the derived password verifier.
	Credential []byte
	// Salt is the per-user random salt used for the derivation.
	Salt []byte

	// XP is the cumulative experience score. It never decreases outside
	// an explicit reset.
	XP int

	// Avatar is an optional image reference.
	Avatar string

	CreatedAt time.Time
}

// Task is a habit being tracked.
//
// Invariant: Streak == 0 iff LastDone is zero.
type Task struct {
	// ID is assigned by the store on creation.
	ID string

	// Owner is the username of the creating user.
	Owner string

	// Name is the user-supplied label, non-empty.
	Name string

	// Streak counts consecutive completion days ending at LastDone.
	Streak int

	// LongestStreak is the historical maximum; it never decreases.
	LongestStreak int

	// LastDone is the calendar day of the most recent completion,
	// zero if the task was never completed.
	LastDone streak.Day

	CreatedAt time.Time
}

// InviteKind distinguishes single-use from multi-use invite codes.
type InviteKind string

const (
	InviteSingle InviteKind = "single"
	InviteMulti  InviteKind = "multi"
)

// Invite is a signup gate token.
type Invite struct {
	Code      string
	Kind      InviteKind
	Uses      int
	MaxUses   int
	CreatedAt time.Time
	// ExpiresAt zero means the code never expires.
	ExpiresAt time.Time
}

// Expired reports whether the invite is past its expiry at the given instant.
func (i Invite) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && i.ExpiresAt.Before(now)
}
