package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a registered account.
//
// Debitors and Events are exclusively owned: deleting a user deletes every
// split assigned to it and every event it created. Both collections are
// only populated on hydrated reads (see storage.Store.GetUserWithCollections);
// shallow reads leave them nil.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the unique handle, looked up case-insensitively.
	// Empty until the user claims one.
	Username string

	// Email is the user's email address (unique). Used for login and
	// verification mail.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// EmailVerified reports whether the verification link was followed.
	EmailVerified bool

	// VerificationToken is the pending email verification token, empty
	// once verified.
	VerificationToken string

	// VerificationExpiresAt is the Unix timestamp the token stops being
	// accepted, zero when no token is pending.
	VerificationExpiresAt int64

	// Total is a cached advisory balance (owed-to-you minus you-owe).
	// It is refreshed on balance reads and never authoritative.
	Total decimal.Decimal

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// Debitors are the splits assigned to this user across all events.
	Debitors []*Debitor

	// Events are the events this user created.
	Events []*Event
}

// NewUser creates a user with a fresh ID and creation timestamp.
// The password must already be hashed by the caller.
func NewUser(email, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}

// AddDebitor links d to this user, keeping both sides consistent.
func (u *User) AddDebitor(d *Debitor) {
	u.Debitors = append(u.Debitors, d)
	d.UserID = u.ID
}

// RemoveDebitor unlinks d from this user.
func (u *User) RemoveDebitor(d *Debitor) {
	for i, cur := range u.Debitors {
		if cur == d {
			u.Debitors = append(u.Debitors[:i], u.Debitors[i+1:]...)
			break
		}
	}
	d.UserID = ""
}

// AddEvent links e to this user as its creator.
func (u *User) AddEvent(e *Event) {
	u.Events = append(u.Events, e)
	e.CreatorID = u.ID
}

// RemoveEvent unlinks e from this user.
func (u *User) RemoveEvent(e *Event) {
	for i, cur := range u.Events {
		if cur == e {
			u.Events = append(u.Events[:i], u.Events[i+1:]...)
			break
		}
	}
	e.CreatorID = ""
}
