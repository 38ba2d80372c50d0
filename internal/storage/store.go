// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"splitledger/internal/models"
)

// Store is the persistence gateway for the ledger. Implementations assign
// ids and timestamps on first save, cascade deletes from users and events
// to their owned splits, and run every multi-step write inside a single
// transaction so callers never observe a partially attached split.
//
// Reads state explicitly whether they hydrate child collections; there is
// no lazy loading.
type Store interface {
	// CreateUser persists a new user. Returns ErrEmailExists if the email
	// is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user without its collections.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserWithCollections retrieves a user with its debitors, created
	// events, and each event's splits fully loaded. This is the graph the
	// balance computations run over.
	GetUserWithCollections(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email, without collections.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByUsername retrieves a user by username, case-insensitively.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByVerificationToken retrieves the user holding the given
	// pending email verification token.
	GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error)

	// UpdateUser persists changes to a user's own columns. Collections are
	// managed through the event and debitor operations.
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser removes a user and cascades to every split and event it
	// owns.
	DeleteUser(ctx context.Context, id string) error

	// UserExists reports whether a user id is persisted.
	UserExists(ctx context.Context, id string) (bool, error)

	// UsernameExists reports whether a username is claimed,
	// case-insensitively.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// ListUsers retrieves all users without collections.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// SaveEvent upserts an event and atomically replaces its persisted
	// split set with event.Splits: new splits are inserted, changed ones
	// updated, and splits no longer referenced are removed.
	SaveEvent(ctx context.Context, event *models.Event) error

	// GetEventByID retrieves an event with its splits loaded.
	GetEventByID(ctx context.Context, id string) (*models.Event, error)

	// ListEventsForUser retrieves every distinct event that has at least
	// one split assigned to the user (participant view).
	ListEventsForUser(ctx context.Context, userID string) ([]*models.Event, error)

	// DeleteEvent removes an event and cascades to its splits.
	DeleteEvent(ctx context.Context, id string) error

	// EventExists reports whether an event id is persisted.
	EventExists(ctx context.Context, id string) (bool, error)

	// GetDebitorByID retrieves a single split.
	GetDebitorByID(ctx context.Context, id string) (*models.Debitor, error)

	// SaveDebitor upserts a single split. The split must reference a
	// persisted event and user.
	SaveDebitor(ctx context.Context, d *models.Debitor) error

	// DeleteDebitor removes a single split.
	DeleteDebitor(ctx context.Context, id string) error

	// CreateTransaction persists a payment record.
	CreateTransaction(ctx context.Context, txn *models.Transaction) error

	// SavePayment upserts the split and inserts its payment record
	// atomically: either both are durably visible or neither is.
	SavePayment(ctx context.Context, d *models.Debitor, txn *models.Transaction) error

	// ListTransactionsForUser retrieves payments where the user is either
	// side, newest first.
	ListTransactionsForUser(ctx context.Context, userID string) ([]*models.Transaction, error)

	// Close releases any resources held by the store.
	Close() error
}
