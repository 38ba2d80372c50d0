package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"splitledger/internal/ledger"
	"splitledger/internal/models"
	"splitledger/internal/storage"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._]+$`)

// Balances is the pair of aggregate amounts for one user.
type Balances struct {
	YouOwe    decimal.Decimal
	OwedToYou decimal.Decimal
}

// UserService covers user profile operations and balance reads.
type UserService struct {
	store storage.Store
}

// NewUserService creates a UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// CreateUser persists a new user.
func (s *UserService) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	slog.Info("user created", "user_id", u.ID)
	return u, nil
}

// GetUser retrieves a user with its full entity graph (debitors, created
// events and their splits) loaded.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUserWithCollections(ctx, id)
}

// GetAllUsers retrieves all users without collections.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}

// UpdateUser persists changes to a user's own columns.
func (s *UserService) UpdateUser(ctx context.Context, u *models.User) (*models.User, error) {
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes a user and everything it owns.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	slog.Info("user deleted", "user_id", id)
	return nil
}

// ExistsByID reports whether a user id is persisted.
func (s *UserService) ExistsByID(ctx context.Context, id string) (bool, error) {
	return s.store.UserExists(ctx, id)
}

// FindByEmail retrieves a user by email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.store.GetUserByEmail(ctx, email)
}

// FindByUsername retrieves a user by username, case-insensitively.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.store.GetUserByUsername(ctx, username)
}

// SetUsernameForEmail claims a username for the account registered under
// email. The username is trimmed and must be at least 3 characters of
// letters, digits, dots or underscores; claiming a taken name fails with
// storage.ErrUsernameTaken.
func (s *UserService) SetUsernameForEmail(ctx context.Context, email, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	taken, err := s.store.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%s: %w", username, storage.ErrUsernameTaken)
	}

	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	u.Username = username
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	slog.Info("username set", "user_id", u.ID, "username", username)
	return u, nil
}

// GetTransactions retrieves the user's payment history, both sides, newest
// first.
func (s *UserService) GetTransactions(ctx context.Context, userID string) ([]*models.Transaction, error) {
	return s.store.ListTransactionsForUser(ctx, userID)
}

// GetBalances computes the user's you-owe and owed-to-you totals over the
// hydrated entity graph and refreshes the advisory cached total.
func (s *UserService) GetBalances(ctx context.Context, userID string) (*Balances, error) {
	u, err := s.store.GetUserWithCollections(ctx, userID)
	if err != nil {
		return nil, err
	}

	b := &Balances{
		YouOwe:    ledger.YouOwe(u),
		OwedToYou: ledger.OwedToYou(u),
	}

	// Cache only; the computed values stay authoritative.
	u.Total = b.OwedToYou.Sub(b.YouOwe)
	if err := s.store.UpdateUser(ctx, u); err != nil {
		slog.Warn("failed to refresh cached balance", "user_id", userID, "error", err)
	}
	return b, nil
}
