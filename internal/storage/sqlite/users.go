package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

const userColumns = `id, username, email, password_hash, email_verified,
	verification_token, verification_expires_at, total, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.EmailVerified,
		&user.VerificationToken,
		&user.VerificationExpiresAt,
		&user.Total,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user, assigning an ID and timestamp if unset.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", user.Email,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return fmt.Errorf("%s: %w", user.Email, storage.ErrEmailExists)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, email_verified,
			verification_token, verification_expires_at, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.EmailVerified,
		user.VerificationToken, user.VerificationExpiresAt, user.Total, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user without collections.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", id, storage.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", email, storage.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username, case-insensitively.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username <> '' AND lower(username) = lower(?)",
		username))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", username, storage.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// GetUserByVerificationToken retrieves the user holding a pending token.
func (s *SQLiteStore) GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE verification_token = ? AND verification_token <> ''",
		token))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("verification token: %w", storage.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by token: %w", err)
	}
	return user, nil
}

// UpdateUser persists changes to a user's own columns.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET username = ?, email = ?, password_hash = ?,
			email_verified = ?, verification_token = ?,
			verification_expires_at = ?, total = ?
		WHERE id = ?`,
		user.Username, user.Email, user.PasswordHash, user.EmailVerified,
		user.VerificationToken, user.VerificationExpiresAt, user.Total, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", user.ID, storage.ErrUserNotFound)
	}
	return nil
}

// DeleteUser removes a user; the schema cascades to its splits and events.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, storage.ErrUserNotFound)
	}
	return nil
}

// UserExists reports whether a user id is persisted.
func (s *SQLiteStore) UserExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return exists, nil
}

// UsernameExists reports whether a username is claimed, case-insensitively.
func (s *SQLiteStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username <> '' AND lower(username) = lower(?))",
		username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// ListUsers retrieves all users without collections.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// GetUserWithCollections retrieves a user with debitors, created events and
// each event's splits fully loaded.
func (s *SQLiteStore) GetUserWithCollections(ctx context.Context, id string) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Debitors, err = s.debitorsForUser(ctx, id)
	if err != nil {
		return nil, err
	}

	eventRows, err := s.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE creator_id = ? ORDER BY created_at", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer eventRows.Close()

	for eventRows.Next() {
		event, err := scanEvent(eventRows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		user.Events = append(user.Events, event)
	}
	if err := eventRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	for _, event := range user.Events {
		event.Splits, err = s.debitorsForEvent(ctx, event.ID)
		if err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *SQLiteStore) debitorsForUser(ctx context.Context, userID string) ([]*models.Debitor, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+debitorColumns+" FROM debitors WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get debitors: %w", err)
	}
	defer rows.Close()

	var debitors []*models.Debitor
	for rows.Next() {
		d, err := scanDebitor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debitor: %w", err)
		}
		debitors = append(debitors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debitors: %w", err)
	}
	return debitors, nil
}
