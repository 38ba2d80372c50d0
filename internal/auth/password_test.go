package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitledger/internal/email"
	"splitledger/internal/storage"
	"splitledger/internal/storage/sqlite"
)

func newTestAuthenticator(t *testing.T) (*PasswordAuthenticator, *sqlite.SQLiteStore) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewPasswordAuthenticator(store, email.LogMailer{}), store
}

func TestRegisterAndAuthenticate(t *testing.T) {
	auth, _ := newTestAuthenticator(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.False(t, user.EmailVerified)
	assert.NotEmpty(t, user.VerificationToken)

	got, err := auth.Authenticate(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = auth.Authenticate(ctx, "alice@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Authenticate(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	auth, _ := newTestAuthenticator(t)

	_, err := auth.Register(context.Background(), "alice@example.com", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthenticator(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "alice@example.com", "another pass")
	assert.ErrorIs(t, err, storage.ErrEmailExists)
}

func TestVerifyEmail(t *testing.T) {
	auth, store := newTestAuthenticator(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)

	verified, err := auth.VerifyEmail(ctx, user.VerificationToken)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)
	assert.Empty(t, verified.VerificationToken)

	// The link is single-use.
	_, err = auth.VerifyEmail(ctx, user.VerificationToken)
	assert.ErrorIs(t, err, ErrTokenUnknown)

	got, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	auth, _ := newTestAuthenticator(t)

	_, err := auth.VerifyEmail(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrTokenUnknown)
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	auth, store := newTestAuthenticator(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)

	user.VerificationExpiresAt = time.Now().Add(-time.Hour).Unix()
	require.NoError(t, store.UpdateUser(ctx, user))

	_, err = auth.VerifyEmail(ctx, user.VerificationToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
