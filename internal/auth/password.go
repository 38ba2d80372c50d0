package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"splitledger/internal/email"
	"splitledger/internal/models"
	"splitledger/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrTokenExpired       = errors.New("verification token expired")
	ErrTokenUnknown       = errors.New("unknown verification token")
)

// verificationTTL is how long an emailed verification link stays valid.
const verificationTTL = 24 * time.Hour

// PasswordAuthenticator implements password-based authentication using
// bcrypt, with emailed verification tokens for new accounts.
type PasswordAuthenticator struct {
	store  storage.Store
	mailer email.Mailer
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(store storage.Store, mailer email.Mailer) *PasswordAuthenticator {
	return &PasswordAuthenticator{store: store, mailer: mailer}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new user account with a hashed password and sends the
// verification mail. The account works before verification; the flag only
// gates features the host chooses to restrict.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, credential string) (*models.User, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(email, string(hashed))
	user.VerificationToken = uuid.New().String()
	user.VerificationExpiresAt = time.Now().Add(verificationTTL).Unix()

	if err := a.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := a.mailer.SendVerification(ctx, user.Email, user.VerificationToken); err != nil {
		// Registration stands; the user can request a resend.
		slog.Warn("failed to send verification mail", "user_id", user.ID, "error", err)
	}
	return user, nil
}

// Authenticate verifies the email and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.User, error) {
	user, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// VerifyEmail consumes a pending token: marks the account verified and
// clears the token so the link is single-use.
func (a *PasswordAuthenticator) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	user, err := a.store.GetUserByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrTokenUnknown
		}
		return nil, err
	}

	if user.VerificationExpiresAt != 0 && time.Now().Unix() > user.VerificationExpiresAt {
		return nil, ErrTokenExpired
	}

	user.EmailVerified = true
	user.VerificationToken = ""
	user.VerificationExpiresAt = 0
	if err := a.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	slog.Info("email verified", "user_id", user.ID)
	return user, nil
}
