package api

import (
	"log/slog"
	"net/http"

	"splitledger/internal/auth"
)

// AuthHandler serves registration, login and email verification.
type AuthHandler struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{authenticator: authenticator, jwtManager: jwtManager}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new account and returns a session token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authenticator.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("registration failed", "email", req.Email, "error", err)
		handleError(w, err)
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		slog.Error("failed to generate token", "user_id", user.ID, "error", err)
		handleError(w, err)
		return
	}

	slog.Info("user registered", "user_id", user.ID)
	respondJSON(w, http.StatusCreated, authResponse{User: toUserResponse(user), Token: token})
}

// Login authenticates a user and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "email", req.Email)
		handleError(w, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		slog.Error("failed to generate token", "user_id", user.ID, "error", err)
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{User: toUserResponse(user), Token: token})
}

// Verify consumes an email verification token from the mailed link.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusBadRequest, "token required")
		return
	}

	user, err := h.authenticator.VerifyEmail(r.Context(), token)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}
