package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"splitledger/internal/auth"
	"splitledger/internal/ledger"
	"splitledger/internal/service"
	"splitledger/internal/storage"
)

// mapErrorToStatus maps internal errors to HTTP status codes so handlers
// never leak internal error types to clients.
func mapErrorToStatus(err error) int {
	var verr validator.ValidationErrors
	switch {
	case errors.Is(err, storage.ErrUserNotFound),
		errors.Is(err, storage.ErrEventNotFound),
		errors.Is(err, storage.ErrDebitorNotFound):
		return http.StatusNotFound

	case errors.Is(err, storage.ErrEmailExists),
		errors.Is(err, storage.ErrUsernameTaken),
		errors.Is(err, service.ErrAlreadySettled):
		return http.StatusConflict

	case errors.Is(err, ledger.ErrNoParticipants),
		errors.Is(err, ledger.ErrNegativeTotal),
		errors.Is(err, service.ErrMissingUserRef),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrNegativeAmount),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenUnknown),
		errors.As(err, &verr):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}

// safeMessage returns a client-facing message for err. Errors that carry an
// identifier keep it; everything unexpected collapses to a generic message.
func safeMessage(err error) string {
	if mapErrorToStatus(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}

// handleError writes the mapped status and safe message for err.
func handleError(w http.ResponseWriter, err error) {
	respondError(w, mapErrorToStatus(err), safeMessage(err))
}
