package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"splitledger/internal/middleware"
	"splitledger/internal/service"
)

// UserHandler serves the authenticated user's profile and balances.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

type setUsernameRequest struct {
	Username string `json:"username" validate:"required"`
}

// SetUsername claims a username for the authenticated account.
func (h *UserHandler) SetUsername(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())

	var req setUsernameRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.SetUsernameForEmail(r.Context(), email, req.Username)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// Transactions returns the authenticated user's payment history.
func (h *UserHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	txns, err := h.users.GetTransactions(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	resp := make([]transactionResponse, len(txns))
	for i, txn := range txns {
		resp[i] = toTransactionResponse(txn)
	}
	respondJSON(w, http.StatusOK, resp)
}

type balancesResponse struct {
	YouOwe    decimal.Decimal `json:"you_owe"`
	OwedToYou decimal.Decimal `json:"owed_to_you"`
	Net       decimal.Decimal `json:"net"`
}

// Balances returns the authenticated user's you-owe and owed-to-you totals.
func (h *UserHandler) Balances(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	b, err := h.users.GetBalances(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, balancesResponse{
		YouOwe:    b.YouOwe,
		OwedToYou: b.OwedToYou,
		Net:       b.OwedToYou.Sub(b.YouOwe),
	})
}
