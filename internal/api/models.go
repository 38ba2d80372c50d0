package api

import (
	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// userResponse is the public shape of a user.
type userResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username,omitempty"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	CreatedAt     int64  `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

// debitorResponse is the public shape of a split.
type debitorResponse struct {
	ID         string          `json:"id"`
	EventID    string          `json:"event_id"`
	UserID     string          `json:"user_id"`
	DebAmount  decimal.Decimal `json:"deb_amount"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	PaidAt     int64           `json:"paid_at,omitempty"`
	Included   bool            `json:"included"`
	Settled    bool            `json:"settled"`
}

func toDebitorResponse(d *models.Debitor) debitorResponse {
	return debitorResponse{
		ID:         d.ID,
		EventID:    d.EventID,
		UserID:     d.UserID,
		DebAmount:  d.DebAmount,
		AmountPaid: d.AmountPaid,
		PaidAt:     d.PaidAt,
		Included:   d.Included,
		Settled:    d.Settled,
	}
}

// transactionResponse is the public shape of a recorded payment.
type transactionResponse struct {
	ID         string          `json:"id"`
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	EventID    string          `json:"event_id,omitempty"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  int64           `json:"created_at"`
}

func toTransactionResponse(txn *models.Transaction) transactionResponse {
	return transactionResponse{
		ID:         txn.ID,
		FromUserID: txn.FromUserID,
		ToUserID:   txn.ToUserID,
		Amount:     txn.Amount,
		EventID:    txn.EventID,
		Note:       txn.Note,
		CreatedAt:  txn.CreatedAt,
	}
}

// eventResponse is the public shape of an event with its splits.
type eventResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt int64             `json:"created_at"`
	Cancelled bool              `json:"cancelled"`
	CreatorID string            `json:"creator_id"`
	Splits    []debitorResponse `json:"splits"`
}

func toEventResponse(e *models.Event) eventResponse {
	splits := make([]debitorResponse, len(e.Splits))
	for i, d := range e.Splits {
		splits[i] = toDebitorResponse(d)
	}
	return eventResponse{
		ID:        e.ID,
		Title:     e.Title,
		Total:     e.Total,
		CreatedAt: e.CreatedAt,
		Cancelled: e.Cancelled,
		CreatorID: e.CreatorID,
		Splits:    splits,
	}
}
