package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction records a payment between two users, usually produced when a
// payment is recorded against a split.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// FromUserID is the user who paid (debtor settling up).
	FromUserID string

	// ToUserID is the user who received the payment.
	ToUserID string

	// Amount is the payment amount, scale 2.
	Amount decimal.Decimal

	// EventID optionally links the payment to the event it settles.
	EventID string

	// Note is an optional free-form description.
	Note string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}

// NewTransaction creates a transaction with a fresh ID and timestamp.
func NewTransaction(fromUserID, toUserID string, amount decimal.Decimal) *Transaction {
	return &Transaction{
		ID:         uuid.New().String(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Amount:     amount,
		CreatedAt:  time.Now().Unix(),
	}
}
