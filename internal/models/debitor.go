package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Debitor is one participant's assigned share of one event.
//
// It references exactly one user and exactly one event; it cannot exist
// without both. DebAmount and AmountPaid are non-negative, scale 2.
type Debitor struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// EventID is the event this split belongs to.
	EventID string

	// UserID is the debtor assigned this share.
	UserID string

	// DebAmount is the amount this participant is assigned to pay.
	DebAmount decimal.Decimal

	// AmountPaid is the cumulative payment recorded against this share.
	// May be partial.
	AmountPaid decimal.Decimal

	// PaidAt is the Unix timestamp of the most recent payment, zero if
	// nothing has been paid.
	PaidAt int64

	// Included reports whether this split counts toward the event's
	// accounting. Defaults to true.
	Included bool

	// Settled is true once the share is fully paid. Derived from
	// AmountPaid >= DebAmount, persisted for query efficiency.
	Settled bool
}

// NewDebitor creates an unattached split for the given user with a fresh ID.
// Amounts default to zero and Included to true; the caller links it to an
// event via Event.AttachSplit.
func NewDebitor(userID string) *Debitor {
	return &Debitor{
		ID:       uuid.New().String(),
		UserID:   userID,
		Included: true,
	}
}

// Outstanding returns the unpaid remainder of this share, never negative.
func (d *Debitor) Outstanding() decimal.Decimal {
	rem := d.DebAmount.Sub(d.AmountPaid)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}
