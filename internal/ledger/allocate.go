// Package ledger holds the pure expense-splitting computations: equal-share
// allocation and per-user balance totals. Nothing here touches storage; the
// inputs are in-memory entity graphs and the caller persists the results.
package ledger

import (
	"errors"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

var (
	// ErrNoParticipants is returned when an allocation is requested for an
	// empty participant list.
	ErrNoParticipants = errors.New("no participants")

	// ErrNegativeTotal is returned when the event total is below zero.
	ErrNegativeTotal = errors.New("event total must not be negative")
)

// AllocateEqualSplits divides total equally among the given participants,
// returning one unattached split per participant in input order.
//
// The per-head share is total/n floored at 2 decimal places, so the
// rounding remainder is never negative. It lands entirely on the first
// participant and the splits always sum to total exactly; no share ever
// drops below zero. Each split starts included, unpaid and unsettled.
func AllocateEqualSplits(total decimal.Decimal, participantIDs []string) ([]*models.Debitor, error) {
	n := len(participantIDs)
	if n == 0 {
		return nil, ErrNoParticipants
	}
	if total.IsNegative() {
		return nil, ErrNegativeTotal
	}

	share := total.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	remainder := total.Sub(share.Mul(decimal.NewFromInt(int64(n))))

	splits := make([]*models.Debitor, 0, n)
	for i, userID := range participantIDs {
		d := models.NewDebitor(userID)
		d.DebAmount = share
		if i == 0 {
			d.DebAmount = share.Add(remainder)
		}
		splits = append(splits, d)
	}
	return splits, nil
}
