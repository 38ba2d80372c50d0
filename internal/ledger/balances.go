package ledger

import (
	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// YouOwe sums the unpaid remainder of every unsettled split assigned to the
// user. A user with no splits owes exactly zero.
//
// Splits with Included=false still count here: the share nominally stands
// until it is removed from the event.
func YouOwe(u *models.User) decimal.Decimal {
	total := decimal.Zero
	if u == nil {
		return total
	}
	for _, d := range u.Debitors {
		if d.Settled {
			continue
		}
		total = total.Add(d.DebAmount.Sub(d.AmountPaid))
	}
	return total
}

// OwedToYou sums, over every non-cancelled event the user created, the
// shortfall between the event total and the payments collected across its
// splits. This measures the creator's net float, not per-debtor amounts.
// Cancelled events are excluded entirely.
func OwedToYou(u *models.User) decimal.Decimal {
	total := decimal.Zero
	if u == nil {
		return total
	}
	for _, e := range u.Events {
		if e.Cancelled {
			continue
		}
		collected := decimal.Zero
		for _, d := range e.Splits {
			collected = collected.Add(d.AmountPaid)
		}
		total = total.Add(e.Total.Sub(collected))
	}
	return total
}
