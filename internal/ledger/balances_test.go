package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

func TestBalancesZeroState(t *testing.T) {
	u := &models.User{ID: "u1"}

	if got := YouOwe(u); !got.IsZero() {
		t.Errorf("YouOwe(empty user) = %s, want 0", got)
	}
	if got := OwedToYou(u); !got.IsZero() {
		t.Errorf("OwedToYou(empty user) = %s, want 0", got)
	}
	if got := YouOwe(nil); !got.IsZero() {
		t.Errorf("YouOwe(nil) = %s, want 0", got)
	}
	if got := OwedToYou(nil); !got.IsZero() {
		t.Errorf("OwedToYou(nil) = %s, want 0", got)
	}
}

func TestYouOweSkipsSettledSplits(t *testing.T) {
	u := &models.User{
		ID: "u1",
		Debitors: []*models.Debitor{
			{ID: "d1", UserID: "u1", DebAmount: dec("50.00"), AmountPaid: dec("20.00")},
			{ID: "d2", UserID: "u1", DebAmount: dec("30.00"), AmountPaid: dec("30.00"), Settled: true},
		},
	}

	if got := YouOwe(u); !got.Equal(dec("30.00")) {
		t.Errorf("YouOwe = %s, want 30.00", got)
	}
}

func TestYouOweIgnoresIncludedFlag(t *testing.T) {
	// Excluded splits are tracked but not cancelled, so they still count.
	u := &models.User{
		ID: "u1",
		Debitors: []*models.Debitor{
			{ID: "d1", UserID: "u1", DebAmount: dec("10.00"), Included: false},
		},
	}

	if got := YouOwe(u); !got.Equal(dec("10.00")) {
		t.Errorf("YouOwe = %s, want 10.00", got)
	}
}

func TestYouOweZeroValueAmounts(t *testing.T) {
	// Unset decimal fields behave as zero rather than failing.
	u := &models.User{
		ID:       "u1",
		Debitors: []*models.Debitor{{ID: "d1", UserID: "u1"}},
	}

	if got := YouOwe(u); !got.IsZero() {
		t.Errorf("YouOwe = %s, want 0", got)
	}
}

func TestOwedToYouExcludesCancelledEvents(t *testing.T) {
	u := &models.User{
		ID: "creator",
		Events: []*models.Event{
			{
				ID:    "e1",
				Total: dec("90.00"),
				Splits: []*models.Debitor{
					{ID: "d1", AmountPaid: dec("25.00")},
					{ID: "d2", AmountPaid: dec("15.00")},
				},
			},
			{
				ID:        "e2",
				Total:     dec("200.00"),
				Cancelled: true,
				Splits:    []*models.Debitor{{ID: "d3"}},
			},
		},
	}

	if got := OwedToYou(u); !got.Equal(dec("50.00")) {
		t.Errorf("OwedToYou = %s, want 50.00", got)
	}
}

func TestOwedToYouCountsShortfallRegardlessOfSettlement(t *testing.T) {
	// A settled split still only contributes what was actually paid;
	// the measure is event total minus collected, not per-debtor state.
	u := &models.User{
		ID: "creator",
		Events: []*models.Event{
			{
				ID:    "e1",
				Total: dec("100.00"),
				Splits: []*models.Debitor{
					{ID: "d1", DebAmount: dec("50.00"), AmountPaid: dec("50.00"), Settled: true},
					{ID: "d2", DebAmount: dec("50.00"), AmountPaid: decimal.Zero},
				},
			},
		},
	}

	if got := OwedToYou(u); !got.Equal(dec("50.00")) {
		t.Errorf("OwedToYou = %s, want 50.00", got)
	}
}
