package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitledger/internal/models"
	"splitledger/internal/storage"
	"splitledger/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestUser(t *testing.T, store storage.Store, email string) *models.User {
	t.Helper()
	u := models.NewUser(email, "hash")
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateEventUnknownParticipant(t *testing.T) {
	store := newTestStore(t)
	svc := NewEventService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com")

	event := models.NewEvent("Dinner", dec("60.00"), alice.ID)
	good := models.NewDebitor(alice.ID)
	good.DebAmount = dec("30.00")
	bad := models.NewDebitor("ghost-id")
	bad.DebAmount = dec("30.00")

	_, err := svc.CreateEvent(ctx, event, []*models.Debitor{good, bad})
	require.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.Contains(t, err.Error(), "ghost-id")

	// No partial write: the event must not exist.
	_, err = store.GetEventByID(ctx, event.ID)
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
}

func TestCreateEventMissingUserRef(t *testing.T) {
	store := newTestStore(t)
	svc := NewEventService(store)

	alice := createTestUser(t, store, "alice@example.com")
	event := models.NewEvent("Dinner", dec("60.00"), alice.ID)

	_, err := svc.CreateEvent(context.Background(), event, []*models.Debitor{models.NewDebitor("")})
	assert.ErrorIs(t, err, ErrMissingUserRef)
}

func TestCreateEqualSplitEvent(t *testing.T) {
	store := newTestStore(t)
	svc := NewEventService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com")
	bob := createTestUser(t, store, "bob@example.com")
	carol := createTestUser(t, store, "carol@example.com")

	event := models.NewEvent("Dinner", dec("100.00"), alice.ID)
	got, err := svc.CreateEqualSplitEvent(ctx, event, []string{alice.ID, bob.ID, carol.ID})
	require.NoError(t, err)
	require.Len(t, got.Splits, 3)

	// First participant absorbs the rounding remainder.
	assert.Equal(t, "33.34", got.Splits[0].DebAmount.String())
	assert.Equal(t, "33.33", got.Splits[1].DebAmount.String())
	assert.Equal(t, "33.33", got.Splits[2].DebAmount.String())

	sum := decimal.Zero
	for _, d := range got.Splits {
		sum = sum.Add(d.DebAmount)
	}
	assert.True(t, sum.Equal(event.Total))
}

func TestSaveRejectsOwnerlessSplit(t *testing.T) {
	store := newTestStore(t)
	svc := NewEventService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com")
	event := models.NewEvent("Dinner", dec("60.00"), alice.ID)
	d := models.NewDebitor(alice.ID)
	d.DebAmount = dec("60.00")
	_, err := svc.CreateEvent(ctx, event, []*models.Debitor{d})
	require.NoError(t, err)

	event.AttachSplit(models.NewDebitor(""))
	_, err = svc.Save(ctx, event)
	assert.ErrorIs(t, err, ErrMissingUserRef)
}

func TestSaveUnknownEvent(t *testing.T) {
	store := newTestStore(t)
	svc := NewEventService(store)

	alice := createTestUser(t, store, "alice@example.com")
	event := models.NewEvent("Never persisted", dec("10.00"), alice.ID)

	_, err := svc.Save(context.Background(), event)
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
}

func TestMutationsRejectNegativeAmounts(t *testing.T) {
	store := newTestStore(t)
	svc := NewEventService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com")
	bob := createTestUser(t, store, "bob@example.com")

	negative := func(userID string) *models.Debitor {
		d := models.NewDebitor(userID)
		d.DebAmount = dec("-5.00")
		return d
	}

	event := models.NewEvent("Dinner", dec("60.00"), alice.ID)
	_, err := svc.CreateEvent(ctx, event, []*models.Debitor{negative(bob.ID)})
	require.ErrorIs(t, err, ErrNegativeAmount)
	_, err = store.GetEventByID(ctx, event.ID)
	assert.ErrorIs(t, err, storage.ErrEventNotFound)

	good := models.NewDebitor(alice.ID)
	good.DebAmount = dec("60.00")
	_, err = svc.CreateEvent(ctx, event, []*models.Debitor{good})
	require.NoError(t, err)

	_, err = svc.AddDebitor(ctx, event.ID, negative(bob.ID))
	assert.ErrorIs(t, err, ErrNegativeAmount)

	event.AttachSplit(negative(bob.ID))
	_, err = svc.Save(ctx, event)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	// Negative AmountPaid is just as invalid.
	overpaid := models.NewDebitor(bob.ID)
	overpaid.AmountPaid = dec("-0.01")
	_, err = svc.AddDebitor(ctx, event.ID, overpaid)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestCancelEvent(t *testing.T) {
	store := newTestStore(t)
	svc := NewEventService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com")
	event := models.NewEvent("Dinner", dec("60.00"), alice.ID)
	d := models.NewDebitor(alice.ID)
	d.DebAmount = dec("60.00")
	_, err := svc.CreateEvent(ctx, event, []*models.Debitor{d})
	require.NoError(t, err)

	cancelled, err := svc.CancelEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)

	// Splits stay queryable after cancellation.
	got, err := svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, got.Cancelled)
	assert.Len(t, got.Splits, 1)
}

func TestDeleteEventRemovesSplits(t *testing.T) {
	store := newTestStore(t)
	svc := NewEventService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com")
	event := models.NewEvent("Dinner", dec("60.00"), alice.ID)
	d := models.NewDebitor(alice.ID)
	d.DebAmount = dec("60.00")
	_, err := svc.CreateEvent(ctx, event, []*models.Debitor{d})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, event.ID))

	_, err = svc.GetEvent(ctx, event.ID)
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
	_, err = store.GetDebitorByID(ctx, d.ID)
	assert.ErrorIs(t, err, storage.ErrDebitorNotFound)
}

func TestAddDebitorUnknownEvent(t *testing.T) {
	store := newTestStore(t)
	svc := NewEventService(store)

	alice := createTestUser(t, store, "alice@example.com")
	_, err := svc.AddDebitor(context.Background(), "missing-event", models.NewDebitor(alice.ID))
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
}

func TestRecordPayment(t *testing.T) {
	store := newTestStore(t)
	svc := NewEventService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com")
	bob := createTestUser(t, store, "bob@example.com")

	event := models.NewEvent("Dinner", dec("60.00"), alice.ID)
	d := models.NewDebitor(bob.ID)
	d.DebAmount = dec("30.00")
	_, err := svc.CreateEvent(ctx, event, []*models.Debitor{d})
	require.NoError(t, err)

	// Partial payment leaves the split open.
	got, err := svc.RecordPayment(ctx, d.ID, dec("10.00"), "first half")
	require.NoError(t, err)
	assert.True(t, got.AmountPaid.Equal(dec("10.00")))
	assert.False(t, got.Settled)
	assert.NotZero(t, got.PaidAt)

	// Paying the rest settles it.
	got, err = svc.RecordPayment(ctx, d.ID, dec("20.00"), "")
	require.NoError(t, err)
	assert.True(t, got.Settled)

	// Further payments are rejected.
	_, err = svc.RecordPayment(ctx, d.ID, dec("1.00"), "")
	assert.ErrorIs(t, err, ErrAlreadySettled)

	// Each payment produced a transaction to the event creator.
	txns, err := store.ListTransactionsForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	for _, txn := range txns {
		assert.Equal(t, bob.ID, txn.FromUserID)
		assert.Equal(t, alice.ID, txn.ToUserID)
		assert.Equal(t, event.ID, txn.EventID)
	}
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	store := newTestStore(t)
	svc := NewEventService(store)

	for _, amount := range []string{"0", "-5.00"} {
		_, err := svc.RecordPayment(context.Background(), "any", dec(amount), "")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}
