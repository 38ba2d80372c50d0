package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"splitledger/internal/ledger"
	"splitledger/internal/models"
	"splitledger/internal/storage"

	"github.com/shopspring/decimal"
)

// EventService orchestrates the event lifecycle: creation, mutation,
// cancellation and deletion of events and their splits. Every operation
// validates eagerly and only then touches the store, so a failure never
// leaves a partially attached split behind.
type EventService struct {
	store storage.Store
}

// NewEventService creates an EventService with the given storage backend.
func NewEventService(store storage.Store) *EventService {
	return &EventService{store: store}
}

// resolveSplit validates a proposed split before anything is persisted: it
// must reference an existing user and carry non-negative amounts.
func (s *EventService) resolveSplit(ctx context.Context, d *models.Debitor) error {
	if d.UserID == "" {
		return ErrMissingUserRef
	}
	if d.DebAmount.IsNegative() || d.AmountPaid.IsNegative() {
		return fmt.Errorf("participant %s: %w", d.UserID, ErrNegativeAmount)
	}
	ok, err := s.store.UserExists(ctx, d.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("participant %s: %w", d.UserID, storage.ErrUserNotFound)
	}
	return nil
}

// CreateEvent persists a new event with the given proposed splits. Every
// split's user reference is resolved first; if any participant is unknown
// the whole operation fails and no event is created. The proposed splits
// replace whatever split list the event already carried.
func (s *EventService) CreateEvent(ctx context.Context, event *models.Event, splits []*models.Debitor) (*models.Event, error) {
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}

	for _, d := range splits {
		if err := s.resolveSplit(ctx, d); err != nil {
			return nil, err
		}
	}

	event.ReplaceSplits(splits)

	if err := s.store.SaveEvent(ctx, event); err != nil {
		return nil, err
	}
	slog.Info("event created", "event_id", event.ID, "splits", len(event.Splits))
	return event, nil
}

// CreateEqualSplitEvent creates an event whose total is divided equally
// among the given participants via the allocation engine.
func (s *EventService) CreateEqualSplitEvent(ctx context.Context, event *models.Event, participantIDs []string) (*models.Event, error) {
	splits, err := ledger.AllocateEqualSplits(event.Total, participantIDs)
	if err != nil {
		return nil, err
	}
	return s.CreateEvent(ctx, event, splits)
}

// AddDebitor validates and appends a single split to an existing event.
// Missing amounts default to zero and PaidAt to now.
func (s *EventService) AddDebitor(ctx context.Context, eventID string, d *models.Debitor) (*models.Debitor, error) {
	event, err := s.store.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.resolveSplit(ctx, d); err != nil {
		return nil, err
	}

	if d.PaidAt == 0 {
		d.PaidAt = time.Now().Unix()
	}

	event.AttachSplit(d)
	if err := s.store.SaveEvent(ctx, event); err != nil {
		return nil, err
	}
	slog.Info("debitor added", "event_id", eventID, "debitor_id", d.ID, "user_id", d.UserID)
	return d, nil
}

// DeleteDebitor removes a single split.
func (s *EventService) DeleteDebitor(ctx context.Context, debitorID string) error {
	if err := s.store.DeleteDebitor(ctx, debitorID); err != nil {
		return err
	}
	slog.Info("debitor deleted", "debitor_id", debitorID)
	return nil
}

// Save is the bulk update path: it re-resolves every split's user
// reference, rejects splits without one, and atomically replaces the
// event's persisted split set.
func (s *EventService) Save(ctx context.Context, event *models.Event) (*models.Event, error) {
	ok, err := s.store.EventExists(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", event.ID, storage.ErrEventNotFound)
	}

	for _, d := range event.Splits {
		if err := s.resolveSplit(ctx, d); err != nil {
			return nil, err
		}
		d.EventID = event.ID
	}

	if err := s.store.SaveEvent(ctx, event); err != nil {
		return nil, err
	}
	slog.Info("event saved", "event_id", event.ID, "splits", len(event.Splits))
	return event, nil
}

// CancelEvent marks the event cancelled. Irreversible: there is no
// un-cancel operation. The event's splits stay queryable for audit.
func (s *EventService) CancelEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.store.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Cancelled = true
	if err := s.store.SaveEvent(ctx, event); err != nil {
		return nil, err
	}
	slog.Info("event cancelled", "event_id", id)
	return event, nil
}

// DeleteEvent removes the event and all its splits.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return err
	}
	slog.Info("event deleted", "event_id", id)
	return nil
}

// GetEvent retrieves an event with its splits loaded.
func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return s.store.GetEventByID(ctx, id)
}

// GetEventsForUser returns every distinct event the user participates in
// through a split. This is the participant view, not the creator view.
func (s *EventService) GetEventsForUser(ctx context.Context, userID string) ([]*models.Event, error) {
	return s.store.ListEventsForUser(ctx, userID)
}

// RecordPayment adds a payment against a split, stamps PaidAt, derives the
// settled flag, and writes a transaction from the debtor to the event
// creator. Fails on non-positive amounts and on splits that are already
// fully paid.
func (s *EventService) RecordPayment(ctx context.Context, debitorID string, amount decimal.Decimal, note string) (*models.Debitor, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	d, err := s.store.GetDebitorByID(ctx, debitorID)
	if err != nil {
		return nil, err
	}
	if d.Settled {
		return nil, fmt.Errorf("%s: %w", debitorID, ErrAlreadySettled)
	}

	event, err := s.store.GetEventByID(ctx, d.EventID)
	if err != nil {
		return nil, err
	}

	d.AmountPaid = d.AmountPaid.Add(amount)
	d.PaidAt = time.Now().Unix()
	d.Settled = d.AmountPaid.GreaterThanOrEqual(d.DebAmount)

	txn := models.NewTransaction(d.UserID, event.CreatorID, amount)
	txn.EventID = event.ID
	txn.Note = note

	// One write: a settled flag without its payment record would block the
	// retry with ErrAlreadySettled.
	if err := s.store.SavePayment(ctx, d, txn); err != nil {
		return nil, err
	}

	slog.Info("payment recorded",
		"debitor_id", d.ID,
		"event_id", event.ID,
		"amount", amount.String(),
		"settled", d.Settled,
	)
	return d, nil
}
