package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

const eventColumns = `id, title, total, created_at, cancelled, creator_id`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Total,
		&event.CreatedAt,
		&event.Cancelled,
		&event.CreatorID,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// SaveEvent upserts the event and replaces its persisted split set with
// event.Splits in a single transaction. Splits dropped from the collection
// are deleted (orphan removal).
func (s *SQLiteStore) SaveEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
		for _, d := range event.Splits {
			d.EventID = event.ID
		}
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO events (id, title, total, created_at, cancelled, creator_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			total = excluded.total,
			cancelled = excluded.cancelled,
			creator_id = excluded.creator_id`,
		event.ID, event.Title, event.Total, event.CreatedAt, event.Cancelled, event.CreatorID,
	)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	// Orphan removal: drop persisted splits no longer in the collection.
	keep := make([]any, 0, len(event.Splits)+1)
	keep = append(keep, event.ID)
	placeholders := make([]string, 0, len(event.Splits))
	for _, d := range event.Splits {
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		keep = append(keep, d.ID)
		placeholders = append(placeholders, "?")
	}
	del := "DELETE FROM debitors WHERE event_id = ?"
	if len(placeholders) > 0 {
		del += " AND id NOT IN (" + strings.Join(placeholders, ", ") + ")"
	}
	if _, err := tx.ExecContext(ctx, del, keep...); err != nil {
		return fmt.Errorf("failed to remove orphaned debitors: %w", err)
	}

	for _, d := range event.Splits {
		if err := upsertDebitor(ctx, tx, d); err != nil {
			return fmt.Errorf("failed to save debitor: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetEventByID retrieves an event with its splits loaded.
func (s *SQLiteStore) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	event, err := scanEvent(s.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", id, storage.ErrEventNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	event.Splits, err = s.debitorsForEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// ListEventsForUser retrieves every distinct event the user participates in
// via a split, with splits loaded.
func (s *SQLiteStore) ListEventsForUser(ctx context.Context, userID string) ([]*models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT e.id, e.title, e.total, e.created_at, e.cancelled, e.creator_id
		FROM events e
		JOIN debitors d ON d.event_id = e.id
		WHERE d.user_id = ?
		ORDER BY e.created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	for _, event := range events {
		event.Splits, err = s.debitorsForEvent(ctx, event.ID)
		if err != nil {
			return nil, err
		}
	}
	return events, nil
}

// DeleteEvent removes an event; the schema cascades to its splits.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, storage.ErrEventNotFound)
	}
	return nil
}

// EventExists reports whether an event id is persisted.
func (s *SQLiteStore) EventExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM events WHERE id = ?)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check event: %w", err)
	}
	return exists, nil
}
