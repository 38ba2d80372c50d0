package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

const debitorColumns = `id, event_id, user_id, deb_amount, amount_paid, paid_at, included, settled`

func scanDebitor(row interface{ Scan(...any) error }) (*models.Debitor, error) {
	d := &models.Debitor{}
	err := row.Scan(
		&d.ID,
		&d.EventID,
		&d.UserID,
		&d.DebAmount,
		&d.AmountPaid,
		&d.PaidAt,
		&d.Included,
		&d.Settled,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// GetDebitorByID retrieves a single split.
func (s *SQLiteStore) GetDebitorByID(ctx context.Context, id string) (*models.Debitor, error) {
	d, err := scanDebitor(s.db.QueryRowContext(ctx,
		"SELECT "+debitorColumns+" FROM debitors WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", id, storage.ErrDebitorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debitor: %w", err)
	}
	return d, nil
}

// execer lets the upsert helpers run against either the pool or an open
// transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertDebitor(ctx context.Context, db execer, d *models.Debitor) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO debitors (id, event_id, user_id, deb_amount, amount_paid,
			paid_at, included, settled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			event_id = excluded.event_id,
			user_id = excluded.user_id,
			deb_amount = excluded.deb_amount,
			amount_paid = excluded.amount_paid,
			paid_at = excluded.paid_at,
			included = excluded.included,
			settled = excluded.settled`,
		d.ID, d.EventID, d.UserID, d.DebAmount, d.AmountPaid,
		d.PaidAt, d.Included, d.Settled,
	)
	return err
}

// SaveDebitor upserts a single split.
func (s *SQLiteStore) SaveDebitor(ctx context.Context, d *models.Debitor) error {
	if err := upsertDebitor(ctx, s.db, d); err != nil {
		return fmt.Errorf("failed to save debitor: %w", err)
	}
	return nil
}

// DeleteDebitor removes a single split.
func (s *SQLiteStore) DeleteDebitor(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM debitors WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete debitor: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete debitor: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, storage.ErrDebitorNotFound)
	}
	return nil
}

func (s *SQLiteStore) debitorsForEvent(ctx context.Context, eventID string) ([]*models.Debitor, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+debitorColumns+" FROM debitors WHERE event_id = ?", eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get debitors: %w", err)
	}
	defer rows.Close()

	var debitors []*models.Debitor
	for rows.Next() {
		d, err := scanDebitor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debitor: %w", err)
		}
		debitors = append(debitors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debitors: %w", err)
	}
	return debitors, nil
}
