package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
)

func insertTransaction(ctx context.Context, db execer, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt == 0 {
		txn.CreatedAt = time.Now().Unix()
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO transactions (id, from_user_id, to_user_id, amount, event_id, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.FromUserID, txn.ToUserID, txn.Amount, txn.EventID, txn.Note, txn.CreatedAt,
	)
	return err
}

// CreateTransaction persists a payment record.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	if err := insertTransaction(ctx, s.db, txn); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// SavePayment upserts the split and inserts its payment record in a single
// transaction, so a paid split never exists without the matching record.
func (s *SQLiteStore) SavePayment(ctx context.Context, d *models.Debitor, txn *models.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertDebitor(ctx, tx, d); err != nil {
		return fmt.Errorf("failed to save debitor: %w", err)
	}
	if err := insertTransaction(ctx, tx, txn); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListTransactionsForUser retrieves payments where the user is either side,
// newest first.
func (s *SQLiteStore) ListTransactionsForUser(ctx context.Context, userID string) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, from_user_id, to_user_id, amount, event_id, note, created_at
		FROM transactions
		WHERE from_user_id = ? OR to_user_id = ?
		ORDER BY created_at DESC`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn := &models.Transaction{}
		if err := rows.Scan(
			&txn.ID,
			&txn.FromUserID,
			&txn.ToUserID,
			&txn.Amount,
			&txn.EventID,
			&txn.Note,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}
