package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storekit/checkout/internal/core/domain"
)

var ErrAttemptNotFound = errors.New("checkout attempt not found")

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) CreateAttempt(ctx context.Context, attempt domain.Attempt) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO checkout_attempts (id, checkout_id, path, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		attempt.ID, attempt.CheckoutID, attempt.Path, attempt.Status,
		attempt.CreatedAt, attempt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	return nil
}

func (m *MySQLAdapter) FinishAttempt(ctx context.Context, attemptID, checkoutID string, status domain.CompletionStatus) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE checkout_attempts
		SET checkout_id = ?, status = ?, updated_at = NOW()
		WHERE id = ?`,
		checkoutID, status, attemptID,
	)
	if err != nil {
		return fmt.Errorf("update attempt: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrAttemptNotFound
	}

	return nil
}

func (m *MySQLAdapter) GetAttempt(ctx context.Context, attemptID string) (*domain.Attempt, error) {
	var a domain.Attempt
	err := m.db.QueryRowContext(ctx, `
		SELECT id, checkout_id, path, status, created_at, updated_at
		FROM checkout_attempts WHERE id = ?`, attemptID,
	).Scan(&a.ID, &a.CheckoutID, &a.Path, &a.Status, &a.CreatedAt, &a.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query attempt: %w", err)
	}

	return &a, nil
}
