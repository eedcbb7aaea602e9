package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budgetease/internal/analytics"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListExpenses(ctx context.Context, owner uuid.UUID, from, to time.Time) ([]analytics.Entry, error) {
	query := `
		SELECT category, amount, created_at
		FROM expenses
		WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, owner, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var entries []analytics.Entry

	for rows.Next() {
		var e analytics.Entry
		if err := rows.Scan(&e.Category, &e.Amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return entries, nil
}

func (s *Store) SumBudgets(ctx context.Context, owner uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal

	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM budgets WHERE user_id = $1`, owner).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing budgets: %w", err)
	}

	return sum, nil
}
