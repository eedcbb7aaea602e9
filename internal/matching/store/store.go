package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindCategory(ctx context.Context, owner uuid.UUID, kind record.Kind, name string) (string, error) {
	var tbl string

	switch kind {
	case record.KindBudget:
		tbl = "budgets"
	case record.KindExpense:
		tbl = "expenses"
	default:
		return "", fmt.Errorf("unknown record kind %q", kind)
	}

	query := `
		SELECT category
		FROM ` + tbl + `
		WHERE user_id = $1 AND POSITION(LOWER(name) IN LOWER($2)) > 0
		ORDER BY LENGTH(name) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, owner, name).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding category: %w", err)
	}

	return category, nil
}
