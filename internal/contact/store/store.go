package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/budgetease/internal/contact"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateMessage(ctx context.Context, m *contact.Message) error {
	query := `
		INSERT INTO contact_messages (name, email, message, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, m.Name, m.Email, m.Message).Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("creating contact message: %w", err)
	}

	return nil
}
