package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/budgetease/internal/user"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectUserColumns = `
	id, full_name, email, password_hash, avatar_url,
	reset_token, reset_token_expires_at, created_at, updated_at
`

func scanUser(s scanner) (*user.User, error) {
	var u user.User

	if err := s.Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.AvatarURL,
		&u.ResetToken, &u.ResetTokenExpiresAt, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *Store) getOne(ctx context.Context, where string, args ...any) (*user.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+selectUserColumns+` FROM users WHERE `+where, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (full_name, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, u.FullName, u.Email, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}

		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.getOne(ctx, `id = $1`, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.getOne(ctx, `email = $1`, email)
}

func (s *Store) GetUserByResetToken(ctx context.Context, token string, now time.Time) (*user.User, error) {
	return s.getOne(ctx, `reset_token = $1 AND reset_token_expires_at > $2`, token, now)
}

func (s *Store) UpdateProfile(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET full_name = $1, email = $2, avatar_url = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, u.FullName, u.Email, u.AvatarURL, u.ID).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.ErrNotFound
		}

		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}

		return fmt.Errorf("updating user: %w", err)
	}

	return nil
}

func (s *Store) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET reset_token = $1, reset_token_expires_at = $2, updated_at = NOW()
		WHERE id = $3
	`

	if _, err := s.db.ExecContext(ctx, query, token, expiresAt, id); err != nil {
		return fmt.Errorf("setting reset token: %w", err)
	}

	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_token_expires_at = NULL, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := s.db.ExecContext(ctx, query, passwordHash, id); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	return nil
}
