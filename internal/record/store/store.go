package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/budgetease/internal/database"
	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// table maps a kind to its table. Kinds never reach SQL any other way.
func table(kind record.Kind) (string, error) {
	switch kind {
	case record.KindBudget:
		return "budgets", nil
	case record.KindExpense:
		return "expenses", nil
	}

	return "", fmt.Errorf("unknown record kind %q", kind)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, user_id, category, name, amount, created_at, updated_at
func scanRecord(s scanner, kind record.Kind) (*record.Record, error) {
	r := record.Record{Kind: kind}

	if err := s.Scan(&r.ID, &r.UserID, &r.Category, &r.Name, &r.Amount, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}

	return &r, nil
}

const selectColumns = `id, user_id, category, name, amount, created_at, updated_at`

const insertQuery = `
	INSERT INTO %s (user_id, category, name, amount, created_at)
	VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
	RETURNING id, created_at
`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insert(ctx context.Context, ex execer, r *record.Record) error {
	tbl, err := table(r.Kind)
	if err != nil {
		return err
	}

	var createdAt any
	if !r.CreatedAt.IsZero() {
		createdAt = r.CreatedAt
	}

	return ex.QueryRowContext(ctx, fmt.Sprintf(insertQuery, tbl),
		r.UserID,
		r.Category,
		r.Name,
		r.Amount,
		createdAt,
	).Scan(&r.ID, &r.CreatedAt)
}

func (s *Store) Create(ctx context.Context, r *record.Record) error {
	if err := insert(ctx, s.db, r); err != nil {
		return fmt.Errorf("creating %s: %w", r.Kind, err)
	}

	return nil
}

// CreateBatch inserts all records in one database transaction.
func (s *Store) CreateBatch(ctx context.Context, rs []*record.Record) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, r := range rs {
			if err := insert(ctx, tx, r); err != nil {
				return fmt.Errorf("creating %s: %w", r.Kind, err)
			}
		}

		return nil
	})
}

func (s *Store) Get(ctx context.Context, kind record.Kind, id uuid.UUID) (*record.Record, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + selectColumns + ` FROM ` + tbl + ` WHERE id = $1`

	r, err := scanRecord(s.db.QueryRowContext(ctx, query, id), kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, record.ErrNotFound
		}

		return nil, fmt.Errorf("getting %s: %w", kind, err)
	}

	return r, nil
}

func (s *Store) Update(ctx context.Context, r *record.Record) error {
	tbl, err := table(r.Kind)
	if err != nil {
		return err
	}

	query := `
		UPDATE ` + tbl + `
		SET category = $1, name = $2, amount = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING updated_at
	`

	err = s.db.QueryRowContext(ctx, query, r.Category, r.Name, r.Amount, r.ID, r.UserID).Scan(&r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record.ErrNotFound
		}

		return fmt.Errorf("updating %s: %w", r.Kind, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, kind record.Kind, id uuid.UUID) error {
	tbl, err := table(kind)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM `+tbl+` WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting %s: %w", kind, err)
	}

	return nil
}

func (s *Store) List(ctx context.Context, kind record.Kind, owner uuid.UUID, q record.Query) ([]*record.Record, int, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, 0, err
	}

	where, args := buildWhere(owner, q.Filter, q.Search)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+tbl+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting %s: %w", kind, err)
	}

	query := `SELECT ` + selectColumns + ` FROM ` + tbl + where + orderBy(q.Sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rs, err := s.query(ctx, kind, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return rs, total, nil
}

func (s *Store) ListAll(ctx context.Context, kind record.Kind, owner uuid.UUID, f record.Filter) ([]*record.Record, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}

	where, args := buildWhere(owner, f, "")

	return s.query(ctx, kind, `SELECT `+selectColumns+` FROM `+tbl+where, args...)
}

func (s *Store) query(ctx context.Context, kind record.Kind, query string, args ...any) ([]*record.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}
	defer rows.Close()

	var rs []*record.Record

	for rows.Next() {
		r, err := scanRecord(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", kind, err)
		}

		rs = append(rs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", kind, err)
	}

	return rs, nil
}

// DeleteAllForUser removes expenses then budgets inside a single transaction.
func (s *Store) DeleteAllForUser(ctx context.Context, owner uuid.UUID) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, tbl := range []string{"expenses", "budgets"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+tbl+` WHERE user_id = $1`, owner); err != nil {
				return fmt.Errorf("deleting %s: %w", tbl, err)
			}
		}

		return nil
	})
}

// buildWhere always scopes by owner as $1; the other predicates are optional.
func buildWhere(owner uuid.UUID, f record.Filter, search string) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{owner}

	if f.Category != "" {
		args = append(args, f.Category)
		clauses = append(clauses, fmt.Sprintf("LOWER(category) = LOWER($%d)", len(args)))
	}

	if search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR category ILIKE $%d)", len(args), len(args)))
	}

	if f.From != nil {
		args = append(args, *f.From)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	if f.To != nil {
		args = append(args, *f.To)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// orderBy appends id as a deterministic secondary key.
func orderBy(sort record.SortKey) string {
	switch sort {
	case record.SortDateAsc:
		return " ORDER BY created_at ASC, id ASC"
	case record.SortAmountAsc:
		return " ORDER BY amount ASC, id ASC"
	case record.SortAmountDesc:
		return " ORDER BY amount DESC, id ASC"
	case record.SortAlphaAsc:
		return " ORDER BY name ASC, id ASC"
	case record.SortAlphaDesc:
		return " ORDER BY name DESC, id ASC"
	default:
		return " ORDER BY created_at DESC, id ASC"
	}
}
