package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=record
type Repository interface {
	Create(ctx context.Context, r *Record) error
	CreateBatch(ctx context.Context, rs []*Record) error
	Get(ctx context.Context, kind Kind, id uuid.UUID) (*Record, error)
	Update(ctx context.Context, r *Record) error
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error

	// List returns one page of the owner's records and the total number of matches.
	List(ctx context.Context, kind Kind, owner uuid.UUID, q Query) ([]*Record, int, error)
	// ListAll returns every record of the owner matching f, in store order.
	ListAll(ctx context.Context, kind Kind, owner uuid.UUID, f Filter) ([]*Record, error)

	DeleteAllForUser(ctx context.Context, owner uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Category string
	Name     string
	Amount   decimal.Decimal
	// CreatedAt backdates imported records; nil means now.
	CreatedAt *time.Time
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.Category) == "" || strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: category, name, and amount are required", ErrInvalidInput)
	}

	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", ErrInvalidInput)
	}

	return nil
}

// UpdateParams leaves a field untouched when it is nil or, for strings, empty.
type UpdateParams struct {
	Category *string
	Name     *string
	Amount   *decimal.Decimal
}

func (s *Service) Create(ctx context.Context, owner uuid.UUID, kind Kind, params CreateParams) (*Record, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	r := newRecord(owner, kind, params)
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// CreateBatch validates every row before inserting any of them.
func (s *Service) CreateBatch(ctx context.Context, owner uuid.UUID, kind Kind, params []CreateParams) ([]*Record, error) {
	if len(params) == 0 {
		return nil, nil
	}

	rs := make([]*Record, len(params))

	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		rs[i] = newRecord(owner, kind, p)
	}

	if err := s.repo.CreateBatch(ctx, rs); err != nil {
		return nil, err
	}

	return rs, nil
}

func newRecord(owner uuid.UUID, kind Kind, p CreateParams) *Record {
	r := &Record{
		UserID:   owner,
		Kind:     kind,
		Category: strings.TrimSpace(p.Category),
		Name:     strings.TrimSpace(p.Name),
		Amount:   p.Amount.Round(2),
	}

	if p.CreatedAt != nil {
		r.CreatedAt = *p.CreatedAt
	}

	return r
}

// Get returns the record only when owner owns it.
func (s *Service) Get(ctx context.Context, owner uuid.UUID, kind Kind, id uuid.UUID) (*Record, error) {
	r, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	if r.UserID != owner {
		return nil, ErrForbidden
	}

	return r, nil
}

// Update applies params to an owned record. Amount positivity is only checked on create.
func (s *Service) Update(ctx context.Context, owner uuid.UUID, kind Kind, id uuid.UUID, params UpdateParams) (*Record, error) {
	r, err := s.Get(ctx, owner, kind, id)
	if err != nil {
		return nil, err
	}

	if params.Category != nil && *params.Category != "" {
		r.Category = *params.Category
	}

	if params.Name != nil && *params.Name != "" {
		r.Name = *params.Name
	}

	if params.Amount != nil {
		r.Amount = params.Amount.Round(2)
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) Delete(ctx context.Context, owner uuid.UUID, kind Kind, id uuid.UUID) error {
	if _, err := s.Get(ctx, owner, kind, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, kind, id)
}

func (s *Service) List(ctx context.Context, owner uuid.UUID, kind Kind, q Query) (*Page[*Record], error) {
	rs, total, err := s.repo.List(ctx, kind, owner, q)
	if err != nil {
		return nil, err
	}

	return &Page[*Record]{Items: rs, Pagination: NewPagination(q, total)}, nil
}

func (s *Service) ListAll(ctx context.Context, owner uuid.UUID, kind Kind, f Filter) ([]*Record, error) {
	return s.repo.ListAll(ctx, kind, owner, f)
}

// DeleteAll removes every budget and expense of owner. The user row is kept.
func (s *Service) DeleteAll(ctx context.Context, owner uuid.UUID) error {
	return s.repo.DeleteAllForUser(ctx, owner)
}
