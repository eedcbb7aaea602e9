package record

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrForbidden    = errors.New("record belongs to another user")
	ErrInvalidInput = errors.New("invalid record")
)

// Kind distinguishes the two structurally identical record tables.
type Kind string

const (
	KindBudget  Kind = "budget"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindBudget || k == KindExpense
}

// Record is a budget (inflow) or an expense (outflow) owned by exactly one user.
type Record struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      Kind
	Category  string
	Name      string
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt *time.Time
}
