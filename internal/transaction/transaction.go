package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

// StatusCompleted is the only status a derived transaction can have.
const StatusCompleted = "Completed"

// Transaction is a request-scoped, signed view of a budget or an expense.
// It is never persisted.
type Transaction struct {
	ID       string
	Name     string
	Date     time.Time
	Amount   decimal.Decimal // positive for budgets, negative for expenses
	Type     record.Kind
	Category string
	Status   string
}

// FromRecord derives the transaction view of r.
func FromRecord(r *record.Record) Transaction {
	amount := r.Amount
	if r.Kind == record.KindExpense {
		amount = amount.Neg()
	}

	return Transaction{
		ID:       string(r.Kind) + "-" + r.ID.String(),
		Name:     r.Name,
		Date:     r.CreatedAt,
		Amount:   amount,
		Type:     r.Kind,
		Category: r.Category,
		Status:   StatusCompleted,
	}
}
