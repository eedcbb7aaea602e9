package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=transaction
type Source interface {
	ListAll(ctx context.Context, owner uuid.UUID, kind record.Kind, f record.Filter) ([]*record.Record, error)
}

type Service struct {
	records Source
}

func NewService(records Source) *Service {
	return &Service{records: records}
}

// ListParams is a record query plus an optional kind selector. A nil Type
// selects both budgets and expenses.
type ListParams struct {
	record.Query

	Type *record.Kind
}

// ParseType returns nil for anything other than "budget" or "expense".
func ParseType(s string) *record.Kind {
	k := record.Kind(s)
	if !k.Valid() {
		return nil
	}

	return &k
}

// List runs merge, sort, search filter, count and paginate in that order.
func (s *Service) List(ctx context.Context, owner uuid.UUID, params ListParams) (*record.Page[Transaction], error) {
	txs, err := s.All(ctx, owner, params)
	if err != nil {
		return nil, err
	}

	return Paginate(txs, params.Query), nil
}

// All returns every matching transaction, sorted and filtered but not paginated.
func (s *Service) All(ctx context.Context, owner uuid.UUID, params ListParams) ([]Transaction, error) {
	var budgets, expenses []*record.Record

	var err error

	if params.Type == nil || *params.Type == record.KindBudget {
		budgets, err = s.records.ListAll(ctx, owner, record.KindBudget, params.Filter)
		if err != nil {
			return nil, fmt.Errorf("listing budgets: %w", err)
		}
	}

	if params.Type == nil || *params.Type == record.KindExpense {
		expenses, err = s.records.ListAll(ctx, owner, record.KindExpense, params.Filter)
		if err != nil {
			return nil, fmt.Errorf("listing expenses: %w", err)
		}
	}

	txs := Merge(budgets, expenses)
	Sort(txs, params.Sort)

	return Filter(txs, params.Search), nil
}
