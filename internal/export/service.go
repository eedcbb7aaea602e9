package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/budgetease/internal/transaction"
)

// Header is the first line of every export. The importer recognises it.
var Header = []string{"date", "name", "category", "type", "amount", "status"}

type Lister interface {
	All(ctx context.Context, owner uuid.UUID, params transaction.ListParams) ([]transaction.Transaction, error)
}

// Service writes the merged transactions view as CSV.
type Service struct {
	transactions Lister
}

func NewService(transactions Lister) *Service {
	return &Service{transactions: transactions}
}

// Write streams every transaction matching params to w, ignoring pagination.
// It returns the number of data rows written.
func (s *Service) Write(ctx context.Context, w io.Writer, owner uuid.UUID, params transaction.ListParams) (int, error) {
	txs, err := s.transactions.All(ctx, owner, params)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		if err := cw.Write(row(tx)); err != nil {
			return 0, fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(txs), nil
}

func row(tx transaction.Transaction) []string {
	return []string{
		tx.Date.UTC().Format(time.RFC3339),
		tx.Name,
		tx.Category,
		string(tx.Type),
		tx.Amount.StringFixed(2),
		string(tx.Status),
	}
}

// Filename names an export taken at now, e.g. "transactions-20250301.csv".
func Filename(now time.Time) string {
	return fmt.Sprintf("transactions-%s.csv", now.Format("20060102"))
}
