package transaction

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

// Merge maps budgets and expenses into transactions, budgets first.
func Merge(budgets, expenses []*record.Record) []Transaction {
	txs := make([]Transaction, 0, len(budgets)+len(expenses))

	for _, b := range budgets {
		txs = append(txs, FromRecord(b))
	}

	for _, e := range expenses {
		txs = append(txs, FromRecord(e))
	}

	return txs
}

// Sort orders txs in place by key. Ties are broken by ID ascending so pages
// are stable across requests.
func Sort(txs []Transaction, key record.SortKey) {
	var compare func(a, b Transaction) int

	switch key {
	case record.SortDateAsc:
		compare = func(a, b Transaction) int { return a.Date.Compare(b.Date) }
	case record.SortAmountAsc:
		compare = func(a, b Transaction) int { return a.Amount.Cmp(b.Amount) }
	case record.SortAmountDesc:
		compare = func(a, b Transaction) int { return b.Amount.Cmp(a.Amount) }
	case record.SortAlphaAsc, record.SortAlphaDesc:
		// Collators keep internal buffers and must not be shared between requests.
		col := collate.New(language.Und)
		compare = func(a, b Transaction) int { return col.CompareString(a.Name, b.Name) }

		if key == record.SortAlphaDesc {
			compare = func(a, b Transaction) int { return col.CompareString(b.Name, a.Name) }
		}
	default:
		compare = func(a, b Transaction) int { return b.Date.Compare(a.Date) }
	}

	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := compare(a, b); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})
}

// Filter keeps the transactions whose name or category contains search.
func Filter(txs []Transaction, search string) []Transaction {
	if search == "" {
		return txs
	}

	out := txs[:0:0]

	for _, tx := range txs {
		if record.MatchesSearch(search, tx.Name, tx.Category) {
			out = append(out, tx)
		}
	}

	return out
}

// Paginate slices one page out of the full filtered list. The total is taken
// from txs, so callers must filter before paginating.
func Paginate(txs []Transaction, q record.Query) *record.Page[Transaction] {
	start := min(q.Offset(), len(txs))
	end := min(start+q.Limit, len(txs))

	return &record.Page[Transaction]{
		Items:      txs[start:end],
		Pagination: record.NewPagination(q, len(txs)),
	}
}
