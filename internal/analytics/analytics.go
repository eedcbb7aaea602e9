package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the slice of an expense the aggregations need.
type Entry struct {
	Category  string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

type CategoryTotal struct {
	Category    string
	TotalAmount decimal.Decimal
}

type BudgetSummary struct {
	TotalBudget            decimal.Decimal
	TotalExpensesThisMonth decimal.Decimal
}

type DailyTotal struct {
	Day   int
	Total decimal.Decimal
}

// MonthRange returns the first and last instant of the calendar month
// containing now, in now's location.
func MonthRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	return start, end
}
