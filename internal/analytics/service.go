package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=analytics
type Repository interface {
	ListExpenses(ctx context.Context, owner uuid.UUID, from, to time.Time) ([]Entry, error)
	SumBudgets(ctx context.Context, owner uuid.UUID) (decimal.Decimal, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces the server clock used to pick the current month.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) monthExpenses(ctx context.Context, owner uuid.UUID) ([]Entry, time.Time, time.Time, error) {
	from, to := MonthRange(s.now())

	entries, err := s.repo.ListExpenses(ctx, owner, from, to)
	if err != nil {
		return nil, from, to, fmt.Errorf("listing month expenses: %w", err)
	}

	return entries, from, to, nil
}

// CategorySpending sums this month's expenses per category, in order of first appearance.
func (s *Service) CategorySpending(ctx context.Context, owner uuid.UUID) ([]CategoryTotal, error) {
	entries, _, _, err := s.monthExpenses(ctx, owner)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	totals := make([]CategoryTotal, 0)

	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category})
		}

		totals[i].TotalAmount = totals[i].TotalAmount.Add(e.Amount)
	}

	for i := range totals {
		totals[i].TotalAmount = totals[i].TotalAmount.Round(2)
	}

	return totals, nil
}

// BudgetSummary compares lifetime budgets against this month's expenses.
// The windows differ on purpose; dashboards have always shown it this way.
func (s *Service) BudgetSummary(ctx context.Context, owner uuid.UUID) (*BudgetSummary, error) {
	budgets, err := s.repo.SumBudgets(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("summing budgets: %w", err)
	}

	entries, _, _, err := s.monthExpenses(ctx, owner)
	if err != nil {
		return nil, err
	}

	expenses := decimal.Zero
	for _, e := range entries {
		expenses = expenses.Add(e.Amount)
	}

	return &BudgetSummary{
		TotalBudget:            budgets.Round(2),
		TotalExpensesThisMonth: expenses.Round(2),
	}, nil
}

// DailyExpenses returns one total per day of the current month, zero-filled.
func (s *Service) DailyExpenses(ctx context.Context, owner uuid.UUID) ([]DailyTotal, error) {
	entries, from, to, err := s.monthExpenses(ctx, owner)
	if err != nil {
		return nil, err
	}

	days := make([]DailyTotal, to.Day())
	for i := range days {
		days[i] = DailyTotal{Day: i + 1, Total: decimal.Zero}
	}

	for _, e := range entries {
		day := e.CreatedAt.In(from.Location()).Day()
		days[day-1].Total = days[day-1].Total.Add(e.Amount)
	}

	for i := range days {
		days[i].Total = days[i].Total.Round(2)
	}

	return days, nil
}
