package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/budgetease/internal/analytics"
	"github.com/MrJamesThe3rd/budgetease/internal/http/render"
	"github.com/MrJamesThe3rd/budgetease/internal/http/session"
)

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/category-spending", h.categorySpending)
	r.Get("/budget-summary", h.budgetSummary)
	r.Get("/daily-expenses", h.dailyExpenses)
}

type categoryTotalResponse struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"`
}

func (h *Handler) categorySpending(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.CategorySpending(r.Context(), session.Owner(r))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]categoryTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = categoryTotalResponse{Category: t.Category, TotalAmount: t.TotalAmount.InexactFloat64()}
	}

	render.OK(w, r, "", resp)
}

type budgetSummaryResponse struct {
	TotalBudget            float64 `json:"totalBudget"`
	TotalExpensesThisMonth float64 `json:"totalExpensesThisMonth"`
}

func (h *Handler) budgetSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.BudgetSummary(r.Context(), session.Owner(r))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, r, "", budgetSummaryResponse{
		TotalBudget:            s.TotalBudget.InexactFloat64(),
		TotalExpensesThisMonth: s.TotalExpensesThisMonth.InexactFloat64(),
	})
}

type dailyTotalResponse struct {
	Day   int     `json:"day"`
	Total float64 `json:"total"`
}

func (h *Handler) dailyExpenses(w http.ResponseWriter, r *http.Request) {
	days, err := h.svc.DailyExpenses(r.Context(), session.Owner(r))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]dailyTotalResponse, len(days))
	for i, d := range days {
		resp[i] = dailyTotalResponse{Day: d.Day, Total: d.Total.InexactFloat64()}
	}

	render.OK(w, r, "", resp)
}
