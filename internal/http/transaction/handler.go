package transaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/budgetease/internal/http/render"
	"github.com/MrJamesThe3rd/budgetease/internal/http/session"
	"github.com/MrJamesThe3rd/budgetease/internal/record"
	"github.com/MrJamesThe3rd/budgetease/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/get", h.list)
}

// ParseParams reads the shared query parameters plus the type selector.
func ParseParams(r *http.Request) transaction.ListParams {
	v := r.URL.Query()

	return transaction.ListParams{
		Query: record.ParseQuery(r.Context(), v),
		Type:  transaction.ParseType(v.Get("type")),
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.List(r.Context(), session.Owner(r), ParseParams(r))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Page(w, r, toResponseList(page.Items), page.Pagination)
}
