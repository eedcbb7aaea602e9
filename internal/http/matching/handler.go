package matching

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/budgetease/internal/http/render"
	"github.com/MrJamesThe3rd/budgetease/internal/http/session"
	"github.com/MrJamesThe3rd/budgetease/internal/matching"
	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

type Handler struct {
	svc  *matching.Service
	kind record.Kind
}

func NewHandler(svc *matching.Service, kind record.Kind) *Handler {
	return &Handler{svc: svc, kind: kind}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest-category", h.suggest)
}

type suggestResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		render.Error(w, r, fmt.Errorf("%w: name query parameter is required", render.ErrBadRequest))
		return
	}

	category, err := h.svc.SuggestCategory(r.Context(), session.Owner(r), h.kind, name)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, r, "", suggestResponse{Name: name, Category: category})
}
