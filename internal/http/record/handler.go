package record

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budgetease/internal/http/render"
	"github.com/MrJamesThe3rd/budgetease/internal/http/session"
	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

// Handler serves one record kind; budgets and expenses each get their own.
type Handler struct {
	svc  *record.Service
	kind record.Kind
	// title is the kind as it appears in messages, e.g. "Budget".
	title string
}

func NewHandler(svc *record.Service, kind record.Kind) *Handler {
	return &Handler{
		svc:   svc,
		kind:  kind,
		title: strings.ToUpper(string(kind[:1])) + string(kind[1:]),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/add", h.create)
	r.Get("/", h.list)
	r.Head("/", h.probe)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createRequest struct {
	Category string           `json:"category"`
	Name     string           `json:"name"`
	Amount   *decimal.Decimal `json:"amount"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	params := record.CreateParams{Category: req.Category, Name: req.Name}
	if req.Amount != nil {
		params.Amount = *req.Amount
	}

	rec, err := h.svc.Create(r.Context(), session.Owner(r), h.kind, params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, r, h.title+" added successfully", toResponse(rec))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := record.ParseQuery(r.Context(), r.URL.Query())

	page, err := h.svc.List(r.Context(), session.Owner(r), h.kind, q)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Page(w, r, toResponseList(page.Items), page.Pagination)
}

// probe lets clients check the API is reachable without fetching data.
func (h *Handler) probe(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Get(r.Context(), session.Owner(r), h.kind, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	render.OK(w, r, "", toResponse(rec))
}

type updateRequest struct {
	Category *string          `json:"category"`
	Name     *string          `json:"name"`
	Amount   *decimal.Decimal `json:"amount"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	rec, err := h.svc.Update(r.Context(), session.Owner(r), h.kind, id, record.UpdateParams{
		Category: req.Category,
		Name:     req.Name,
		Amount:   req.Amount,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	render.OK(w, r, h.title+" updated successfully", toResponse(rec))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), session.Owner(r), h.kind, id); err != nil {
		h.fail(w, r, err)
		return
	}

	render.OK(w, r, h.title+" deleted successfully", nil)
}

func (h *Handler) id(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Fail(w, r, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}

	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, record.ErrNotFound) {
		render.Fail(w, r, http.StatusNotFound, h.title+" not found")
		return
	}

	render.Error(w, r, err)
}
