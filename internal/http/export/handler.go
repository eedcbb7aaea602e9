package export

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/budgetease/internal/export"
	"github.com/MrJamesThe3rd/budgetease/internal/http/render"
	"github.com/MrJamesThe3rd/budgetease/internal/http/session"
	"github.com/MrJamesThe3rd/budgetease/internal/http/transaction"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export", h.download)
}

// download accepts the same filters as the transactions list; page and limit
// are ignored.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer

	// Buffered so a listing failure can still produce a JSON error.
	if _, err := h.svc.Write(r.Context(), &buf, session.Owner(r), transaction.ParseParams(r)); err != nil {
		render.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(h.now())+`"`)

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(r.Context(), "failed to write export", "error", err)
	}
}
