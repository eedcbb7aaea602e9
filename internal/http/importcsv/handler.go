package importcsv

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/budgetease/internal/http/render"
	"github.com/MrJamesThe3rd/budgetease/internal/http/session"
	"github.com/MrJamesThe3rd/budgetease/internal/importer"
	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

// maxUpload bounds the multipart body, file included.
const maxUpload = 10 << 20

type Handler struct {
	imports *importer.Service
	records *record.Service
	kind    record.Kind
}

func NewHandler(imports *importer.Service, records *record.Service, kind record.Kind) *Handler {
	return &Handler{
		imports: imports,
		records: records,
		kind:    kind,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/import", h.importCSV)
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)

	if err := r.ParseMultipartForm(maxUpload); err != nil {
		render.Error(w, r, fmt.Errorf("%w: failed to parse form", render.ErrBadRequest))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		render.Error(w, r, fmt.Errorf("%w: file field is required", render.ErrBadRequest))
		return
	}
	defer file.Close()

	owner := session.Owner(r)

	params, err := h.imports.Import(r.Context(), owner, h.kind, file)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	created, err := h.records.CreateBatch(r.Context(), owner, h.kind, params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	msg := fmt.Sprintf("Imported %d %ss", len(created), strings.ToLower(string(h.kind)))
	render.Created(w, r, msg, importResponse{Imported: len(created)})
}
