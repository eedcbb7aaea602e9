package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authhttp "github.com/MrJamesThe3rd/budgetease/internal/http/auth"
	"github.com/MrJamesThe3rd/budgetease/internal/http/render"
	"github.com/MrJamesThe3rd/budgetease/internal/http/session"
	"github.com/MrJamesThe3rd/budgetease/internal/record"
	"github.com/MrJamesThe3rd/budgetease/internal/user"
)

type Handler struct {
	users   *user.Service
	records *record.Service
}

func NewHandler(users *user.Service, records *record.Service) *Handler {
	return &Handler{users: users, records: records}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/update", h.update)
	r.Delete("/delete-all", h.deleteAll)
}

// DashboardRoutes serves the basic identity shown on the dashboard.
func (h *Handler) DashboardRoutes(r chi.Router) {
	r.Get("/", h.dashboard)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), session.Owner(r))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, r, "", authhttp.ToUserResponse(u))
}

type updateRequest struct {
	FullName  *string `json:"fullName"`
	Email     *string `json:"email"`
	AvatarURL *string `json:"avatarUrl"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	u, changed, err := h.users.UpdateProfile(r.Context(), session.Owner(r), user.ProfileParams{
		FullName:  req.FullName,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	msg := "Profile updated successfully"
	if !changed {
		msg = "No changes provided"
	}

	render.OK(w, r, msg, authhttp.ToUserResponse(u))
}

// deleteAll removes every budget and expense but keeps the account.
func (h *Handler) deleteAll(w http.ResponseWriter, r *http.Request) {
	owner := session.Owner(r)

	if _, err := h.users.Get(r.Context(), owner); err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.records.DeleteAll(r.Context(), owner); err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, r, "All budgets and expenses deleted successfully. Your account remains active.", nil)
}

type dashboardResponse struct {
	User dashboardUser `json:"user"`
}

type dashboardUser struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), session.Owner(r))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, r, "Dashboard data retrieved", dashboardResponse{
		User: dashboardUser{ID: u.ID.String(), FullName: u.FullName, Email: u.Email},
	})
}
