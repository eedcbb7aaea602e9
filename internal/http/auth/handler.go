package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/budgetease/internal/http/render"
	"github.com/MrJamesThe3rd/budgetease/internal/http/session"
	"github.com/MrJamesThe3rd/budgetease/internal/user"
)

type Handler struct {
	users    *user.Service
	sessions *session.Manager
}

func NewHandler(users *user.Service, sessions *session.Manager) *Handler {
	return &Handler{users: users, sessions: sessions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/verify", h.verify)
	r.Get("/me", h.me)
	r.Post("/forgot-password", h.forgotPassword)
	r.Post("/reset-password", h.resetPassword)
}

// UserResponse never carries the password hash or reset token.
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	FullName  string     `json:"fullName"`
	Email     string     `json:"email"`
	AvatarURL *string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type sessionResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	u, err := h.users.Signup(r.Context(), user.SignupParams{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	token, err := h.sessions.Start(w, u.ID)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, r, "User created successfully", sessionResponse{User: ToUserResponse(u), Token: token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	token, err := h.sessions.Start(w, u.ID)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, r, "Login successful", sessionResponse{User: ToUserResponse(u), Token: token})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.End(w)
	render.OK(w, r, "Logged out successfully", nil)
}

// verify and me answer 401 for any credential problem, unlike protected routes.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identify(w, r)
	if !ok {
		return
	}

	render.OK(w, r, "Authenticated", map[string]uuid.UUID{"userId": id})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identify(w, r)
	if !ok {
		return
	}

	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, r, "", ToUserResponse(u))
}

func (h *Handler) identify(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := h.sessions.Identify(r)
	if err != nil {
		render.Fail(w, r, http.StatusUnauthorized, "Not authenticated")
		return uuid.Nil, false
	}

	return id, true
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.users.RequestPasswordReset(r.Context(), req.Email); err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, r, "Reset link sent to your email", nil)
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.users.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, r, "Password updated successfully", nil)
}
