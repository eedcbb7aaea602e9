package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/budgetease/internal/http/analytics"
	"github.com/MrJamesThe3rd/budgetease/internal/http/auth"
	"github.com/MrJamesThe3rd/budgetease/internal/http/contact"
	"github.com/MrJamesThe3rd/budgetease/internal/http/export"
	"github.com/MrJamesThe3rd/budgetease/internal/http/importcsv"
	"github.com/MrJamesThe3rd/budgetease/internal/http/matching"
	"github.com/MrJamesThe3rd/budgetease/internal/http/profile"
	"github.com/MrJamesThe3rd/budgetease/internal/http/record"
	"github.com/MrJamesThe3rd/budgetease/internal/http/session"
	"github.com/MrJamesThe3rd/budgetease/internal/http/transaction"
)

// Kind groups the handlers mounted under one record kind's prefix.
type Kind struct {
	Records  *record.Handler
	Import   *importcsv.Handler
	Matching *matching.Handler
}

func (k Kind) routes(r chi.Router) {
	k.Records.Routes(r)
	k.Import.Routes(r)
	k.Matching.Routes(r)
}

type Handlers struct {
	Auth         *auth.Handler
	Profile      *profile.Handler
	Budgets      Kind
	Expenses     Kind
	Transactions *transaction.Handler
	Export       *export.Handler
	Analytics    *analytics.Handler
	Contact      *contact.Handler
}

// New builds the API router. allowedOrigin is the frontend allowed to send
// credentialed requests.
func New(h Handlers, sessions *session.Manager, allowedOrigin string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Auth.Routes(r)
		})

		r.Route("/contact", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Contact.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(sessions.Require)

			r.Route("/budget", h.Budgets.routes)
			r.Route("/expense", h.Expenses.routes)

			r.Route("/transactions", func(r chi.Router) {
				h.Transactions.Routes(r)
				h.Export.Routes(r)
			})

			r.Route("/analytics", h.Analytics.Routes)
			r.Route("/dashboard", h.Profile.DashboardRoutes)

			r.Route("/profile", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Profile.Routes(r)
			})
		})
	})

	return router
}
