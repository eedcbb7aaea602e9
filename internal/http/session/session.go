// Package session carries the signed credential in an HTTP-only cookie.
package session

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/budgetease/internal/auth"
	"github.com/MrJamesThe3rd/budgetease/internal/http/render"
)

const CookieName = "token"

type Manager struct {
	tokens   *auth.Tokens
	secure   bool
	sameSite http.SameSite
}

// NewManager marks cookies Secure and SameSite=None in production so a
// frontend on another origin can send them; Lax otherwise.
func NewManager(tokens *auth.Tokens, production bool) *Manager {
	m := &Manager{tokens: tokens, sameSite: http.SameSiteLaxMode}

	if production {
		m.secure = true
		m.sameSite = http.SameSiteNoneMode
	}

	return m
}

// Start issues a credential for userID, sets it as a cookie and returns it.
func (m *Manager) Start(w http.ResponseWriter, userID uuid.UUID) (string, error) {
	token, err := m.tokens.Issue(userID)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite,
	})

	return token, nil
}

func (m *Manager) End(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite,
	})
}

// Identify resolves the caller from the cookie. It returns auth.ErrMissingToken
// when there is no cookie and auth.ErrInvalidToken when it does not verify.
func (m *Manager) Identify(r *http.Request) (uuid.UUID, error) {
	c, err := r.Cookie(CookieName)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && c.Value == "") {
		return uuid.Nil, auth.ErrMissingToken
	}

	if err != nil {
		return uuid.Nil, auth.ErrInvalidToken
	}

	return m.tokens.Verify(c.Value)
}

// Require rejects unauthenticated requests and stores the caller's id in the
// request context for auth.UserID.
func (m *Manager) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.Identify(r)
		if err != nil {
			render.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), id)))
	})
}

// Owner returns the id placed in the context by Require.
func Owner(r *http.Request) uuid.UUID {
	id, _ := auth.UserID(r.Context())
	return id
}
