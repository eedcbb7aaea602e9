// Package render writes the JSON envelope shared by every API response.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MrJamesThe3rd/budgetease/internal/auth"
	"github.com/MrJamesThe3rd/budgetease/internal/contact"
	"github.com/MrJamesThe3rd/budgetease/internal/importer/csvfile"
	"github.com/MrJamesThe3rd/budgetease/internal/record"
	"github.com/MrJamesThe3rd/budgetease/internal/user"
)

// ErrBadRequest marks malformed request bodies and parameters.
var ErrBadRequest = errors.New("bad request")

const internalError = "Internal server error"

type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page         int `json:"page"`
	Limit        int `json:"limit"`
	TotalPages   int `json:"totalPages"`
	TotalRecords int `json:"totalRecords"`
}

// Decode reads a JSON body into dst, reporting malformed input as ErrBadRequest.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body", ErrBadRequest)
	}

	return nil
}

func JSON(w http.ResponseWriter, r *http.Request, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, r *http.Request, message string, data any) {
	JSON(w, r, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, r *http.Request, message string, data any) {
	JSON(w, r, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func Page(w http.ResponseWriter, r *http.Request, data any, p record.Pagination) {
	JSON(w, r, http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Page:         p.Page,
			Limit:        p.Limit,
			TotalPages:   p.TotalPages,
			TotalRecords: p.TotalRecords,
		},
	})
}

func Fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	JSON(w, r, status, Envelope{Success: false, Message: message})
}

// Error maps a domain error onto a status code. Anything unrecognised is
// logged and answered with a generic 500 so internals never reach clients.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classify(err)

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	Fail(w, r, status, message)
}

var validation = []error{
	ErrBadRequest,
	record.ErrInvalidInput,
	user.ErrInvalidInput,
	contact.ErrInvalidInput,
	csvfile.ErrInvalidFile,
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized, "No token provided"
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusForbidden, "Invalid or expired token"
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, record.ErrForbidden):
		return http.StatusForbidden, "Unauthorized"
	case errors.Is(err, record.ErrNotFound):
		return http.StatusNotFound, "Record not found"
	case errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, user.ErrEmailTaken):
		return http.StatusBadRequest, "Email already in use"
	case errors.Is(err, user.ErrInvalidResetToken):
		return http.StatusBadRequest, "Invalid or expired token"
	}

	for _, sentinel := range validation {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest, detail(err, sentinel)
		}
	}

	return http.StatusInternalServerError, internalError
}

// detail drops the sentinel prefix so clients see only the specific reason.
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")

	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}

	return string(unicode.ToUpper(r)) + msg[size:]
}
