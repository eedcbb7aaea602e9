package matching

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

type Repository interface {
	// FindCategory returns the category of the owner's record whose name is the
	// longest substring of name, or "" when none matches.
	FindCategory(ctx context.Context, owner uuid.UUID, kind record.Kind, name string) (string, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SuggestCategory proposes a category for a new record from the owner's own history.
// Returns empty string if no match found.
func (s *Service) SuggestCategory(ctx context.Context, owner uuid.UUID, kind record.Kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}

	return s.repo.FindCategory(ctx, owner, kind, name)
}
