package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/budgetease/internal/importer/csvfile"
	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

// FallbackCategory is used when a row has no category and nothing can be suggested.
const FallbackCategory = "Other"

type Service struct {
	parser     Parser
	categories CategorySuggester
}

func NewService(categories CategorySuggester) *Service {
	return &Service{
		parser:     csvfile.NewParser(),
		categories: categories,
	}
}

// NewServiceWithParser is used by tests and alternative file formats.
func NewServiceWithParser(p Parser, categories CategorySuggester) *Service {
	return &Service{parser: p, categories: categories}
}

// Import parses r into create params for kind. Rows typed as the other kind are
// skipped; rows without a category get one suggested from the owner's history.
func (s *Service) Import(ctx context.Context, owner uuid.UUID, kind record.Kind, r io.Reader) ([]record.CreateParams, error) {
	rows, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	params := make([]record.CreateParams, 0, len(rows))

	for _, row := range rows {
		if row.Kind != nil && *row.Kind != kind {
			continue
		}

		category := row.Category
		if category == "" {
			category, err = s.suggest(ctx, owner, kind, row.Name)
			if err != nil {
				return nil, err
			}
		}

		params = append(params, record.CreateParams{
			Category:  category,
			Name:      row.Name,
			Amount:    row.Amount,
			CreatedAt: row.Date,
		})
	}

	return params, nil
}

func (s *Service) suggest(ctx context.Context, owner uuid.UUID, kind record.Kind, name string) (string, error) {
	if s.categories == nil {
		return FallbackCategory, nil
	}

	category, err := s.categories.SuggestCategory(ctx, owner, kind, name)
	if err != nil {
		return "", fmt.Errorf("suggesting category for %q: %w", name, err)
	}

	if category == "" {
		return FallbackCategory, nil
	}

	return category, nil
}
