package importer

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/budgetease/internal/importer/csvfile"
	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

// Row is one parsed line of an uploaded file.
type Row = csvfile.Row

//go:generate mockgen -source=importer.go -destination=importer_mock.go -package=importer
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
}

type CategorySuggester interface {
	SuggestCategory(ctx context.Context, owner uuid.UUID, kind record.Kind, name string) (string, error)
}
