// Package csvfile reads budget and expense rows from spreadsheet CSV exports.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/budgetease/internal/encoding"
	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

var (
	// ErrInvalidFile wraps every content error so callers can tell a bad upload
	// from an I/O failure.
	ErrInvalidFile = errors.New("invalid csv file")
	ErrNoHeader    = fmt.Errorf("%w: no header row found, expected at least name and amount columns", ErrInvalidFile)
)

// Row is one parsed data line.
type Row struct {
	// Kind is set only when the file carries a type column.
	Kind     *record.Kind
	Category string
	Name     string
	Amount   decimal.Decimal
	Date     *time.Time
}

// delimiters are tried in order until one yields a recognised header.
var delimiters = []rune{';', ',', '\t'}

var dateLayouts = []string{
	time.RFC3339,
	time.DateOnly,
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
}

// Parser auto-detects the charset, delimiter and column layout of a CSV upload.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, _, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	for _, delim := range delimiters {
		rows, err := readRows(data, delim)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, ErrNoHeader
}

func readRows(data []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps canonical column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := canonical(cell); name != "" {
				if _, dup := cols[name]; !dup {
					cols[name] = i
				}
			}
		}

		for i := range profiles {
			if profiles[i].matches(cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// parseRows converts data rows. headerRowNum is the 0-based index of the header
// so errors can name the 1-based line in the file.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Row, error) {
	var out []Row

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		if blank(row) {
			continue
		}

		parsed, err := parseRow(p, cols, row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidFile, rowNum, err)
		}

		out = append(out, parsed)
	}

	return out, nil
}

func parseRow(p *Profile, cols colIndex, row []string) (Row, error) {
	out := Row{
		Name:     cell(row, cols, colName),
		Category: cell(row, cols, colCategory),
	}

	if out.Name == "" {
		return Row{}, errors.New("missing name")
	}

	raw := cell(row, cols, colAmount)

	amount, err := parseAmount(raw)
	if err != nil {
		return Row{}, fmt.Errorf("invalid amount %q", raw)
	}

	if p.Signed {
		amount = amount.Abs()
	}

	out.Amount = amount

	if s := cell(row, cols, colType); s != "" {
		kind := record.Kind(strings.ToLower(s))
		if !kind.Valid() {
			return Row{}, fmt.Errorf("unknown type %q", s)
		}

		out.Kind = &kind
	}

	if s := cell(row, cols, colDate); s != "" {
		date, ok := parseDate(s)
		if !ok {
			return Row{}, fmt.Errorf("invalid date %q", s)
		}

		out.Date = &date
	}

	return out, nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// cell returns the trimmed value of a canonical column, or "" if absent.
func cell(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
