package csvfile

import "strings"

// Canonical column names. Header cells are mapped onto these through aliases.
const (
	colName     = "name"
	colCategory = "category"
	colAmount   = "amount"
	colDate     = "date"
	colType     = "type"
)

var aliases = map[string]string{
	"name":        colName,
	"description": colName,
	"title":       colName,
	"category":    colCategory,
	"amount":      colAmount,
	"value":       colAmount,
	"date":        colDate,
	"created_at":  colDate,
	"createdat":   colDate,
	"type":        colType,
	"kind":        colType,
}

func canonical(header string) string {
	return aliases[strings.ToLower(strings.TrimSpace(header))]
}

// Profile describes one accepted column layout.
type Profile struct {
	Name     string
	Required []string
	// Signed profiles store expenses as negative amounts.
	Signed bool
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:     "transactions export",
		Required: []string{colName, colCategory, colType, colAmount},
		Signed:   true,
	},
	{
		Name:     "records",
		Required: []string{colName, colCategory, colAmount},
	},
	{
		Name:     "uncategorised",
		Required: []string{colName, colAmount},
	},
}

func (p Profile) matches(cols colIndex) bool {
	for _, name := range p.Required {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}
