package csvfile_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/budgetease/internal/importer/csvfile"
	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

func parse(t *testing.T, csv string) []csvfile.Row {
	t.Helper()

	rows, err := csvfile.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)

	return rows
}

func TestParser_Semicolon(t *testing.T) {
	rows := parse(t, `Monthly budgets
exported by hand

Name;Category;Amount;Date
Salary;Income;2.500,00;01-03-2025
Side gig;Income;120,50;15-03-2025
`)
	require.Len(t, rows, 2)

	assert.Equal(t, "Salary", rows[0].Name)
	assert.Equal(t, "Income", rows[0].Category)
	assert.Equal(t, "2500", rows[0].Amount.String())
	require.NotNil(t, rows[0].Date)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *rows[0].Date)
	assert.Nil(t, rows[0].Kind)

	assert.Equal(t, "120.5", rows[1].Amount.String())
}

func TestParser_Comma(t *testing.T) {
	rows := parse(t, "name,category,amount\nLunch,Food,12.40\n\"Coffee, large\",Food,\"3,20\"\n")
	require.Len(t, rows, 2)

	assert.Equal(t, "12.4", rows[0].Amount.String())
	assert.Equal(t, "Coffee, large", rows[1].Name)
	assert.Equal(t, "3.2", rows[1].Amount.String())
	assert.Nil(t, rows[0].Date)
}

func TestParser_TransactionsExport(t *testing.T) {
	rows := parse(t, `date,name,category,type,amount,status
2025-03-05T10:00:00Z,Taxi,Travel,expense,-40.00,completed
2025-03-01T09:00:00Z,Salary,Income,budget,1000.00,completed
`)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].Kind)
	assert.Equal(t, record.KindExpense, *rows[0].Kind)
	assert.Equal(t, "40", rows[0].Amount.String(), "exported expenses are negative")

	require.NotNil(t, rows[1].Kind)
	assert.Equal(t, record.KindBudget, *rows[1].Kind)
	assert.Equal(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), *rows[1].Date)
}

func TestParser_HeaderAliases(t *testing.T) {
	rows := parse(t, "Value;Description\n9,99;Streaming\n")
	require.Len(t, rows, 1)

	assert.Equal(t, "Streaming", rows[0].Name)
	assert.Empty(t, rows[0].Category)
	assert.Equal(t, "9.99", rows[0].Amount.String())
}

func TestParser_Windows1252(t *testing.T) {
	utf8CSV := "name;category;amount\nCafé central;Comida;4,50\n"

	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	rows, err := csvfile.NewParser().Parse(bytes.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café central", rows[0].Name)
}

func TestParser_SkipsBlankRows(t *testing.T) {
	rows := parse(t, "name;category;amount\nRent;Housing;750\n;;\n\nGym;Health;30\n")
	assert.Len(t, rows, 2)
}

func TestParser_HeaderOnly(t *testing.T) {
	assert.Empty(t, parse(t, "name;category;amount\n"))
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{"Empty", "", "no header row"},
		{"NoHeader", "foo;bar\n1;2\n", "no header row"},
		{"MissingName", "name;category;amount\n;Food;10\n", "row 2: missing name"},
		{"BadAmount", "name;category;amount\nLunch;Food;abc\n", `row 2: invalid amount "abc"`},
		{"BadDate", "name;category;amount;date\nLunch;Food;10;yesterday\n", `invalid date "yesterday"`},
		{"BadType", "name,category,type,amount\nLunch,Food,income,10\n", `unknown type "income"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := csvfile.NewParser().Parse(strings.NewReader(tt.csv))
			require.ErrorIs(t, err, csvfile.ErrInvalidFile)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
