package record_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantPage  int
		wantLimit int
		wantSort  record.SortKey
	}{
		{name: "Defaults", raw: "", wantPage: 1, wantLimit: 30, wantSort: record.SortDateDesc},
		{name: "Explicit", raw: "page=3&limit=10&sort=amount-asc", wantPage: 3, wantLimit: 10, wantSort: record.SortAmountAsc},
		{name: "LimitCapped", raw: "limit=500", wantPage: 1, wantLimit: 100, wantSort: record.SortDateDesc},
		{name: "NegativeClamped", raw: "page=-4&limit=-2", wantPage: 1, wantLimit: 1, wantSort: record.SortDateDesc},
		{name: "ZeroMeansDefault", raw: "page=0&limit=0", wantPage: 1, wantLimit: 30, wantSort: record.SortDateDesc},
		{name: "NonNumeric", raw: "page=abc&limit=x", wantPage: 1, wantLimit: 30, wantSort: record.SortDateDesc},
		{name: "SortCaseInsensitive", raw: "sort=ALPHA-DESC", wantPage: 1, wantLimit: 30, wantSort: record.SortAlphaDesc},
		{name: "BogusSortFallsBack", raw: "sort=bogus", wantPage: 1, wantLimit: 30, wantSort: record.SortDateDesc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)

			q := record.ParseQuery(context.Background(), v)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantSort, q.Sort)
		})
	}
}

func TestParseQuery_BogusSortEqualsDateDesc(t *testing.T) {
	bogus := record.ParseQuery(context.Background(), url.Values{"sort": {"bogus"}})
	dateDesc := record.ParseQuery(context.Background(), url.Values{"sort": {"date-desc"}})

	assert.Equal(t, dateDesc, bogus)
}

func TestParseQuery_Filters(t *testing.T) {
	v := url.Values{
		"search":   {"  lunch "},
		"category": {"Food"},
		"dateFrom": {"2025-03-01"},
		"dateTo":   {"2025-03-31"},
	}

	q := record.ParseQuery(context.Background(), v)
	assert.Equal(t, "lunch", q.Search)
	assert.Equal(t, "Food", q.Category)

	require.NotNil(t, q.From)
	require.NotNil(t, q.To)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *q.From)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 999999999, time.UTC), *q.To)
}

func TestParseQuery_BadDateIgnored(t *testing.T) {
	q := record.ParseQuery(context.Background(), url.Values{"dateFrom": {"yesterday"}})
	assert.Nil(t, q.From)
}

func TestNewPagination(t *testing.T) {
	for total := 0; total <= 25; total++ {
		for limit := 1; limit <= 7; limit++ {
			p := record.NewPagination(record.Query{Page: 1, Limit: limit}, total)
			want := total / limit
			if total%limit != 0 {
				want++
			}

			assert.Equal(t, want, p.TotalPages, "total=%d limit=%d", total, limit)
			assert.Equal(t, total, p.TotalRecords)
		}
	}
}

func TestQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, record.Query{Page: 1, Limit: 30}.Offset())
	assert.Equal(t, 20, record.Query{Page: 3, Limit: 10}.Offset())
}

func TestMatchesSearch(t *testing.T) {
	assert.True(t, record.MatchesSearch("", "anything"))
	assert.True(t, record.MatchesSearch("LUN", "Lunch", "Food"))
	assert.True(t, record.MatchesSearch("foo", "Lunch", "Food"))
	assert.False(t, record.MatchesSearch("taxi", "Lunch", "Food"))
}
