package record

import (
	"context"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 30
	MaxLimit     = 100
)

// SortKey is the ordering requested by the client.
type SortKey string

const (
	SortDateAsc    SortKey = "date-asc"
	SortDateDesc   SortKey = "date-desc"
	SortAmountAsc  SortKey = "amount-asc"
	SortAmountDesc SortKey = "amount-desc"
	SortAlphaAsc   SortKey = "alpha-asc"
	SortAlphaDesc  SortKey = "alpha-desc"
)

// ParseSort reports false for anything outside the six known keys.
func ParseSort(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortDateAsc, SortDateDesc, SortAmountAsc, SortAmountDesc, SortAlphaAsc, SortAlphaDesc:
		return k, true
	}

	return SortDateDesc, false
}

// Filter holds the predicates that are always evaluated by the store.
type Filter struct {
	Category string
	From     *time.Time
	To       *time.Time
}

// Query describes one page of a user's records.
type Query struct {
	Filter

	Page   int
	Limit  int
	Search string
	Sort   SortKey
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ParseQuery normalises list parameters. Malformed values never fail the
// request: they fall back to defaults, and an unknown sort key is logged.
func ParseQuery(ctx context.Context, v url.Values) Query {
	q := Query{
		Page:   clamp(atoiOr(v.Get("page"), DefaultPage), 1, math.MaxInt32),
		Limit:  clamp(atoiOr(v.Get("limit"), DefaultLimit), 1, MaxLimit),
		Search: strings.TrimSpace(v.Get("search")),
	}

	q.Category = strings.TrimSpace(v.Get("category"))
	q.From = parseBound(v.Get("dateFrom"), false)
	q.To = parseBound(v.Get("dateTo"), true)

	raw := v.Get("sort")
	if raw == "" {
		q.Sort = SortDateDesc
		return q
	}

	sort, ok := ParseSort(raw)
	if !ok {
		slog.WarnContext(ctx, "invalid sort value, using default", "sort", raw, "default", SortDateDesc)
	}

	q.Sort = sort

	return q
}

// atoiOr treats zero like a missing value, so page=0 and limit=0 select the defaults.
func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n == 0 {
		return def
	}

	return n
}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}

// parseBound accepts RFC 3339 timestamps or plain dates. A plain upper bound
// covers the whole day.
func parseBound(s string, upper bool) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}

	if upper {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return &t
}

type Pagination struct {
	Page         int
	Limit        int
	TotalPages   int
	TotalRecords int
}

func NewPagination(q Query, total int) Pagination {
	return Pagination{
		Page:         q.Page,
		Limit:        q.Limit,
		TotalPages:   (total + q.Limit - 1) / q.Limit,
		TotalRecords: total,
	}
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// MatchesSearch reports whether any field contains search, ignoring case.
func MatchesSearch(search string, fields ...string) bool {
	if search == "" {
		return true
	}

	needle := strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}

	return false
}
