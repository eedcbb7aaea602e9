package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/budgetease/internal/analytics"
	"github.com/MrJamesThe3rd/budgetease/internal/auth"
	"github.com/MrJamesThe3rd/budgetease/internal/contact"
	"github.com/MrJamesThe3rd/budgetease/internal/export"
	apihttp "github.com/MrJamesThe3rd/budgetease/internal/http"
	analyticshttp "github.com/MrJamesThe3rd/budgetease/internal/http/analytics"
	authhttp "github.com/MrJamesThe3rd/budgetease/internal/http/auth"
	contacthttp "github.com/MrJamesThe3rd/budgetease/internal/http/contact"
	exporthttp "github.com/MrJamesThe3rd/budgetease/internal/http/export"
	"github.com/MrJamesThe3rd/budgetease/internal/http/importcsv"
	matchinghttp "github.com/MrJamesThe3rd/budgetease/internal/http/matching"
	"github.com/MrJamesThe3rd/budgetease/internal/http/profile"
	recordhttp "github.com/MrJamesThe3rd/budgetease/internal/http/record"
	"github.com/MrJamesThe3rd/budgetease/internal/http/session"
	transactionhttp "github.com/MrJamesThe3rd/budgetease/internal/http/transaction"
	"github.com/MrJamesThe3rd/budgetease/internal/importer"
	"github.com/MrJamesThe3rd/budgetease/internal/mail"
	"github.com/MrJamesThe3rd/budgetease/internal/matching"
	"github.com/MrJamesThe3rd/budgetease/internal/record"
	"github.com/MrJamesThe3rd/budgetease/internal/transaction"
	"github.com/MrJamesThe3rd/budgetease/internal/user"
)

type noCategories struct{}

func (noCategories) FindCategory(context.Context, uuid.UUID, record.Kind, string) (string, error) {
	return "", nil
}

type discardMessages struct{}

func (discardMessages) CreateMessage(_ context.Context, m *contact.Message) error {
	m.ID = uuid.New()
	return nil
}

type testAPI struct {
	handler  http.Handler
	records  *record.MockRepository
	users    *user.MockRepository
	sessions *session.Manager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)
	recordRepo := record.NewMockRepository(ctrl)
	userRepo := user.NewMockRepository(ctrl)

	tokens := auth.NewTokens("test-secret", time.Hour)
	sessions := session.NewManager(tokens, false)

	records := record.NewService(recordRepo)
	users := user.NewService(userRepo, auth.NewHasher(bcrypt.MinCost), mail.NewLogMailer(slog.Default()), user.Config{
		FrontendURL: "http://localhost:3000",
		ResetTTL:    15 * time.Minute,
	})
	categories := matching.NewService(noCategories{})
	imports := importer.NewService(categories)
	transactions := transaction.NewService(records)

	kind := func(k record.Kind) apihttp.Kind {
		return apihttp.Kind{
			Records:  recordhttp.NewHandler(records, k),
			Import:   importcsv.NewHandler(imports, records, k),
			Matching: matchinghttp.NewHandler(categories, k),
		}
	}

	handler := apihttp.New(apihttp.Handlers{
		Auth:         authhttp.NewHandler(users, sessions),
		Profile:      profile.NewHandler(users, records),
		Budgets:      kind(record.KindBudget),
		Expenses:     kind(record.KindExpense),
		Transactions: transactionhttp.NewHandler(transactions),
		Export:       exporthttp.NewHandler(export.NewService(transactions)),
		Analytics:    analyticshttp.NewHandler(analytics.NewService(analytics.NewMockRepository(ctrl))),
		Contact:      contacthttp.NewHandler(contact.NewService(discardMessages{})),
	}, sessions, "http://localhost:3000")

	return &testAPI{handler: handler, records: recordRepo, users: userRepo, sessions: sessions}
}

func (a *testAPI) do(t *testing.T, req *http.Request, owner *uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	if owner != nil {
		rec := httptest.NewRecorder()
		_, err := a.sessions.Start(rec, *owner)
		require.NoError(t, err)

		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	return rec
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page         int `json:"page"`
		Limit        int `json:"limit"`
		TotalPages   int `json:"totalPages"`
		TotalRecords int `json:"totalRecords"`
	} `json:"pagination"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))

	return env
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func TestRouter_RequiresSession(t *testing.T) {
	api := newTestAPI(t)

	for _, target := range []string{"/api/expense", "/api/transactions/get", "/api/analytics/budget-summary", "/api/profile"} {
		rec := api.do(t, httptest.NewRequest(http.MethodGet, target, nil), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/budget", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "forged"})
	rec := api.do(t, req, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_RecordOfAnotherOwner(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()
	id := uuid.New()

	api.records.EXPECT().Get(gomock.Any(), record.KindExpense, id).
		Return(&record.Record{ID: id, UserID: uuid.New(), Kind: record.KindExpense}, nil)

	rec := api.do(t, httptest.NewRequest(http.MethodGet, "/api/expense/"+id.String(), nil), &owner)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized", decode(t, rec).Message)
}

func TestRouter_RecordNotFound(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()
	id := uuid.New()

	api.records.EXPECT().Get(gomock.Any(), record.KindExpense, id).Return(nil, record.ErrNotFound)

	rec := api.do(t, httptest.NewRequest(http.MethodDelete, "/api/expense/"+id.String(), nil), &owner)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Expense not found", decode(t, rec).Message)
}

func TestRouter_InvalidID(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()

	rec := api.do(t, httptest.NewRequest(http.MethodGet, "/api/budget/42", nil), &owner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AddValidation(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"MissingFields", `{"amount": 10}`, "Category, name, and amount are required"},
		{"ZeroAmount", `{"category":"Food","name":"Lunch","amount":0}`, "Amount must be greater than 0"},
		{"MalformedJSON", `{"category":`, "Invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, jsonRequest(http.MethodPost, "/api/budget/add", tt.body), &owner)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			env := decode(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.want, env.Message)
		})
	}
}

func TestRouter_AddBudget(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()

	api.records.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *record.Record) error {
		assert.Equal(t, owner, r.UserID)
		assert.Equal(t, record.KindBudget, r.Kind)
		r.ID = uuid.New()
		r.CreatedAt = time.Now()

		return nil
	})

	rec := api.do(t, jsonRequest(http.MethodPost, "/api/budget/add", `{"category":"Food","name":"Weekly shop","amount":"100.00"}`), &owner)

	require.Equal(t, http.StatusCreated, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, "Budget added successfully", env.Message)

	var data struct {
		Amount float64 `json:"amount"`
		Name   string  `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.InDelta(t, 100.0, data.Amount, 0.001)
	assert.Equal(t, "Weekly shop", data.Name)
}

func TestRouter_ListBogusSortIsDateDesc(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()

	want := record.Query{Page: 1, Limit: 30, Sort: record.SortDateDesc}

	api.records.EXPECT().List(gomock.Any(), record.KindExpense, owner, want).Return(nil, 0, nil).Times(2)

	for _, target := range []string{"/api/expense?sort=bogus", "/api/expense?sort=date-desc"} {
		rec := api.do(t, httptest.NewRequest(http.MethodGet, target, nil), &owner)
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode(t, rec)
		assert.JSONEq(t, `[]`, string(env.Data))
		require.NotNil(t, env.Pagination)
		assert.Equal(t, 0, env.Pagination.TotalPages)
	}
}

func TestRouter_ListClampsLimit(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()

	api.records.EXPECT().
		List(gomock.Any(), record.KindBudget, owner, record.Query{Page: 1, Limit: record.MaxLimit, Sort: record.SortDateDesc}).
		Return(nil, 0, nil)

	rec := api.do(t, httptest.NewRequest(http.MethodGet, "/api/budget?limit=5000&page=-3", nil), &owner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, record.MaxLimit, decode(t, rec).Pagination.Limit)
}

func TestRouter_ProbeWithHead(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()

	rec := api.do(t, httptest.NewRequest(http.MethodHead, "/api/budget", nil), &owner)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestRouter_TransactionsAmountAscPageTwo(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	expenses := []*record.Record{
		{ID: uuid.New(), UserID: owner, Kind: record.KindExpense, Name: "Ten", Amount: decimal.NewFromInt(10), CreatedAt: day},
		{ID: uuid.New(), UserID: owner, Kind: record.KindExpense, Name: "Fifty", Amount: decimal.NewFromInt(50), CreatedAt: day},
		{ID: uuid.New(), UserID: owner, Kind: record.KindExpense, Name: "Thirty", Amount: decimal.NewFromInt(30), CreatedAt: day},
	}

	api.records.EXPECT().ListAll(gomock.Any(), record.KindExpense, owner, record.Filter{}).Return(expenses, nil)

	rec := api.do(t, httptest.NewRequest(http.MethodGet, "/api/transactions/get?type=expense&sort=amount-asc&limit=1&page=2", nil), &owner)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)

	var data []struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Type   string  `json:"type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data, 1)
	assert.Equal(t, "Thirty", data[0].Name)
	assert.InDelta(t, -30.0, data[0].Amount, 0.001)
	assert.Equal(t, "expense", data[0].Type)

	require.NotNil(t, env.Pagination)
	assert.Equal(t, 3, env.Pagination.TotalPages)
	assert.Equal(t, 3, env.Pagination.TotalRecords)
}

func TestRouter_Export(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()

	api.records.EXPECT().ListAll(gomock.Any(), record.KindBudget, owner, gomock.Any()).Return([]*record.Record{
		{ID: uuid.New(), UserID: owner, Kind: record.KindBudget, Name: "Salary", Category: "Income",
			Amount: decimal.NewFromInt(1000), CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)

	rec := api.do(t, httptest.NewRequest(http.MethodGet, "/api/transactions/export?type=budget", nil), &owner)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=\"transactions-")
	assert.Equal(t,
		"date,name,category,type,amount,status\n2025-03-01T00:00:00Z,Salary,Income,budget,1000.00,Completed\n",
		rec.Body.String(),
	)
}

func TestRouter_Import(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "expenses.csv")
	require.NoError(t, err)
	_, err = io.WriteString(fw, "name;category;amount\nLunch;Food;12,50\nCoffee;;3\n")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	api.records.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rs []*record.Record) error {
		require.Len(t, rs, 2)
		assert.Equal(t, owner, rs[0].UserID)
		assert.Equal(t, "12.5", rs[0].Amount.String())
		assert.Equal(t, importer.FallbackCategory, rs[1].Category)

		return nil
	})

	req := httptest.NewRequest(http.MethodPost, "/api/expense/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := api.do(t, req, &owner)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Imported 2 expenses", decode(t, rec).Message)
}

func TestRouter_ImportRejectsBadFile(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "junk.csv")
	require.NoError(t, err)
	_, err = io.WriteString(fw, "hello;world\n")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/expense/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := api.do(t, req, &owner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_SuggestCategoryRequiresName(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()

	rec := api.do(t, httptest.NewRequest(http.MethodGet, "/api/expense/suggest-category", nil), &owner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, httptest.NewRequest(http.MethodGet, "/api/expense/suggest-category?name=Lunch", nil), &owner)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LoginThenVerify(t *testing.T) {
	api := newTestAPI(t)

	hash, err := auth.NewHasher(bcrypt.MinCost).Hash("hunter22")
	require.NoError(t, err)

	u := &user.User{ID: uuid.New(), FullName: "Ada", Email: "ada@example.com", PasswordHash: hash}
	api.users.EXPECT().GetUserByEmail(gomock.Any(), "ada@example.com").Return(u, nil).Times(2)

	rec := api.do(t, jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"wrong"}`), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"hunter22"}`), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), hash)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.AddCookie(cookies[0])

	rec = api.do(t, req, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), u.ID.String())

	rec = api.do(t, httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ContactIsPublic(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, jsonRequest(http.MethodPost, "/api/contact", `{"name":"Ada","email":"ada@example.com"}`), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields required", decode(t, rec).Message)

	rec = api.do(t, jsonRequest(http.MethodPost, "/api/contact", `{"name":"Ada","email":"ada@example.com","message":"Hi"}`), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_DeleteAll(t *testing.T) {
	api := newTestAPI(t)
	owner := uuid.New()

	api.users.EXPECT().GetUser(gomock.Any(), owner).Return(&user.User{ID: owner}, nil)
	api.records.EXPECT().DeleteAllForUser(gomock.Any(), owner).Return(nil)

	rec := api.do(t, httptest.NewRequest(http.MethodDelete, "/api/profile/delete-all", nil), &owner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "Your account remains active")
}
