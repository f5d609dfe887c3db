package statements

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ledgerhouse/member-ledger/pkg/identity"
	"github.com/ledgerhouse/member-ledger/pkg/models"
	"github.com/ledgerhouse/member-ledger/pkg/statement"
	"github.com/ledgerhouse/member-ledger/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var member = identity.Identity{AccountId: "acct-1", Role: models.RoleMember}

func asMember(req *http.Request) *http.Request {
	return req.WithContext(identity.NewContext(req.Context(), member))
}

func newHandler(mockStore *mocks.Storage) *StatementsHandler {
	inst := statement.Institution{
		Name:    "Manchester Credit Union",
		Address: "2 Maybury Street, Gorton M18 8GP, United Kingdom",
	}
	return NewStatementsHandler(statement.NewGenerator(mockStore, inst))
}

func TestGenerateStatement(t *testing.T) {
	account := &models.Account{AccountId: "acct-1", OwnerName: "J Smith", Active: true}
	txs := []models.Transaction{
		{Id: "tx-1", AccountId: "acct-1", Type: models.CREDIT, Amount: 10000, Status: models.APPROVED, CreatedAt: time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC), Description: "Credit"},
	}

	t.Run("Tabular Download", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(account, nil)
		mockStore.On("ListTransactionsByDateRange", mock.Anything, "acct-1", mock.Anything, mock.Anything).Return(txs, nil)

		h := newHandler(mockStore)

		req := asMember(httptest.NewRequest(http.MethodGet, "/statement?start=2025-01-01&end=2025-01-31", nil))
		rr := httptest.NewRecorder()

		h.GenerateStatement(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="statement_2025-01-01_to_2025-01-31.csv"`, rr.Header().Get("Content-Disposition"))
		assert.Contains(t, rr.Body.String(), "Date,Status,Type,Amount,Description\n")
		assert.Contains(t, rr.Body.String(), "01/01/2025 10:30:00,approved,credit,100.00,Credit\n")
	})

	t.Run("Document Format", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(account, nil)
		mockStore.On("ListTransactionsByDateRange", mock.Anything, "acct-1", mock.Anything, mock.Anything).Return(txs, nil)

		h := newHandler(mockStore)

		req := asMember(httptest.NewRequest(http.MethodGet, "/statement?start=2025-01-01&end=2025-01-31&format=document", nil))
		rr := httptest.NewRecorder()

		h.GenerateStatement(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Body.String(), "Total credits (approved): 100.00")
	})

	t.Run("Missing Dates", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		h := newHandler(mockStore)

		req := asMember(httptest.NewRequest(http.MethodGet, "/statement", nil))
		rr := httptest.NewRecorder()

		h.GenerateStatement(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Malformed Date", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		h := newHandler(mockStore)

		req := asMember(httptest.NewRequest(http.MethodGet, "/statement?start=January&end=2025-01-31", nil))
		rr := httptest.NewRecorder()

		h.GenerateStatement(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Unknown Format", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		h := newHandler(mockStore)

		req := asMember(httptest.NewRequest(http.MethodGet, "/statement?start=2025-01-01&end=2025-01-31&format=pdf", nil))
		rr := httptest.NewRecorder()

		h.GenerateStatement(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Start After End", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		h := newHandler(mockStore)

		req := asMember(httptest.NewRequest(http.MethodGet, "/statement?start=2025-02-01&end=2025-01-31", nil))
		rr := httptest.NewRecorder()

		h.GenerateStatement(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
