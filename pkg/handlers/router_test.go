package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ledgerhouse/member-ledger/pkg/api"
	"github.com/ledgerhouse/member-ledger/pkg/identity"
	"github.com/ledgerhouse/member-ledger/pkg/ledger"
	"github.com/ledgerhouse/member-ledger/pkg/models"
	"github.com/ledgerhouse/member-ledger/pkg/statement"
	"github.com/ledgerhouse/member-ledger/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// tokenAuthenticator maps fixed tokens to identities.
type tokenAuthenticator map[string]identity.Identity

func (a tokenAuthenticator) Resolve(ctx context.Context, token string) (identity.Identity, error) {
	ident, ok := a[token]
	if !ok {
		return identity.Identity{}, errors.New("unknown token")
	}
	return ident, nil
}

var testAuth = tokenAuthenticator{
	"member-token": {AccountId: "acct-1", Role: models.RoleMember},
	"admin-token":  {AccountId: "admin-1", Role: models.RoleAdmin},
}

func newTestRouter(mockStore *mocks.Storage) http.Handler {
	svc := ledger.NewService(mockStore, nil, nil, ledger.Policy{})
	gen := statement.NewGenerator(mockStore, statement.Institution{
		Name:    "Manchester Credit Union",
		Address: "2 Maybury Street, Gorton M18 8GP, United Kingdom",
	})
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return NewRouter(svc, gen, testAuth, logger)
}

func TestRouter(t *testing.T) {
	account := &models.Account{AccountId: "acct-1", OwnerName: "J Smith", Active: true}

	t.Run("Rejects Missing Token", func(t *testing.T) {
		router := newTestRouter(new(mocks.Storage))

		req := httptest.NewRequest(http.MethodGet, "/balance", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Rejects Unknown Token", func(t *testing.T) {
		router := newTestRouter(new(mocks.Storage))

		req := httptest.NewRequest(http.MethodGet, "/balance", nil)
		req.Header.Set("Authorization", "Bearer forged")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Member Reads Own Balance", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		approved := []models.Transaction{
			{Id: "tx-c", AccountId: "acct-1", Type: models.CREDIT, Amount: 10000, Status: models.APPROVED},
		}
		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(account, nil)
		mockStore.On("ListTransactionsByAccount", mock.Anything, "acct-1", mock.Anything).Return(approved, nil)

		router := newTestRouter(mockStore)

		req := httptest.NewRequest(http.MethodGet, "/balance", nil)
		req.Header.Set("Authorization", "Bearer member-token")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.Balance
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, int64(10000), returned.Balance)
	})

	t.Run("Member Cannot Reach Admin Queue", func(t *testing.T) {
		router := newTestRouter(new(mocks.Storage))

		req := httptest.NewRequest(http.MethodGet, "/admin/pending", nil)
		req.Header.Set("Authorization", "Bearer member-token")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Admin Decides By Path Parameter", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		decided := &models.Transaction{Id: "tx-1", AccountId: "acct-1", Status: models.APPROVED, DecidedBy: "admin-1"}
		mockStore.On("DecideTransaction", mock.Anything, "tx-1", models.APPROVED, "admin-1").Return(decided, nil)

		router := newTestRouter(mockStore)

		body, _ := json.Marshal(api.Decision{Decision: "approve"})
		req := httptest.NewRequest(http.MethodPost, "/admin/transactions/tx-1/decision", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer admin-token")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Statement Download", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(account, nil)
		mockStore.On("ListTransactionsByDateRange", mock.Anything, "acct-1", mock.Anything, mock.Anything).Return([]models.Transaction{}, nil)

		router := newTestRouter(mockStore)

		req := httptest.NewRequest(http.MethodGet, "/statement?start=2025-01-01&end=2025-01-31", nil)
		req.Header.Set("Authorization", "Bearer member-token")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	})

	t.Run("Transaction By Id", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		tx := &models.Transaction{Id: "tx-1", AccountId: "acct-1", Status: models.PENDING}
		mockStore.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)

		router := newTestRouter(mockStore)

		req := httptest.NewRequest(http.MethodGet, "/transactions/tx-1", nil)
		req.Header.Set("Authorization", "Bearer member-token")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
