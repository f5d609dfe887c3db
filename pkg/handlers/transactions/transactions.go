package transactions

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ledgerhouse/member-ledger/pkg/api"
	"github.com/ledgerhouse/member-ledger/pkg/handlers/respond"
	"github.com/ledgerhouse/member-ledger/pkg/ledger"
	"github.com/ledgerhouse/member-ledger/pkg/mapping"
)

// TransactionsHandler holds the dependencies for transaction-related handlers.
type TransactionsHandler struct {
	Ledger *ledger.Service
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(svc *ledger.Service) *TransactionsHandler {
	return &TransactionsHandler{Ledger: svc}
}

// SubmitWithdrawal handles the logic for submitting a withdrawal request.
// The created transaction is returned pending; it affects balance only once
// approved.
func (h *TransactionsHandler) SubmitWithdrawal(w http.ResponseWriter, r *http.Request) {
	ident, ok := respond.Caller(w, r)
	if !ok {
		return
	}

	var req api.NewWithdrawal
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	created, err := h.Ledger.SubmitWithdrawal(r.Context(), ident, ident.AccountId, req.Amount, mapping.ToDomainDestination(&req), req.Description)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiTransaction(created))
}

// ListTransactions handles the logic for retrieving the caller's
// transactions.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ident, ok := respond.Caller(w, r)
	if !ok {
		return
	}

	txs, err := h.Ledger.ListTransactions(r.Context(), ident, ident.AccountId)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiTransactions(txs))
}

// GetTransactionById handles the logic for retrieving a transaction by its ID.
func (h *TransactionsHandler) GetTransactionById(w http.ResponseWriter, r *http.Request, transactionId string) {
	ident, ok := respond.Caller(w, r)
	if !ok {
		return
	}

	tx, err := h.Ledger.GetTransaction(r.Context(), ident, transactionId)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}
