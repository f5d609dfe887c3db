package accounts

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ledgerhouse/member-ledger/pkg/api"
	"github.com/ledgerhouse/member-ledger/pkg/handlers/respond"
	"github.com/ledgerhouse/member-ledger/pkg/ledger"
	"github.com/ledgerhouse/member-ledger/pkg/mapping"
	"github.com/ledgerhouse/member-ledger/pkg/models"
)

// AccountsHandler holds the dependencies for account-related handlers.
type AccountsHandler struct {
	Ledger *ledger.Service
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(svc *ledger.Service) *AccountsHandler {
	return &AccountsHandler{Ledger: svc}
}

// CreateAccount handles the logic for onboarding a new member account.
func (h *AccountsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	ident, ok := respond.Caller(w, r)
	if !ok {
		return
	}

	var body api.NewAccount
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request payload: %v", err), http.StatusBadRequest)
		return
	}
	if body.AccountId == "" || body.OwnerName == "" {
		http.Error(w, "account_id and owner_name are required", http.StatusBadRequest)
		return
	}

	created, err := h.Ledger.CreateAccount(r.Context(), ident, body.AccountId, body.OwnerName, models.Role(body.Role))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiAccount(created))
}

// ListAccounts handles the logic for listing every account on the books.
func (h *AccountsHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	ident, ok := respond.Caller(w, r)
	if !ok {
		return
	}

	accounts, err := h.Ledger.ListAccounts(r.Context(), ident)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiAccounts(accounts))
}
