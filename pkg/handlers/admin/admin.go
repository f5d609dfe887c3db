package admin

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ledgerhouse/member-ledger/pkg/api"
	"github.com/ledgerhouse/member-ledger/pkg/handlers/respond"
	"github.com/ledgerhouse/member-ledger/pkg/ledger"
	"github.com/ledgerhouse/member-ledger/pkg/mapping"
)

// AdminHandler holds the dependencies for admin-only handlers.
type AdminHandler struct {
	Ledger *ledger.Service
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc *ledger.Service) *AdminHandler {
	return &AdminHandler{Ledger: svc}
}

// ListPending handles the logic for listing the review queue of pending
// transactions, oldest first.
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	ident, ok := respond.Caller(w, r)
	if !ok {
		return
	}

	txs, err := h.Ledger.ListPending(r.Context(), ident)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiTransactions(txs))
}

// IssueCredit handles the logic for recording a pending credit against a
// member account.
func (h *AdminHandler) IssueCredit(w http.ResponseWriter, r *http.Request) {
	ident, ok := respond.Caller(w, r)
	if !ok {
		return
	}

	var body api.NewCredit
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request payload: %v", err), http.StatusBadRequest)
		return
	}

	created, err := h.Ledger.IssueCredit(r.Context(), ident, body.AccountId, body.Amount, body.Description)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiTransaction(created))
}

// DecideTransaction handles the logic for approving or rejecting a pending
// transaction by id.
func (h *AdminHandler) DecideTransaction(w http.ResponseWriter, r *http.Request, transactionId string) {
	ident, ok := respond.Caller(w, r)
	if !ok {
		return
	}

	var body api.Decision
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request payload: %v", err), http.StatusBadRequest)
		return
	}

	decision := ledger.Decision(body.Decision)
	if decision != ledger.DecisionApprove && decision != ledger.DecisionReject {
		http.Error(w, fmt.Sprintf("Invalid decision %q: must be approve or reject", body.Decision), http.StatusBadRequest)
		return
	}

	decided, err := h.Ledger.Decide(r.Context(), ident, transactionId, decision)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiTransaction(decided))
}
