package balances

import (
	"net/http"

	"github.com/ledgerhouse/member-ledger/pkg/handlers/respond"
	"github.com/ledgerhouse/member-ledger/pkg/ledger"
	"github.com/ledgerhouse/member-ledger/pkg/mapping"
)

// BalancesHandler holds the dependencies for balance-related handlers.
type BalancesHandler struct {
	Ledger *ledger.Service
}

// NewBalancesHandler creates a new BalancesHandler.
func NewBalancesHandler(svc *ledger.Service) *BalancesHandler {
	return &BalancesHandler{Ledger: svc}
}

// GetBalance handles the logic for retrieving the caller's balance. The
// snapshot is folded from approved transactions on every request.
func (h *BalancesHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ident, ok := respond.Caller(w, r)
	if !ok {
		return
	}

	snap, err := h.Ledger.Balance(r.Context(), ident, ident.AccountId)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiBalance(snap))
}
