// Package respond centralizes the JSON encoding and error classification the
// resource handlers share.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ledgerhouse/member-ledger/pkg/identity"
	"github.com/ledgerhouse/member-ledger/pkg/ledger"
	"github.com/ledgerhouse/member-ledger/pkg/statement"
	"github.com/ledgerhouse/member-ledger/pkg/storage"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Error maps a domain error to its HTTP status and writes it. Every failure
// category gets its own status so clients can show an actionable message
// ("already decided" vs "not authorized") instead of a generic error.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrForbidden):
		http.Error(w, "Not authorized for this account", http.StatusForbidden)
	case errors.Is(err, storage.ErrTransactionNotFound),
		errors.Is(err, storage.ErrAccountNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, storage.ErrAlreadyDecided):
		http.Error(w, "Transaction already decided", http.StatusConflict)
	case errors.Is(err, storage.ErrAccountExists):
		http.Error(w, "Account already exists", http.StatusConflict)
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidDestination),
		errors.Is(err, statement.ErrInvalidRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrAccountInactive):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrStoreUnavailable):
		slog.Error("store unavailable", "error", err)
		http.Error(w, "Service temporarily unavailable, retry shortly", http.StatusServiceUnavailable)
	default:
		// The error text may carry internal detail (table names, wrapped SDK
		// errors); log it and keep the response body generic.
		slog.Error("unhandled error", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// Caller extracts the identity placed by the auth middleware, rejecting the
// request with 401 if it is absent.
func Caller(w http.ResponseWriter, r *http.Request) (identity.Identity, bool) {
	ident, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "Missing caller identity", http.StatusUnauthorized)
	}
	return ident, ok
}
