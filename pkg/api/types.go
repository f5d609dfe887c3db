// Package api holds the wire types for the HTTP surface. The shapes mirror
// what the member client sends and expects back.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// TransactionStatus is the wire representation of a transaction status.
type TransactionStatus string

// TransactionType is the wire representation of a transaction type.
type TransactionType string

// Transaction is the API model of a ledger transaction.
type Transaction struct {
	Id          string            `json:"id"`
	AccountId   string            `json:"account_id"`
	Type        TransactionType   `json:"type"`
	Amount      int64             `json:"amount"`
	Description string            `json:"description"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	DecidedAt   *time.Time        `json:"decided_at,omitempty"`
	DecidedBy   *string           `json:"decided_by,omitempty"`
}

// NewWithdrawal is the request body for submitting a withdrawal.
// Amount is in minor units (pence).
type NewWithdrawal struct {
	Amount            int64  `json:"amount"`
	SortCode          string `json:"sort_code"`
	AccountNumber     string `json:"account_number"`
	AccountHolderName string `json:"account_holder_name"`
	Description       string `json:"description,omitempty"`
}

// NewCredit is the request body for an admin-issued credit. The credit still
// has to clear approval before it counts toward balance.
type NewCredit struct {
	AccountId   string `json:"account_id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
}

// Decision is the request body for deciding a pending transaction.
type Decision struct {
	Decision string `json:"decision"` // "approve" or "reject"
}

// Balance is the derived balance view returned to the member client.
type Balance struct {
	Balance      int64 `json:"balance"`
	TotalCredits int64 `json:"total_credits"`
	TotalDebits  int64 `json:"total_debits"`
}

// NewAccount is the request body for admin onboarding of an account.
type NewAccount struct {
	AccountId string `json:"account_id"`
	OwnerName string `json:"owner_name"`
	Role      string `json:"role,omitempty"`
}

// Account is the API model of an account.
type Account struct {
	AccountId string    `json:"account_id"`
	OwnerName string    `json:"owner_name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateStatementParams are the query parameters of the statement endpoint.
// Dates use the YYYY-MM-DD wire format.
type GenerateStatementParams struct {
	Start  openapi_types.Date
	End    openapi_types.Date
	Format *string
}
