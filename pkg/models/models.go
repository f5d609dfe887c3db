package models

import (
	"time"
)

// TransactionStatus defines the possible states of a transaction.
type TransactionStatus string

const (
	PENDING  TransactionStatus = "pending"
	APPROVED TransactionStatus = "approved"
	REJECTED TransactionStatus = "rejected"
)

// TransactionType defines the direction of a transaction relative to the account.
type TransactionType string

const (
	CREDIT TransactionType = "credit"
	DEBIT  TransactionType = "debit"
)

// Role defines the privilege level of an account.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Destination is the payout target of a withdrawal.
type Destination struct {
	SortCode          string `json:"sort_code" dynamodbav:"sort_code"`
	AccountNumber     string `json:"account_number" dynamodbav:"account_number"`
	AccountHolderName string `json:"account_holder_name" dynamodbav:"account_holder_name"`
}

// Transaction represents the internal domain model for a ledger transaction.
// Amounts are positive minor units (pence); the type field determines the
// sign of the balance contribution. Only approved transactions count toward
// balance.
type Transaction struct {
	Id          string            `json:"id" dynamodbav:"id"`
	AccountId   string            `json:"account_id" dynamodbav:"account_id"`
	Type        TransactionType   `json:"type" dynamodbav:"type"`
	Amount      int64             `json:"amount" dynamodbav:"amount"`
	Description string            `json:"description" dynamodbav:"description"`
	Destination *Destination      `json:"destination,omitempty" dynamodbav:"destination,omitempty"`
	Status      TransactionStatus `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time         `json:"created_at" dynamodbav:"created_at"`
	DecidedAt   *time.Time        `json:"decided_at,omitempty" dynamodbav:"decided_at,omitempty"`
	DecidedBy   string            `json:"decided_by,omitempty" dynamodbav:"decided_by,omitempty"`
}

// Account represents a member or admin account. Balances are never stored
// here; they are folded from the transaction ledger on every read.
type Account struct {
	AccountId string    `json:"account_id" dynamodbav:"account_id"`
	OwnerName string    `json:"owner_name" dynamodbav:"owner_name"`
	Role      Role      `json:"role" dynamodbav:"role"`
	Active    bool      `json:"active" dynamodbav:"active"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// BalanceSnapshot is the derived view of an account's position. It is
// recomputed on demand and never persisted.
type BalanceSnapshot struct {
	Balance      int64 `json:"balance"`
	TotalCredits int64 `json:"total_credits"`
	TotalDebits  int64 `json:"total_debits"`
}

// Connection represents a registered WebSocket connection.
type Connection struct {
	ConnectionId string    `dynamodbav:"connection_id"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
}

// FoldBalance derives a balance snapshot from a set of transactions.
// Pending and rejected transactions never contribute.
func FoldBalance(txs []Transaction) BalanceSnapshot {
	var snap BalanceSnapshot
	for _, tx := range txs {
		if tx.Status != APPROVED {
			continue
		}
		switch tx.Type {
		case CREDIT:
			snap.TotalCredits += tx.Amount
			snap.Balance += tx.Amount
		case DEBIT:
			snap.TotalDebits += tx.Amount
			snap.Balance -= tx.Amount
		}
	}
	return snap
}
