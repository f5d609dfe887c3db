package storage

import (
	"context"
	"time"

	"github.com/ledgerhouse/member-ledger/pkg/models"
)

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListTransactionsByAccount retrieves all transactions for an account,
	// optionally restricted to a single status.
	ListTransactionsByAccount(ctx context.Context, accountID string, status *models.TransactionStatus) ([]models.Transaction, error)

	// ListTransactionsByDateRange retrieves an account's transactions with
	// created_at in [start, end], ordered by created_at ascending.
	ListTransactionsByDateRange(ctx context.Context, accountID string, start, end time.Time) ([]models.Transaction, error)

	// ListPendingTransactions retrieves pending transactions across all
	// accounts, oldest first, for admin triage.
	ListPendingTransactions(ctx context.Context) ([]models.Transaction, error)

	// GetStalePendingTransactions retrieves transactions that have been
	// pending for longer than maxAge.
	GetStalePendingTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error)
}

// TransactionWriter defines the interface for appending and deciding
// transactions.
type TransactionWriter interface {
	// AppendTransaction appends a new transaction to the ledger. The store
	// assigns the id and creation timestamp and forces status to pending.
	AppendTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)

	// DecideTransaction atomically moves a pending transaction to approved or
	// rejected, recording who decided and when. It fails with
	// ErrAlreadyDecided if the transaction is not currently pending.
	DecideTransaction(ctx context.Context, txID string, status models.TransactionStatus, decidedBy string) (*models.Transaction, error)
}

// TransactionStore combines the reader and writer interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionWriter
}
