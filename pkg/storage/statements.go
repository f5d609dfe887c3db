package storage

import (
	"context"
	"time"

	"github.com/ledgerhouse/member-ledger/pkg/models"
)

// StatementStore defines the read-only slice of the store needed to build a
// statement: the account header metadata and a closed date range of
// transactions in ledger order.
type StatementStore interface {
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	ListTransactionsByDateRange(ctx context.Context, accountID string, start, end time.Time) ([]models.Transaction, error)
}
