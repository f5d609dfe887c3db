package storage

import (
	"context"

	"github.com/ledgerhouse/member-ledger/pkg/models"
)

// AccountStore defines the interface for managing accounts.
type AccountStore interface {
	// GetAccount retrieves an account by its ID.
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)

	// CreateAccount creates a new account. It fails with ErrAccountExists if
	// the id is already taken.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]models.Account, error)
}
