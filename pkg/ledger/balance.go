package ledger

import (
	"context"
	"fmt"

	"github.com/ledgerhouse/member-ledger/pkg/identity"
	"github.com/ledgerhouse/member-ledger/pkg/models"
)

// Balance derives the account's current position by folding its approved
// transactions. It is computed freshly on every call; there is no cached
// counter that could drift from the ledger when an approval races a read.
func (s *Service) Balance(ctx context.Context, ident identity.Identity, accountID string) (*models.BalanceSnapshot, error) {
	if !ident.CanAccess(accountID) {
		return nil, fmt.Errorf("read balance for account %s: %w", accountID, identity.ErrForbidden)
	}

	if _, err := s.Store.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	txs, err := s.approvedTransactions(ctx, accountID)
	if err != nil {
		return nil, err
	}

	snap := models.FoldBalance(txs)
	return &snap, nil
}

// ListTransactions returns all of an account's transactions in ledger order.
func (s *Service) ListTransactions(ctx context.Context, ident identity.Identity, accountID string) ([]models.Transaction, error) {
	if !ident.CanAccess(accountID) {
		return nil, fmt.Errorf("list transactions for account %s: %w", accountID, identity.ErrForbidden)
	}
	return s.Store.ListTransactionsByAccount(ctx, accountID, nil)
}

// GetTransaction returns a single transaction, restricted to its owner or an
// admin.
func (s *Service) GetTransaction(ctx context.Context, ident identity.Identity, txID string) (*models.Transaction, error) {
	tx, err := s.Store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if !ident.CanAccess(tx.AccountId) {
		return nil, fmt.Errorf("read transaction %s: %w", txID, identity.ErrForbidden)
	}
	return tx, nil
}

func (s *Service) approvedTransactions(ctx context.Context, accountID string) ([]models.Transaction, error) {
	approved := models.APPROVED
	return s.Store.ListTransactionsByAccount(ctx, accountID, &approved)
}
