package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ledgerhouse/member-ledger/pkg/identity"
	"github.com/ledgerhouse/member-ledger/pkg/models"
	"github.com/ledgerhouse/member-ledger/pkg/queue"
)

// SubmitWithdrawal validates and records a withdrawal request as a pending
// debit. A withdrawal never immediately reduces balance; it must clear the
// approval workflow first.
func (s *Service) SubmitWithdrawal(ctx context.Context, ident identity.Identity, accountID string, amount int64, dest models.Destination, description string) (*models.Transaction, error) {
	if !ident.CanAccess(accountID) {
		return nil, fmt.Errorf("submit withdrawal for account %s: %w", accountID, identity.ErrForbidden)
	}

	// Validation order is fixed: amount, then destination, then account
	// state, then the overdraft policy.
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if dest.SortCode == "" || dest.AccountNumber == "" || dest.AccountHolderName == "" {
		return nil, ErrInvalidDestination
	}

	account, err := s.Store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, fmt.Errorf("account %s: %w", accountID, ErrAccountInactive)
	}

	if s.Policy.RejectOverdraft {
		txs, err := s.approvedTransactions(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if snap := models.FoldBalance(txs); amount > snap.Balance {
			return nil, fmt.Errorf("withdrawal of %d exceeds balance %d: %w", amount, snap.Balance, ErrInsufficientFunds)
		}
	}

	if description == "" {
		description = "Withdrawal"
	}

	tx := &models.Transaction{
		AccountId:   accountID,
		Type:        models.DEBIT,
		Amount:      amount,
		Description: description,
		Destination: &dest,
	}

	created, err := s.Store.AppendTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, queue.KindReview, created)
	return created, nil
}

// IssueCredit records an admin-issued credit as a pending transaction.
// Credit issuance reuses the withdrawal validation pattern but needs no
// destination, and it clears the same approval gate before affecting balance.
func (s *Service) IssueCredit(ctx context.Context, ident identity.Identity, accountID string, amount int64, description string) (*models.Transaction, error) {
	if !ident.IsAdmin() {
		return nil, fmt.Errorf("issue credit: %w", identity.ErrForbidden)
	}

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	account, err := s.Store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, fmt.Errorf("account %s: %w", accountID, ErrAccountInactive)
	}

	if description == "" {
		description = "Credit"
	}

	tx := &models.Transaction{
		AccountId:   accountID,
		Type:        models.CREDIT,
		Amount:      amount,
		Description: description,
	}

	created, err := s.Store.AppendTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, queue.KindReview, created)
	return created, nil
}

// notify enqueues a notification without failing the calling operation.
func (s *Service) notify(ctx context.Context, kind queue.Kind, tx *models.Transaction) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Enqueue(ctx, queue.Notification{Kind: kind, Transaction: *tx}); err != nil {
		slog.Error("transaction recorded but notification failed to enqueue", "transactionId", tx.Id, "kind", kind, "error", err)
	}
}
