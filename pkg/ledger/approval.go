package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ledgerhouse/member-ledger/pkg/events"
	"github.com/ledgerhouse/member-ledger/pkg/identity"
	"github.com/ledgerhouse/member-ledger/pkg/models"
	"github.com/ledgerhouse/member-ledger/pkg/queue"
)

// Decision is an admin verdict on a pending transaction.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// status maps a decision to the terminal transaction status it produces.
func (d Decision) status() (models.TransactionStatus, error) {
	switch d {
	case DecisionApprove:
		return models.APPROVED, nil
	case DecisionReject:
		return models.REJECTED, nil
	default:
		return "", fmt.Errorf("unknown decision %q", string(d))
	}
}

// Decide moves a pending transaction to approved or rejected. Only admins may
// decide. The status change is atomic in the store: a duplicate decision
// observes storage.ErrAlreadyDecided rather than silently succeeding, and the
// balance implied by an approval is visible to the next read.
func (s *Service) Decide(ctx context.Context, ident identity.Identity, txID string, decision Decision) (*models.Transaction, error) {
	if !ident.IsAdmin() {
		return nil, fmt.Errorf("decide transaction: %w", identity.ErrForbidden)
	}

	status, err := decision.status()
	if err != nil {
		return nil, err
	}

	decided, err := s.Store.DecideTransaction(ctx, txID, status, ident.AccountId)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, queue.KindDecision, decided)
	s.publishBalance(ctx, decided)

	return decided, nil
}

// ListPending returns the admin triage queue, oldest first.
func (s *Service) ListPending(ctx context.Context, ident identity.Identity) ([]models.Transaction, error) {
	if !ident.IsAdmin() {
		return nil, fmt.Errorf("list pending transactions: %w", identity.ErrForbidden)
	}
	return s.Store.ListPendingTransactions(ctx)
}

// publishBalance pushes the owner's fresh balance after a decision. Failures
// are logged, never surfaced: the decision has already been durably recorded.
func (s *Service) publishBalance(ctx context.Context, tx *models.Transaction) {
	if s.Publisher == nil {
		return
	}

	txs, err := s.approvedTransactions(ctx, tx.AccountId)
	if err != nil {
		slog.Error("failed to fold balance for websocket message", "accountId", tx.AccountId, "error", err)
		return
	}
	snap := models.FoldBalance(txs)

	msg := events.Message{
		Type: events.MessageTypeBalanceUpdate,
		Payload: events.BalanceUpdatePayload{
			AccountID:     tx.AccountId,
			TransactionID: tx.Id,
			Status:        string(tx.Status),
			NewBalance:    snap.Balance,
		},
	}
	if err := s.Publisher.Publish(ctx, msg); err != nil {
		slog.Error("failed to publish websocket message", "accountId", tx.AccountId, "error", err)
	}
}
