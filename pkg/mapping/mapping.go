package mapping

import (
	"github.com/ledgerhouse/member-ledger/pkg/api"
	"github.com/ledgerhouse/member-ledger/pkg/models"
)

// ToApiTransaction converts a domain Transaction model to an API Transaction
// model. Destination details never leave the service.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	out := &api.Transaction{
		Id:          tx.Id,
		AccountId:   tx.AccountId,
		Type:        api.TransactionType(tx.Type),
		Amount:      tx.Amount,
		Description: tx.Description,
		Status:      api.TransactionStatus(tx.Status),
		CreatedAt:   tx.CreatedAt,
		DecidedAt:   tx.DecidedAt,
	}
	if tx.DecidedBy != "" {
		out.DecidedBy = &tx.DecidedBy
	}
	return out
}

// ToApiTransactions converts a slice of domain transactions.
func ToApiTransactions(txs []models.Transaction) []*api.Transaction {
	out := make([]*api.Transaction, len(txs))
	for i := range txs {
		out[i] = ToApiTransaction(&txs[i])
	}
	return out
}

// ToApiBalance converts a derived balance snapshot to its API model.
func ToApiBalance(snap *models.BalanceSnapshot) *api.Balance {
	return &api.Balance{
		Balance:      snap.Balance,
		TotalCredits: snap.TotalCredits,
		TotalDebits:  snap.TotalDebits,
	}
}

// ToDomainDestination converts the withdrawal request's payout fields.
func ToDomainDestination(req *api.NewWithdrawal) models.Destination {
	return models.Destination{
		SortCode:          req.SortCode,
		AccountNumber:     req.AccountNumber,
		AccountHolderName: req.AccountHolderName,
	}
}

// ToApiAccount converts a domain Account model to an API Account model.
func ToApiAccount(account *models.Account) *api.Account {
	return &api.Account{
		AccountId: account.AccountId,
		OwnerName: account.OwnerName,
		Role:      string(account.Role),
		Active:    account.Active,
		CreatedAt: account.CreatedAt,
	}
}

// ToApiAccounts converts a slice of domain accounts.
func ToApiAccounts(accounts []models.Account) []*api.Account {
	out := make([]*api.Account, len(accounts))
	for i := range accounts {
		out[i] = ToApiAccount(&accounts[i])
	}
	return out
}
