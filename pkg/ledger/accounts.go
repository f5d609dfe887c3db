package ledger

import (
	"context"
	"fmt"

	"github.com/ledgerhouse/member-ledger/pkg/identity"
	"github.com/ledgerhouse/member-ledger/pkg/models"
)

// CreateAccount onboards a new account. Admin only. New accounts start active
// and default to the member role.
func (s *Service) CreateAccount(ctx context.Context, ident identity.Identity, accountID, ownerName string, role models.Role) (*models.Account, error) {
	if !ident.IsAdmin() {
		return nil, fmt.Errorf("create account: %w", identity.ErrForbidden)
	}

	if accountID == "" || ownerName == "" {
		return nil, fmt.Errorf("account id and owner name are required")
	}
	if role == "" {
		role = models.RoleMember
	}

	account := &models.Account{
		AccountId: accountID,
		OwnerName: ownerName,
		Role:      role,
		Active:    true,
	}
	return s.Store.CreateAccount(ctx, account)
}

// ListAccounts returns all accounts. Admin only.
func (s *Service) ListAccounts(ctx context.Context, ident identity.Identity) ([]models.Account, error) {
	if !ident.IsAdmin() {
		return nil, fmt.Errorf("list accounts: %w", identity.ErrForbidden)
	}
	return s.Store.ListAccounts(ctx)
}
