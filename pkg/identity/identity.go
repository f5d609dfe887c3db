// Package identity carries the caller identity resolved by the external
// identity provider. The core never verifies credentials itself; it consumes
// an already-verified (accountId, role) pair and passes it explicitly with
// each call, instead of keeping any process-wide session state.
package identity

import (
	"context"
	"errors"

	"github.com/ledgerhouse/member-ledger/pkg/models"
)

// ErrForbidden is returned when the caller identity does not permit the
// requested operation.
var ErrForbidden = errors.New("forbidden")

// Identity is an opaque, already-verified caller identity.
type Identity struct {
	AccountId string
	Role      models.Role
}

// IsAdmin reports whether the identity holds the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// CanAccess reports whether the identity may read or act on the given
// account: owners on their own account, admins on any.
func (id Identity) CanAccess(accountID string) bool {
	return id.IsAdmin() || id.AccountId == accountID
}

// Authenticator resolves a bearer token into an identity. Implementations
// call out to the identity provider; token verification happens there.
type Authenticator interface {
	Resolve(ctx context.Context, token string) (Identity, error)
}

type contextKey struct{}

// NewContext returns a context carrying the identity.
func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the identity placed by the middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
