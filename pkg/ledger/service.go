// Package ledger implements the core account ledger: withdrawal and credit
// intake, the admin approval workflow, and on-demand balance aggregation.
// Every transaction enters the ledger pending and only counts toward balance
// once approved.
package ledger

import (
	"github.com/ledgerhouse/member-ledger/pkg/events"
	"github.com/ledgerhouse/member-ledger/pkg/queue"
	"github.com/ledgerhouse/member-ledger/pkg/storage"
)

// Policy holds the configurable behaviors of the ledger.
type Policy struct {
	// RejectOverdraft makes withdrawal intake reject requests that exceed
	// the current approved balance. Off by default: a pending withdrawal
	// never reduces balance, so overdraft requests are left for the admin
	// reviewing them to reject.
	RejectOverdraft bool
}

// Service holds the dependencies of the ledger core.
type Service struct {
	Store     storage.ApiStore
	Notifier  queue.Notifier
	Publisher events.Publisher
	Policy    Policy
}

// NewService creates a new ledger Service. Notifier and Publisher may be nil;
// notification failures never fail the operations that trigger them.
func NewService(store storage.ApiStore, notifier queue.Notifier, publisher events.Publisher, policy Policy) *Service {
	return &Service{
		Store:     store,
		Notifier:  notifier,
		Publisher: publisher,
		Policy:    policy,
	}
}
