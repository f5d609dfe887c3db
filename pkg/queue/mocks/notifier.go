// Package mocks provides testify mocks for the queue interfaces.
package mocks

import (
	"context"

	"github.com/ledgerhouse/member-ledger/pkg/queue"
	"github.com/stretchr/testify/mock"
)

// Notifier is a mock implementation of queue.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Enqueue(ctx context.Context, n queue.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
