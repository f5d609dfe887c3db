// Package queue carries notifications between the API service, the reminder
// lambda, and the notify lambda.
package queue

import (
	"context"

	"github.com/ledgerhouse/member-ledger/pkg/models"
)

// Kind identifies what a notification is about.
type Kind string

const (
	// KindReview signals a newly submitted transaction awaiting review.
	KindReview Kind = "review"
	// KindDecision signals a transaction that has just been decided.
	KindDecision Kind = "decision"
	// KindReminder signals a transaction that has sat pending too long.
	KindReminder Kind = "reminder"
)

// Notification is the envelope placed on the queue.
type Notification struct {
	Kind        Kind               `json:"kind"`
	Transaction models.Transaction `json:"transaction"`
}

// Notifier defines the interface for a component that enqueues notifications
// for asynchronous delivery.
type Notifier interface {
	// Enqueue places a notification on the queue.
	Enqueue(ctx context.Context, n Notification) error
}
