package events

import "time"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeBalanceUpdate is sent to members when a decision changes
	// their visible balance.
	MessageTypeBalanceUpdate MessageType = "balanceUpdate"
	// MessageTypePendingReminder is sent to admins about transactions
	// awaiting review.
	MessageTypePendingReminder MessageType = "pendingReminder"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// BalanceUpdatePayload is the payload for a balanceUpdate message.
type BalanceUpdatePayload struct {
	AccountID     string `json:"account_id"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	NewBalance    int64  `json:"new_balance"`
}

// PendingReminderPayload is the payload for a pendingReminder message.
type PendingReminderPayload struct {
	TransactionID string    `json:"transaction_id"`
	AccountID     string    `json:"account_id"`
	Amount        int64     `json:"amount"`
	PendingSince  time.Time `json:"pending_since"`
}
