package events

import (
	"context"
)

// Publisher defines the interface for publishing messages to WebSocket
// clients.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
