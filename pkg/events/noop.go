package events

import "context"

// NoOpPublisher is a publisher that does nothing. Used where no WebSocket
// endpoint is configured, and in tests.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, message Message) error {
	return nil
}
