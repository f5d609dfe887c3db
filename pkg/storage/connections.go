package storage

import "context"

// ConnectionStore defines the interface for the WebSocket connection registry.
type ConnectionStore interface {
	// AddConnection registers a new connection ID.
	AddConnection(ctx context.Context, connectionID string) error

	// RemoveConnection deregisters a connection ID.
	RemoveConnection(ctx context.Context, connectionID string) error

	// GetAllConnections retrieves all registered connection IDs.
	GetAllConnections(ctx context.Context) ([]string, error)
}
