package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/ledgerhouse/member-ledger/pkg/models"
)

// AddConnection registers a WebSocket connection ID.
func (s *Store) AddConnection(ctx context.Context, connectionID string) error {
	conn := models.Connection{
		ConnectionId: connectionID,
		CreatedAt:    time.Now().UTC(),
	}

	connAV, err := attributevalue.MarshalMap(conn)
	if err != nil {
		return fmt.Errorf("failed to marshal connection: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.ConnectionsTableName),
		Item:      connAV,
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return unavailable("failed to add connection", err)
	}

	return nil
}

// RemoveConnection deregisters a WebSocket connection ID.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"connection_id": connectionID})
	if err != nil {
		return fmt.Errorf("failed to marshal connection ID: %w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(s.ConnectionsTableName),
		Key:       key,
	}

	if _, err := s.Client.DeleteItem(ctx, input); err != nil {
		return unavailable("failed to remove connection", err)
	}

	return nil
}

// GetAllConnections retrieves all registered connection IDs.
func (s *Store) GetAllConnections(ctx context.Context) ([]string, error) {
	input := &dynamodb.ScanInput{
		TableName:            aws.String(s.ConnectionsTableName),
		ProjectionExpression: aws.String("connection_id"),
	}

	var ids []string
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, unavailable("failed to scan connections table", err)
		}

		var conns []models.Connection
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &conns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
		}
		for _, c := range conns {
			ids = append(ids, c.ConnectionId)
		}

		if len(result.LastEvaluatedKey) == 0 {
			return ids, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}
