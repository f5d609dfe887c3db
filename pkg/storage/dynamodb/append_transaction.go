package dynamodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/ledgerhouse/member-ledger/pkg/models"
)

// AppendTransaction appends a new transaction record to the ledger.
// The server assigns the id and creation timestamp and forces the status to
// pending: nothing enters the ledger already settled. UUIDv7 ids sort by
// creation time, which keeps ids monotonically ordered.
func (s *Store) AppendTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transaction id: %w", err)
	}

	tx.Id = id.String()
	tx.Status = models.PENDING
	tx.CreatedAt = time.Now().UTC()
	tx.DecidedAt = nil
	tx.DecidedBy = ""

	slog.Log(ctx, slog.LevelDebug, "appending transaction", "transaction", tx)

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.TransactionsTableName),
		Item:                txAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return nil, unavailable("failed to append transaction", err)
	}

	return tx, nil
}
