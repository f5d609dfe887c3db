package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ledgerhouse/member-ledger/pkg/models"
	"github.com/ledgerhouse/member-ledger/pkg/storage"
)

// DecideTransaction atomically moves a pending transaction to approved or
// rejected. The status change is a single conditional update on
// status == pending, so two admins deciding the same transaction cannot both
// succeed: the loser observes ErrAlreadyDecided. decided_at and decided_by
// are set exactly once, by the winning update.
func (s *Store) DecideTransaction(ctx context.Context, txID string, status models.TransactionStatus, decidedBy string) (*models.Transaction, error) {
	if status != models.APPROVED && status != models.REJECTED {
		return nil, fmt.Errorf("invalid decision status %q", status)
	}

	// Look the transaction up first so a missing id surfaces as NotFound
	// rather than a conditional-check failure.
	if _, err := s.GetTransaction(ctx, txID); err != nil {
		return nil, err
	}

	statusAV, err := attributevalue.Marshal(status)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal decision status: %w", err)
	}
	nowAV, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal decision timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: txID},
		},
		UpdateExpression:    aws.String("SET #status = :status, decided_at = :now, decided_by = :by"),
		ConditionExpression: aws.String("#status = :pending_status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":         statusAV,
			":pending_status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":now":            nowAV,
			":by":             &types.AttributeValueMemberS{Value: decidedBy},
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("transaction %s: %w", txID, storage.ErrAlreadyDecided)
		}
		return nil, unavailable("failed to decide transaction", err)
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Attributes, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decided transaction: %w", err)
	}

	return &tx, nil
}
