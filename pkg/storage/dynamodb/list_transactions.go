package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ledgerhouse/member-ledger/pkg/models"
)

// queryTransactionPages runs input to completion, following LastEvaluatedKey
// so results past DynamoDB's 1MB page limit are not dropped. The balance fold
// depends on seeing every transaction.
func (s *Store) queryTransactionPages(ctx context.Context, op string, input *dynamodb.QueryInput) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, unavailable(op, err)
		}

		var page []models.Transaction
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
		}
		transactions = append(transactions, page...)

		if len(result.LastEvaluatedKey) == 0 {
			return transactions, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}

// ListTransactionsByAccount retrieves all transactions for an account,
// optionally restricted to a single status, in created_at ascending order.
func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID string, status *models.TransactionStatus) ([]models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(accountCreatedAtGSI),
		KeyConditionExpression: aws.String("account_id = :accountID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":accountID": &types.AttributeValueMemberS{Value: accountID},
		},
		ScanIndexForward: aws.Bool(true),
	}

	if status != nil {
		input.FilterExpression = aws.String("#status = :status")
		input.ExpressionAttributeNames = map[string]string{"#status": "status"}
		input.ExpressionAttributeValues[":status"] = &types.AttributeValueMemberS{Value: string(*status)}
	}

	return s.queryTransactionPages(ctx, "failed to query transactions by account", input)
}

// rangeKeyFormat is the second-truncated, zone-free layout used for range
// bounds on the created_at sort key. Stored values are RFC3339 with trailing
// fractional zeros trimmed, so comparing against a full RFC3339 bound is not
// order-preserving ("...00.5Z" sorts before "...00Z"). A bound in this layout
// is a strict prefix of every stored value within that second, so it sorts
// before all of them and after everything earlier.
const rangeKeyFormat = "2006-01-02T15:04:05"

// ListTransactionsByDateRange retrieves an account's transactions with
// created_at in [start, end] at second granularity, oldest first. The range
// condition runs on the GSI sort key, so the store returns them already in
// ledger order.
func (s *Store) ListTransactionsByDateRange(ctx context.Context, accountID string, start, end time.Time) ([]models.Transaction, error) {
	startStr := start.UTC().Truncate(time.Second).Format(rangeKeyFormat)
	// BETWEEN is inclusive on both sides, so the upper bound is the start of
	// the second after end. No stored value equals the bound itself (stored
	// values always carry a zone suffix), which makes the range [start, end+1s)
	// on the underlying strings.
	endStr := end.UTC().Truncate(time.Second).Add(time.Second).Format(rangeKeyFormat)

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(accountCreatedAtGSI),
		KeyConditionExpression: aws.String("account_id = :accountID AND created_at BETWEEN :start AND :end"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":accountID": &types.AttributeValueMemberS{Value: accountID},
			":start":     &types.AttributeValueMemberS{Value: startStr},
			":end":       &types.AttributeValueMemberS{Value: endStr},
		},
		ScanIndexForward: aws.Bool(true),
	}

	return s.queryTransactionPages(ctx, "failed to query transactions by date range", input)
}

// ListPendingTransactions retrieves pending transactions across all accounts,
// oldest first. The queue drains in FIFO order for presentation only; admins
// may decide out of order.
func (s *Store) ListPendingTransactions(ctx context.Context) ([]models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(statusCreatedAtGSI),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
		},
		ScanIndexForward: aws.Bool(true),
	}

	return s.queryTransactionPages(ctx, "failed to query pending transactions", input)
}

// GetStalePendingTransactions retrieves transactions that have been pending
// for longer than maxAge, for the reminder lambda.
func (s *Store) GetStalePendingTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error) {
	// Second-truncated bound for the same ordering reason as the date range:
	// a sub-second value within the cutoff second must not sort before it.
	cutoffStr := time.Now().UTC().Add(-maxAge).Truncate(time.Second).Format(rangeKeyFormat)

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(statusCreatedAtGSI),
		KeyConditionExpression: aws.String("#status = :status AND created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":cutoff": &types.AttributeValueMemberS{Value: cutoffStr},
		},
	}

	return s.queryTransactionPages(ctx, "failed to query stale pending transactions", input)
}
