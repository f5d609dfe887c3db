package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/ledgerhouse/member-ledger/pkg/storage"
)

// GSI names on the transactions table.
const (
	accountCreatedAtGSI = "account_id-created_at-index"
	statusCreatedAtGSI  = "status-created_at-index"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the store.
// Declared here so tests can substitute a mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client                DynamoDBAPI
	TransactionsTableName string
	AccountsTableName     string
	ConnectionsTableName  string
}

// New creates a new Store.
func New(client DynamoDBAPI, transactionsTable, accountsTable, connectionsTable string) *Store {
	return &Store{
		Client:                client,
		TransactionsTableName: transactionsTable,
		AccountsTableName:     accountsTable,
		ConnectionsTableName:  connectionsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// unavailable wraps an infrastructure failure so callers can tell it apart
// from domain errors via errors.Is(err, storage.ErrStoreUnavailable).
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, storage.ErrStoreUnavailable, err)
}
