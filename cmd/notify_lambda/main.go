package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/ledgerhouse/member-ledger/pkg/events"
	"github.com/ledgerhouse/member-ledger/pkg/models"
	"github.com/ledgerhouse/member-ledger/pkg/queue"
	"github.com/ledgerhouse/member-ledger/pkg/storage"
	dydbstore "github.com/ledgerhouse/member-ledger/pkg/storage/dynamodb"
)

var store storage.Storage
var publisher events.Publisher

func setup() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	transactionsTable := os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME")
	accountsTable := os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME")
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")

	if transactionsTable == "" || accountsTable == "" || connectionsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	dydb := dydbstore.New(dbClient, transactionsTable, accountsTable, connectionsTable)
	store = dydb

	apiEndpoint := os.Getenv("WEBSOCKET_API_ENDPOINT")
	if apiEndpoint == "" {
		log.Fatal("WEBSOCKET_API_ENDPOINT environment variable not set")
	}
	publisher = events.NewPublisher(cfg, dydb, apiEndpoint)
}

// HandleRequest fans notification queue messages out to connected clients.
func HandleRequest(ctx context.Context, sqsEvent lambdaevents.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var n queue.Notification
		if err := json.Unmarshal([]byte(message.Body), &n); err != nil {
			// A body that never parsed will never parse; returning the error
			// would make SQS redeliver it indefinitely. Skip it like an
			// unknown kind.
			log.Printf("ERROR: skipping malformed notification in SQS message %s: %v", message.MessageId, err)
			continue
		}

		if err := push(ctx, n); err != nil {
			log.Printf("ERROR: failed to push notification for transaction %s: %v", n.Transaction.Id, err)
			return err
		}

		log.Printf("Successfully pushed %s notification for transaction %s", n.Kind, n.Transaction.Id)
	}

	return nil
}

// push builds the client-facing message for a notification and publishes it.
func push(ctx context.Context, n queue.Notification) error {
	tx := n.Transaction

	switch n.Kind {
	case queue.KindDecision:
		status := models.APPROVED
		txs, err := store.ListTransactionsByAccount(ctx, tx.AccountId, &status)
		if err != nil {
			return err
		}
		snap := models.FoldBalance(txs)
		return publisher.Publish(ctx, events.Message{
			Type: events.MessageTypeBalanceUpdate,
			Payload: events.BalanceUpdatePayload{
				AccountID:     tx.AccountId,
				TransactionID: tx.Id,
				Status:        string(tx.Status),
				NewBalance:    snap.Balance,
			},
		})
	case queue.KindReview, queue.KindReminder:
		return publisher.Publish(ctx, events.Message{
			Type: events.MessageTypePendingReminder,
			Payload: events.PendingReminderPayload{
				TransactionID: tx.Id,
				AccountID:     tx.AccountId,
				Amount:        tx.Amount,
				PendingSince:  tx.CreatedAt,
			},
		})
	default:
		log.Printf("Ignoring notification with unknown kind %q", n.Kind)
		return nil
	}
}

func main() {
	setup()
	lambda.Start(HandleRequest)
}
