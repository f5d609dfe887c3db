package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/ledgerhouse/member-ledger/pkg/queue"
	"github.com/ledgerhouse/member-ledger/pkg/storage"
	dydbstore "github.com/ledgerhouse/member-ledger/pkg/storage/dynamodb"
)

var store storage.Storage
var notifier queue.Notifier

const defaultReminderThreshold = 24 * time.Hour

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	sqsClient := sqs.NewFromConfig(cfg)

	// Initialize dependencies.
	sqsQueueURL := os.Getenv("SQS_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	notifier = queue.NewSQSNotifier(sqsClient, sqsQueueURL)

	transactionsTable := os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME")
	accountsTable := os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME")
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")

	store = dydbstore.New(dbClient, transactionsTable, accountsTable, connectionsTable)
}

// reminderThreshold reads the pending-age cutoff from the environment,
// falling back to 24 hours.
func reminderThreshold() time.Duration {
	raw := os.Getenv("REMINDER_THRESHOLD")
	if raw == "" {
		return defaultReminderThreshold
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Invalid REMINDER_THRESHOLD %q, using default: %v", raw, err)
		return defaultReminderThreshold
	}
	return d
}

// HandleRequest is triggered by an EventBridge Schedule.
func HandleRequest(ctx context.Context) error {
	threshold := reminderThreshold()
	log.Printf("Scanning for transactions pending longer than %s...", threshold)

	staleTxs, err := store.GetStalePendingTransactions(ctx, threshold)
	if err != nil {
		log.Printf("ERROR: failed to get stale pending transactions: %v", err)
		return err
	}

	if len(staleTxs) == 0 {
		log.Println("No stale pending transactions found.")
		return nil
	}

	log.Printf("Found %d stale pending transactions. Enqueuing reminders...", len(staleTxs))

	for _, tx := range staleTxs {
		n := queue.Notification{Kind: queue.KindReminder, Transaction: tx}
		if err := notifier.Enqueue(ctx, n); err != nil {
			log.Printf("ERROR: failed to enqueue reminder for transaction %s: %v", tx.Id, err)
			// Continue to the next transaction, don't let one failure stop the whole batch.
			continue
		}
		log.Printf("Successfully enqueued reminder for transaction %s", tx.Id)
	}

	log.Println("Reminder sweep finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
