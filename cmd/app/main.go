package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/ledgerhouse/member-ledger/pkg/events"
	"github.com/ledgerhouse/member-ledger/pkg/handlers"
	"github.com/ledgerhouse/member-ledger/pkg/handlers/websockets"
	"github.com/ledgerhouse/member-ledger/pkg/identityclient"
	"github.com/ledgerhouse/member-ledger/pkg/ledger"
	"github.com/ledgerhouse/member-ledger/pkg/queue"
	"github.com/ledgerhouse/member-ledger/pkg/statement"
	"github.com/ledgerhouse/member-ledger/pkg/storage/dynamodb"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := awsdynamodb.NewFromConfig(cfg)
	transactionsTable := os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME")
	accountsTable := os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME")
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")

	if transactionsTable == "" || accountsTable == "" || connectionsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	// SQS client for the notification queue
	sqsClient := sqs.NewFromConfig(cfg)
	sqsQueueURL := os.Getenv("SQS_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	notifier := queue.NewSQSNotifier(sqsClient, sqsQueueURL)

	// Create our storage implementation
	store := dynamodb.New(dbClient, transactionsTable, accountsTable, connectionsTable)

	// WebSocket publisher is optional; without an endpoint decisions still
	// land, members just don't get the live push.
	var publisher events.Publisher = &events.NoOpPublisher{}
	if endpoint := os.Getenv("WEBSOCKET_API_ENDPOINT"); endpoint != "" {
		publisher = events.NewPublisher(cfg, store, endpoint)
	}

	policy := ledger.Policy{
		RejectOverdraft: os.Getenv("REJECT_OVERDRAFT") == "true",
	}
	svc := ledger.NewService(store, notifier, publisher, policy)

	institution := statement.Institution{
		Name:    os.Getenv("INSTITUTION_NAME"),
		Address: os.Getenv("INSTITUTION_ADDRESS"),
	}
	if institution.Name == "" {
		institution.Name = "Manchester Credit Union"
	}
	if institution.Address == "" {
		institution.Address = "2 Maybury Street, Gorton M18 8GP, United Kingdom"
	}
	generator := statement.NewGenerator(store, institution)

	identityURL := os.Getenv("IDENTITY_PROVIDER_URL")
	if identityURL == "" {
		log.Fatal("IDENTITY_PROVIDER_URL environment variable not set")
	}
	auth := identityclient.NewClient(identityURL)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	router := chi.NewRouter()
	router.Mount("/", handlers.NewRouter(svc, generator, auth, logger))
	// Local stand-in for the API Gateway WebSocket routes.
	router.Handle("/ws", websockets.NewHandler(store))

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
