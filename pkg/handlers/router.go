package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/ledgerhouse/member-ledger/pkg/handlers/accounts"
	"github.com/ledgerhouse/member-ledger/pkg/handlers/admin"
	"github.com/ledgerhouse/member-ledger/pkg/handlers/balances"
	"github.com/ledgerhouse/member-ledger/pkg/handlers/statements"
	"github.com/ledgerhouse/member-ledger/pkg/handlers/transactions"
	"github.com/ledgerhouse/member-ledger/pkg/identity"
	"github.com/ledgerhouse/member-ledger/pkg/ledger"
	"github.com/ledgerhouse/member-ledger/pkg/middleware"
	"github.com/ledgerhouse/member-ledger/pkg/statement"
)

// NewRouter wires every HTTP route onto a chi router. All routes sit behind
// the bearer-token identity middleware; role checks happen in the service
// layer so that a member probing an admin route sees 403, not 404.
func NewRouter(svc *ledger.Service, gen *statement.Generator, auth identity.Authenticator, logger *slog.Logger) http.Handler {
	txHandler := transactions.NewTransactionsHandler(svc)
	balanceHandler := balances.NewBalancesHandler(svc)
	statementHandler := statements.NewStatementsHandler(gen)
	adminHandler := admin.NewAdminHandler(svc)
	accountHandler := accounts.NewAccountsHandler(svc)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(identity.Middleware(auth))

	router.Post("/withdraw", txHandler.SubmitWithdrawal)
	router.Get("/balance", balanceHandler.GetBalance)
	router.Get("/transactions", txHandler.ListTransactions)
	router.Get("/transactions/{transactionId}", func(w http.ResponseWriter, r *http.Request) {
		txHandler.GetTransactionById(w, r, chi.URLParam(r, "transactionId"))
	})
	router.Get("/statement", statementHandler.GenerateStatement)

	router.Route("/admin", func(r chi.Router) {
		r.Get("/pending", adminHandler.ListPending)
		r.Post("/credit", adminHandler.IssueCredit)
		r.Post("/transactions/{transactionId}/decision", func(w http.ResponseWriter, req *http.Request) {
			adminHandler.DecideTransaction(w, req, chi.URLParam(req, "transactionId"))
		})
	})

	router.Route("/accounts", func(r chi.Router) {
		r.Post("/", accountHandler.CreateAccount)
		r.Get("/", accountHandler.ListAccounts)
	})

	return router
}
