// Package statement produces time-bounded exports of an account's settled
// history. Statement generation is split in two: building the line-item
// sequence from the ledger, and rendering it to an export format. Rendering
// is a pure function of the statement value, so an unchanged ledger snapshot
// always reproduces the same bytes.
package statement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerhouse/member-ledger/pkg/identity"
	"github.com/ledgerhouse/member-ledger/pkg/models"
	"github.com/ledgerhouse/member-ledger/pkg/storage"
)

// ErrInvalidRange is returned when the requested period is malformed or
// start is after end.
var ErrInvalidRange = errors.New("invalid statement range")

// Institution is the header metadata stamped on every statement.
type Institution struct {
	Name    string
	Address string
}

// Line is a single statement line item.
type Line struct {
	Date        time.Time
	Status      models.TransactionStatus
	Type        models.TransactionType
	Amount      int64
	Description string
}

// Statement is the renderable view of an account's history over a closed
// date range. Lines are in created_at ascending order, matching the ledger.
// Rejected transactions are included for audit transparency and flagged by
// their status.
type Statement struct {
	Institution Institution
	OwnerName   string
	AccountId   string
	Start       time.Time
	End         time.Time
	Lines       []Line
}

// Generator builds statements from the ledger store.
type Generator struct {
	Store       storage.StatementStore
	Institution Institution
}

// NewGenerator creates a new Generator.
func NewGenerator(store storage.StatementStore, inst Institution) *Generator {
	return &Generator{Store: store, Institution: inst}
}

// Generate builds the statement for [start, end]. Both bounds are dates; the
// range is closed and inclusive, covering start 00:00:00 through end
// 23:59:59.999999999 UTC. Members may only generate statements for their own
// account.
func (g *Generator) Generate(ctx context.Context, ident identity.Identity, accountID string, start, end time.Time) (*Statement, error) {
	if !ident.CanAccess(accountID) {
		return nil, fmt.Errorf("generate statement for account %s: %w", accountID, identity.ErrForbidden)
	}

	start = startOfDay(start)
	end = endOfDay(end)
	if start.After(end) {
		return nil, fmt.Errorf("start after end: %w", ErrInvalidRange)
	}

	account, err := g.Store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	txs, err := g.Store.ListTransactionsByDateRange(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, len(txs))
	for i, tx := range txs {
		lines[i] = Line{
			Date:        tx.CreatedAt,
			Status:      tx.Status,
			Type:        tx.Type,
			Amount:      tx.Amount,
			Description: tx.Description,
		}
	}

	return &Statement{
		Institution: g.Institution,
		OwnerName:   account.OwnerName,
		AccountId:   accountID,
		Start:       start,
		End:         end,
		Lines:       lines,
	}, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
