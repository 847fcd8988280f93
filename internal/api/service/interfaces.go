package service

import (
	"context"

	"github.com/ledgerr/tigerbeetle-facade/internal/domain/ledger"
)

// LedgerService translates the facade's three RPC operations into single
// TigerBeetle calls and interprets the per-item results.
type LedgerService interface {
	// CreateAccount validates the request, composes the engine account code
	// and creates one engine account. Returns the canonical identifier
	// string of the created account. A retried creation with the same
	// identifier is rejected by the engine and surfaces as an
	// EngineRejectionError; account creation has no replay carve-out.
	CreateAccount(ctx context.Context, params ledger.CreateAccountParams) (string, error)

	// RecordJournalEntry validates the balanced debit/credit pair and
	// creates one engine transfer whose identifier derives from the
	// idempotency key. A repeated submission with the same key returns the
	// same identifier as success; exactly one economic transfer exists.
	RecordJournalEntry(ctx context.Context, params ledger.JournalEntryParams) (string, error)

	// GetAccountBalance looks up one account snapshot and reports its
	// posted debits, credits and signed balance.
	// Returns a ValidationError if the account is unknown to the engine.
	GetAccountBalance(ctx context.Context, params ledger.BalanceQueryParams) (*ledger.AccountBalance, error)
}
