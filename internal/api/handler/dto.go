package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The caller contract renders balance fields as JSON numbers, matching
	// PostgREST's numeric output.
	decimal.MarshalJSONWithoutQuotes = true
}

// Wire field names are part of a pre-existing caller contract: snake_case
// with a p_ prefix on request fields, preserved verbatim.

// CreateAccountRequest is the body of POST /rpc/create_account
type CreateAccountRequest struct {
	AccountCode     string `json:"p_account_code"`
	AccountName     string `json:"p_account_name"`
	AccountType     string `json:"p_account_type"`
	ParentAccountID string `json:"p_parent_account_id"`
	AccountID       string `json:"p_account_id"`
}

// JournalLine is one debit or credit side of a journal entry
type JournalLine struct {
	AccountID    string           `json:"account_id"`
	DebitAmount  *decimal.Decimal `json:"debit_amount"`
	CreditAmount *decimal.Decimal `json:"credit_amount"`
	Description  string           `json:"description"`
}

// RecordJournalEntryRequest is the body of POST /rpc/record_journal_entry.
// Entry dates arrive as plain strings ("2025-01-31") and are carried through
// without parsing; the engine assigns authoritative timestamps.
type RecordJournalEntryRequest struct {
	EntryDate       string      `json:"p_entry_date"`
	Description     string      `json:"p_description"`
	DebitLine       JournalLine `json:"p_debit_line"`
	CreditLine      JournalLine `json:"p_credit_line"`
	IdempotencyKey  string      `json:"p_idempotency_key"`
	ReferenceNumber string      `json:"p_reference_number"`
	CreatedBy       string      `json:"p_created_by"`
}

// GetAccountBalanceRequest is the body of POST /rpc/get_account_balance
type GetAccountBalanceRequest struct {
	AccountID        string `json:"p_account_id"`
	AsOfDate         string `json:"p_as_of_date"`
	ForceRecalculate bool   `json:"p_force_recalculate"`
}

// AccountBalanceResponse is the get_account_balance success body.
// TransactionCount is always 0 and LastActivityDate always null: the
// snapshot lookup carries no transfer history.
type AccountBalanceResponse struct {
	AccountBalance   decimal.Decimal `json:"account_balance"`
	TotalDebits      decimal.Decimal `json:"total_debits"`
	TotalCredits     decimal.Decimal `json:"total_credits"`
	TransactionCount int64           `json:"transaction_count"`
	LastActivityDate *time.Time      `json:"last_activity_date"`
}
