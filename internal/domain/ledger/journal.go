package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCreatedBy is recorded when the caller omits p_created_by.
const DefaultCreatedBy = "system"

// JournalLine is one side of a double-entry pair. Exactly one of
// DebitAmount/CreditAmount must be positive; the other must be nil or zero.
type JournalLine struct {
	AccountID    string
	DebitAmount  *decimal.Decimal
	CreditAmount *decimal.Decimal
	Description  string
}

// JournalEntryParams carries a record_journal_entry request. EntryDate,
// ReferenceNumber and CreatedBy are accepted for contract compatibility and
// carried through unchanged.
type JournalEntryParams struct {
	EntryDate       string
	Description     string
	DebitLine       JournalLine
	CreditLine      JournalLine
	IdempotencyKey  string
	ReferenceNumber string
	CreatedBy       string
}

// Validate checks the journal entry structurally before any engine call.
// Checks run in a fixed order and fail fast, each with its own message.
func (p *JournalEntryParams) Validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return ValidationError{Message: "Description cannot be empty"}
	}
	if strings.TrimSpace(p.IdempotencyKey) == "" {
		return ValidationError{Message: "Idempotency key is required"}
	}

	if p.DebitLine.DebitAmount == nil || !p.DebitLine.DebitAmount.IsPositive() {
		return ValidationError{Message: "Debit line must have a positive debit amount"}
	}
	if p.DebitLine.CreditAmount != nil && !p.DebitLine.CreditAmount.IsZero() {
		return ValidationError{Message: "Debit line cannot have a credit amount"}
	}

	if p.CreditLine.CreditAmount == nil || !p.CreditLine.CreditAmount.IsPositive() {
		return ValidationError{Message: "Credit line must have a positive credit amount"}
	}
	if p.CreditLine.DebitAmount != nil && !p.CreditLine.DebitAmount.IsZero() {
		return ValidationError{Message: "Credit line cannot have a debit amount"}
	}

	if !p.DebitLine.DebitAmount.Equal(*p.CreditLine.CreditAmount) {
		return Validationf("Debit amount (%s) must equal credit amount (%s) - transaction not balanced",
			p.DebitLine.DebitAmount, p.CreditLine.CreditAmount)
	}

	return nil
}

// Amount returns the balanced amount shared by both lines. Only valid after
// Validate has passed.
func (p *JournalEntryParams) Amount() decimal.Decimal {
	return *p.DebitLine.DebitAmount
}
