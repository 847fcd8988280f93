package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validEntry() JournalEntryParams {
	return JournalEntryParams{
		EntryDate:      "2025-08-31",
		Description:    "Cash sale",
		IdempotencyKey: "sale-0001",
		DebitLine: JournalLine{
			AccountID:   "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11",
			DebitAmount: dec("50.00"),
		},
		CreditLine: JournalLine{
			AccountID:    "b1ffcd88-8d1c-4fa9-cc7e-7cc8ce491b22",
			CreditAmount: dec("50.00"),
		},
	}
}

func TestJournalEntryValidate_OK(t *testing.T) {
	entry := validEntry()
	require.NoError(t, entry.Validate())
	assert.True(t, entry.Amount().Equal(decimal.RequireFromString("50.00")))
}

func TestJournalEntryValidate_ZeroCreditAmountOnDebitLineAllowed(t *testing.T) {
	entry := validEntry()
	entry.DebitLine.CreditAmount = dec("0")
	entry.CreditLine.DebitAmount = dec("0.00")
	assert.NoError(t, entry.Validate())
}

func TestJournalEntryValidate_Rejections(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*JournalEntryParams)
		expected string
	}{
		{
			name:     "EmptyDescription",
			mutate:   func(p *JournalEntryParams) { p.Description = "  " },
			expected: "Description cannot be empty",
		},
		{
			name:     "EmptyIdempotencyKey",
			mutate:   func(p *JournalEntryParams) { p.IdempotencyKey = "" },
			expected: "Idempotency key is required",
		},
		{
			name:     "MissingDebitAmount",
			mutate:   func(p *JournalEntryParams) { p.DebitLine.DebitAmount = nil },
			expected: "Debit line must have a positive debit amount",
		},
		{
			name:     "ZeroDebitAmount",
			mutate:   func(p *JournalEntryParams) { p.DebitLine.DebitAmount = dec("0") },
			expected: "Debit line must have a positive debit amount",
		},
		{
			name:     "NegativeDebitAmount",
			mutate:   func(p *JournalEntryParams) { p.DebitLine.DebitAmount = dec("-5") },
			expected: "Debit line must have a positive debit amount",
		},
		{
			name:     "CreditAmountOnDebitLine",
			mutate:   func(p *JournalEntryParams) { p.DebitLine.CreditAmount = dec("1.00") },
			expected: "Debit line cannot have a credit amount",
		},
		{
			name:     "MissingCreditAmount",
			mutate:   func(p *JournalEntryParams) { p.CreditLine.CreditAmount = nil },
			expected: "Credit line must have a positive credit amount",
		},
		{
			name:     "DebitAmountOnCreditLine",
			mutate:   func(p *JournalEntryParams) { p.CreditLine.DebitAmount = dec("1.00") },
			expected: "Credit line cannot have a debit amount",
		},
		{
			name: "Unbalanced",
			mutate: func(p *JournalEntryParams) {
				p.DebitLine.DebitAmount = dec("100.00")
				p.CreditLine.CreditAmount = dec("99.99")
			},
			expected: "must equal credit amount",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entry := validEntry()
			tc.mutate(&entry)

			err := entry.Validate()
			require.Error(t, err)

			var validationErr ValidationError
			assert.True(t, errors.As(err, &validationErr))
			assert.Contains(t, err.Error(), tc.expected)
		})
	}
}

func TestJournalEntryValidate_EquivalentRepresentationsBalance(t *testing.T) {
	// 50 and 50.00 differ in exponent but are numerically equal.
	entry := validEntry()
	entry.DebitLine.DebitAmount = dec("50")
	entry.CreditLine.CreditAmount = dec("50.00")
	assert.NoError(t, entry.Validate())
}
