package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tigerbeetle/tigerbeetle-go/pkg/types"

	"github.com/ledgerr/tigerbeetle-facade/internal/domain/ledger"
)

// fakeEngine is an in-memory stand-in for a TigerBeetle cluster with the
// at-most-once identifier-creation semantics the facade relies on.
type fakeEngine struct {
	mu        sync.Mutex
	accounts  map[types.Uint128]*fakeAccount
	transfers map[types.Uint128]types.Transfer
}

type fakeAccount struct {
	code          uint16
	debitsPosted  uint64
	creditsPosted uint64
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		accounts:  make(map[types.Uint128]*fakeAccount),
		transfers: make(map[types.Uint128]types.Transfer),
	}
}

func (e *fakeEngine) CreateAccounts(accounts []types.Account) ([]types.AccountEventResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var results []types.AccountEventResult
	for i, account := range accounts {
		if _, exists := e.accounts[account.ID]; exists {
			results = append(results, types.AccountEventResult{Index: uint32(i), Result: types.AccountExists})
			continue
		}
		e.accounts[account.ID] = &fakeAccount{code: account.Code}
	}
	return results, nil
}

func (e *fakeEngine) CreateTransfers(transfers []types.Transfer) ([]types.TransferEventResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var results []types.TransferEventResult
	for i, transfer := range transfers {
		if _, exists := e.transfers[transfer.ID]; exists {
			results = append(results, types.TransferEventResult{Index: uint32(i), Result: types.TransferExists})
			continue
		}

		debit, ok := e.accounts[transfer.DebitAccountID]
		if !ok {
			results = append(results, types.TransferEventResult{Index: uint32(i), Result: types.TransferDebitAccountNotFound})
			continue
		}
		credit, ok := e.accounts[transfer.CreditAccountID]
		if !ok {
			results = append(results, types.TransferEventResult{Index: uint32(i), Result: types.TransferCreditAccountNotFound})
			continue
		}

		amount := amountToUint64(transfer.Amount)
		debit.debitsPosted += amount
		credit.creditsPosted += amount
		e.transfers[transfer.ID] = transfer
	}
	return results, nil
}

func (e *fakeEngine) LookupAccounts(accountIDs []types.Uint128) ([]types.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var accounts []types.Account
	for _, id := range accountIDs {
		account, ok := e.accounts[id]
		if !ok {
			continue
		}
		accounts = append(accounts, types.Account{
			ID:            id,
			DebitsPosted:  types.ToUint128(account.debitsPosted),
			CreditsPosted: types.ToUint128(account.creditsPosted),
			Ledger:        1,
			Code:          account.code,
		})
	}
	return accounts, nil
}

func (e *fakeEngine) Close() {}

func (e *fakeEngine) transferCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.transfers)
}

func (e *fakeEngine) accountCode(id types.Uint128) uint16 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.accounts[id].code
}

func amountToUint64(amount types.Uint128) uint64 {
	bi := amount.BigInt()
	return bi.Uint64()
}

// TestLedgerScenario exercises the full create/record/replay/balance flow
// against the fake engine.
func TestLedgerScenario(t *testing.T) {
	engine := newFakeEngine()
	svc := NewLedgerService(testLogger(), engine)
	ctx := context.Background()

	// Create a cash account with code 1: engine code is 100 + 1.
	cashID, err := svc.CreateAccount(ctx, ledger.CreateAccountParams{
		AccountCode: "1",
		AccountName: "Cash",
		AccountType: "ASSET",
	})
	require.NoError(t, err)

	nativeCashID := mustNative(t, cashID)
	assert.Equal(t, uint16(101), engine.accountCode(nativeCashID))

	// A second ASSET account to receive the credit side.
	receivableID, err := svc.CreateAccount(ctx, ledger.CreateAccountParams{
		AccountCode: "2",
		AccountName: "Receivable",
		AccountType: "ASSET",
	})
	require.NoError(t, err)

	// Record a $50.00 journal entry with a fresh idempotency key.
	entry := ledger.JournalEntryParams{
		EntryDate:      "2025-08-31",
		Description:    "Invoice settlement",
		IdempotencyKey: "settlement-0001",
		DebitLine: ledger.JournalLine{
			AccountID:   cashID,
			DebitAmount: dec("50.00"),
		},
		CreditLine: ledger.JournalLine{
			AccountID:    receivableID,
			CreditAmount: dec("50.00"),
		},
	}

	firstEntryID, err := svc.RecordJournalEntry(ctx, entry)
	require.NoError(t, err)
	assert.Equal(t, 1, engine.transferCount())

	// Replaying the identical request returns the same identifier without
	// error and records no second transfer.
	secondEntryID, err := svc.RecordJournalEntry(ctx, entry)
	require.NoError(t, err)
	assert.Equal(t, firstEntryID, secondEntryID)
	assert.Equal(t, 1, engine.transferCount())

	// The debited account reports the signed balance and totals.
	balance, err := svc.GetAccountBalance(ctx, ledger.BalanceQueryParams{AccountID: cashID})
	require.NoError(t, err)
	assert.True(t, balance.AccountBalance.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, balance.TotalDebits.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, balance.TotalCredits.IsZero())
	assert.Equal(t, int64(0), balance.TransactionCount)
	assert.Nil(t, balance.LastActivityDate)

	// The credited account mirrors it with a negative balance.
	creditBalance, err := svc.GetAccountBalance(ctx, ledger.BalanceQueryParams{AccountID: receivableID})
	require.NoError(t, err)
	assert.True(t, creditBalance.AccountBalance.Equal(decimal.RequireFromString("-50.00")))
	assert.True(t, creditBalance.TotalCredits.Equal(decimal.RequireFromString("50.00")))
}

func TestLedgerScenario_DuplicateAccountCreationRejected(t *testing.T) {
	engine := newFakeEngine()
	svc := NewLedgerService(testLogger(), engine)
	ctx := context.Background()

	accountID := uuid.New().String()
	params := ledger.CreateAccountParams{
		AccountCode: "10",
		AccountType: "LIABILITY",
		AccountID:   accountID,
	}

	_, err := svc.CreateAccount(ctx, params)
	require.NoError(t, err)

	// Unlike transfers, a repeated account creation is a rejection.
	_, err = svc.CreateAccount(ctx, params)
	require.Error(t, err)

	var rejectionErr ledger.EngineRejectionError
	assert.True(t, errors.As(err, &rejectionErr))
}

func TestLedgerScenario_ConcurrentReplays(t *testing.T) {
	engine := newFakeEngine()
	svc := NewLedgerService(testLogger(), engine)
	ctx := context.Background()

	debitID, err := svc.CreateAccount(ctx, ledger.CreateAccountParams{AccountCode: "1", AccountType: "ASSET"})
	require.NoError(t, err)
	creditID, err := svc.CreateAccount(ctx, ledger.CreateAccountParams{AccountCode: "1", AccountType: "REVENUE"})
	require.NoError(t, err)

	entry := ledger.JournalEntryParams{
		Description:    "Concurrent submission",
		IdempotencyKey: "contended-key",
		DebitLine:      ledger.JournalLine{AccountID: debitID, DebitAmount: dec("9.99")},
		CreditLine:     ledger.JournalLine{AccountID: creditID, CreditAmount: dec("9.99")},
	}

	const callers = 16
	ids := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := svc.RecordJournalEntry(ctx, entry)
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	// All callers observe the same identifier; exactly one transfer exists.
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Equal(t, 1, engine.transferCount())
}

func mustNative(t *testing.T, id string) types.Uint128 {
	t.Helper()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	return types.BytesToUint128([16]byte(parsed))
}
