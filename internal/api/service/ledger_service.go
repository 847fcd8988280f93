package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tigerbeetle/tigerbeetle-go/pkg/types"

	"github.com/ledgerr/tigerbeetle-facade/internal/domain/ledger"
	"github.com/ledgerr/tigerbeetle-facade/internal/ledger/codec"
	"github.com/ledgerr/tigerbeetle-facade/internal/platform/tigerbeetle"
)

const (
	// ledgerID is the single engine ledger partition all accounts and
	// transfers live on.
	ledgerID = 1

	// defaultTransferCode is the engine code recorded on every transfer.
	defaultTransferCode = 1
)

var idempotentReplaysTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "facade_idempotent_replays_total",
	Help: "Journal entry submissions resolved as idempotent replays of an existing transfer",
})

// LedgerServiceImpl implements the LedgerService interface on top of the
// narrow TigerBeetle client. It is stateless and safe for concurrent use;
// each operation issues exactly one blocking engine call, with no retries.
type LedgerServiceImpl struct {
	client tigerbeetle.Client
	logger *slog.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(logger *slog.Logger, client tigerbeetle.Client) LedgerService {
	return &LedgerServiceImpl{
		client: client,
		logger: logger,
	}
}

// CreateAccount creates one engine account with code base+parsed on ledger 1.
func (s *LedgerServiceImpl) CreateAccount(_ context.Context, params ledger.CreateAccountParams) (string, error) {
	baseCode, err := ledger.AccountTypeCode(params.AccountType)
	if err != nil {
		return "", err
	}

	codeNum, err := strconv.ParseUint(params.AccountCode, 10, 64)
	if err != nil {
		return "", ledger.Validationf("Account code must be numeric: %s", params.AccountCode)
	}

	var accountID types.Uint128
	if params.AccountID != "" {
		accountID, err = codec.UUIDToUint128(params.AccountID)
		if err != nil {
			return "", err
		}
	} else {
		accountID = codec.RandomID()
	}

	// Overflow is rejected rather than wrapped: a wrapped code would alias
	// an unrelated account class. The bound is checked before adding so a
	// code near the uint64 ceiling cannot wrap the sum back under the limit.
	if codeNum > uint64(math.MaxUint16)-uint64(baseCode) {
		return "", ledger.Validationf("Account code out of range: %s (engine code exceeds %d)",
			params.AccountCode, math.MaxUint16)
	}
	engineCode := baseCode + uint16(codeNum)

	account := types.Account{
		ID:     accountID,
		Ledger: ledgerID,
		Code:   engineCode,
	}

	results, err := s.client.CreateAccounts([]types.Account{account})
	if err != nil {
		return "", fmt.Errorf("tigerbeetle create accounts: %w", err)
	}
	if len(results) > 0 {
		// No replay carve-out here: a repeated creation with the same
		// identifier surfaces as "exists", by contract.
		return "", ledger.EngineRejectionError{Op: "account creation", Result: results[0].Result.String()}
	}

	canonical := codec.Uint128ToUUID(accountID)
	s.logger.Info("Created account",
		"account_id", canonical,
		"code", engineCode,
		"account_type", params.AccountType,
	)
	return canonical, nil
}

// RecordJournalEntry creates one engine transfer for a balanced debit/credit
// pair. The transfer identifier derives from the idempotency key, so the
// engine's at-most-once creation semantics make repeated submissions safe.
func (s *LedgerServiceImpl) RecordJournalEntry(_ context.Context, params ledger.JournalEntryParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	transferID := codec.DeterministicID(params.IdempotencyKey)

	debitAccountID, err := codec.UUIDToUint128(params.DebitLine.AccountID)
	if err != nil {
		return "", err
	}
	creditAccountID, err := codec.UUIDToUint128(params.CreditLine.AccountID)
	if err != nil {
		return "", err
	}

	transfer := types.Transfer{
		ID:              transferID,
		DebitAccountID:  debitAccountID,
		CreditAccountID: creditAccountID,
		Amount:          types.ToUint128(codec.ToMinorUnits(params.Amount())),
		Ledger:          ledgerID,
		Code:            defaultTransferCode,
		// Timestamp stays zero: the engine assigns the authoritative one.
	}

	canonical := codec.Uint128ToUUID(transferID)

	results, err := s.client.CreateTransfers([]types.Transfer{transfer})
	if err != nil {
		return "", fmt.Errorf("tigerbeetle create transfers: %w", err)
	}
	if len(results) > 0 {
		if results[0].Result == types.TransferExists {
			// Idempotent replay: the transfer was created by an earlier
			// submission of the same key. Observably identical to a
			// first-time success.
			idempotentReplaysTotal.Inc()
			s.logger.Info("Transfer already exists, returning existing identifier",
				"transfer_id", canonical,
				"idempotency_key", params.IdempotencyKey,
			)
			return canonical, nil
		}
		return "", ledger.EngineRejectionError{Op: "transfer creation", Result: results[0].Result.String()}
	}

	s.logger.Debug("Created transfer",
		"transfer_id", canonical,
		"amount", params.Amount(),
	)
	return canonical, nil
}

// GetAccountBalance reports the posted debits, credits and signed balance of
// one account. TransactionCount and LastActivityDate are not derivable from
// the snapshot lookup and stay at their zero values.
func (s *LedgerServiceImpl) GetAccountBalance(_ context.Context, params ledger.BalanceQueryParams) (*ledger.AccountBalance, error) {
	accountID, err := codec.UUIDToUint128(params.AccountID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.client.LookupAccounts([]types.Uint128{accountID})
	if err != nil {
		return nil, fmt.Errorf("tigerbeetle lookup accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, ledger.Validationf("Account not found: %s", params.AccountID)
	}

	account := accounts[0]
	return &ledger.AccountBalance{
		AccountBalance: codec.BalanceFromPosted(account.DebitsPosted, account.CreditsPosted),
		TotalDebits:    codec.FromPosted(account.DebitsPosted),
		TotalCredits:   codec.FromPosted(account.CreditsPosted),
	}, nil
}
