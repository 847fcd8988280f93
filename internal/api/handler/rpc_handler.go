package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ledgerr/tigerbeetle-facade/internal/api/service"
	"github.com/ledgerr/tigerbeetle-facade/internal/domain/ledger"
)

// RPCHandler serves the PostgREST-shaped /rpc endpoints
type RPCHandler struct {
	ledgerService service.LedgerService
	logger        *slog.Logger
}

// NewRPCHandler creates a new RPC handler
func NewRPCHandler(logger *slog.Logger, ledgerService service.LedgerService) *RPCHandler {
	return &RPCHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// CreateAccount handles POST /rpc/create_account
func (h *RPCHandler) CreateAccount(c *gin.Context) {
	timer := prometheus.NewTimer(rpcRequestDuration.WithLabelValues("create_account"))
	defer timer.ObserveDuration()

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		observeRequest("create_account", http.StatusBadRequest)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.logger.Info("Creating account",
		"account_code", req.AccountCode,
		"account_type", req.AccountType,
	)

	accountID, err := h.ledgerService.CreateAccount(c.Request.Context(), ledger.CreateAccountParams{
		AccountCode:     req.AccountCode,
		AccountName:     req.AccountName,
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		AccountID:       req.AccountID,
	})
	if err != nil {
		h.respondError(c, "create_account", err)
		return
	}

	observeRequest("create_account", http.StatusOK)
	RespondIdentifier(c, accountID)
}

// RecordJournalEntry handles POST /rpc/record_journal_entry
func (h *RPCHandler) RecordJournalEntry(c *gin.Context) {
	timer := prometheus.NewTimer(rpcRequestDuration.WithLabelValues("record_journal_entry"))
	defer timer.ObserveDuration()

	var req RecordJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		observeRequest("record_journal_entry", http.StatusBadRequest)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.logger.Debug("Recording journal entry", "idempotency_key", req.IdempotencyKey)

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = ledger.DefaultCreatedBy
	}

	entryID, err := h.ledgerService.RecordJournalEntry(c.Request.Context(), ledger.JournalEntryParams{
		EntryDate:       req.EntryDate,
		Description:     req.Description,
		DebitLine:       mapJournalLine(req.DebitLine),
		CreditLine:      mapJournalLine(req.CreditLine),
		IdempotencyKey:  req.IdempotencyKey,
		ReferenceNumber: req.ReferenceNumber,
		CreatedBy:       createdBy,
	})
	if err != nil {
		h.respondError(c, "record_journal_entry", err)
		return
	}

	// An idempotent replay lands here too: same 200, same identifier.
	observeRequest("record_journal_entry", http.StatusOK)
	RespondIdentifier(c, entryID)
}

// GetAccountBalance handles POST /rpc/get_account_balance
func (h *RPCHandler) GetAccountBalance(c *gin.Context) {
	timer := prometheus.NewTimer(rpcRequestDuration.WithLabelValues("get_account_balance"))
	defer timer.ObserveDuration()

	var req GetAccountBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		observeRequest("get_account_balance", http.StatusBadRequest)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.logger.Info("Getting balance", "account_id", req.AccountID)

	balance, err := h.ledgerService.GetAccountBalance(c.Request.Context(), ledger.BalanceQueryParams{
		AccountID:        req.AccountID,
		AsOfDate:         req.AsOfDate,
		ForceRecalculate: req.ForceRecalculate,
	})
	if err != nil {
		h.respondError(c, "get_account_balance", err)
		return
	}

	observeRequest("get_account_balance", http.StatusOK)
	c.JSON(http.StatusOK, AccountBalanceResponse{
		AccountBalance:   balance.AccountBalance,
		TotalDebits:      balance.TotalDebits,
		TotalCredits:     balance.TotalCredits,
		TransactionCount: balance.TransactionCount,
		LastActivityDate: balance.LastActivityDate,
	})
}

// respondError maps service errors onto the caller contract: validation
// failures and engine rejections are 400 with a message, everything else is
// a generic 500 logged with full context server-side.
func (h *RPCHandler) respondError(c *gin.Context, operation string, err error) {
	var validationErr ledger.ValidationError
	var rejectionErr ledger.EngineRejectionError

	switch {
	case errors.As(err, &validationErr):
		h.logger.Warn("Invalid request", "operation", operation, "error", err)
		observeRequest(operation, http.StatusBadRequest)
		RespondBadRequest(c, validationErr.Message)
	case errors.As(err, &rejectionErr):
		h.logger.Warn("Engine rejected request", "operation", operation, "error", err)
		observeRequest(operation, http.StatusBadRequest)
		RespondBadRequest(c, rejectionErr.Error())
	default:
		h.logger.Error("Request failed", "operation", operation, "error", err)
		observeRequest(operation, http.StatusInternalServerError)
		RespondInternalError(c)
	}
}

func mapJournalLine(line JournalLine) ledger.JournalLine {
	return ledger.JournalLine{
		AccountID:    line.AccountID,
		DebitAmount:  line.DebitAmount,
		CreditAmount: line.CreditAmount,
		Description:  line.Description,
	}
}
