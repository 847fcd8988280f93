package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountParams carries a create_account request into the facade.
// AccountName and ParentAccountID are accepted for contract compatibility
// but do not influence translation. An empty AccountID means the facade
// generates a fresh random identifier.
type CreateAccountParams struct {
	AccountCode     string
	AccountName     string
	AccountType     string
	ParentAccountID string
	AccountID       string
}

// BalanceQueryParams carries a get_account_balance request. AsOfDate and
// ForceRecalculate are forwarded-only fields; the snapshot lookup does not
// branch on them.
type BalanceQueryParams struct {
	AccountID        string
	AsOfDate         string
	ForceRecalculate bool
}

// AccountBalance is the balance lookup result. TransactionCount is always 0
// and LastActivityDate always nil: the minimal account snapshot carries no
// transfer history.
type AccountBalance struct {
	AccountBalance   decimal.Decimal
	TotalDebits      decimal.Decimal
	TotalCredits     decimal.Decimal
	TransactionCount int64
	LastActivityDate *time.Time
}
