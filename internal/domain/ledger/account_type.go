// Package ledger holds the facade's request/response values and the fixed
// chart-of-accounts configuration. Everything here is transient per-request
// state; durability lives in the TigerBeetle engine.
package ledger

import "strings"

// Base codes for the five account types. The engine-level account code is
// the base code plus the caller's numeric account code.
const (
	AssetBaseCode     uint16 = 100
	LiabilityBaseCode uint16 = 200
	EquityBaseCode    uint16 = 300
	RevenueBaseCode   uint16 = 400
	ExpenseBaseCode   uint16 = 500
)

// ValidAccountTypes lists the accepted account type names, used in
// validation error messages.
const ValidAccountTypes = "ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE"

// AccountTypeCode resolves an account type name (case-insensitive) to its
// base code. Exactly five types exist; anything else is a validation error.
func AccountTypeCode(accountType string) (uint16, error) {
	switch strings.ToUpper(accountType) {
	case "ASSET":
		return AssetBaseCode, nil
	case "LIABILITY":
		return LiabilityBaseCode, nil
	case "EQUITY":
		return EquityBaseCode, nil
	case "REVENUE":
		return RevenueBaseCode, nil
	case "EXPENSE":
		return ExpenseBaseCode, nil
	default:
		return 0, Validationf("Invalid account type: %s. Must be one of: %s", accountType, ValidAccountTypes)
	}
}
