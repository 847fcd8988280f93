// Package codec converts between the caller-facing representations
// (canonical UUID strings, decimal amounts) and TigerBeetle's native
// 128-bit identifiers and integer minor units.
package codec

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tigerbeetle/tigerbeetle-go/pkg/types"

	"github.com/ledgerr/tigerbeetle-facade/internal/domain/ledger"
)

// minorUnitScale scales decimal currency amounts to cents.
var minorUnitScale = decimal.NewFromInt(100)

// UUIDToUint128 parses a canonical dashed-hex identifier and returns the
// engine's 128-bit value. TigerBeetle's Uint128 is a 16-byte little-endian
// quantity split into low/high 8-byte halves; decoding the RFC byte order
// into the low half first keeps the mapping positional, so the UUID bytes
// carry over unchanged.
func UUIDToUint128(s string) (types.Uint128, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return types.Uint128{}, ledger.ValidationError{Message: fmt.Sprintf("Invalid identifier: %s", s)}
	}
	return types.BytesToUint128([16]byte(id)), nil
}

// Uint128ToUUID renders the engine's 128-bit value back as the canonical
// dashed lower-case hex string. Inverse of UUIDToUint128.
func Uint128ToUUID(value types.Uint128) string {
	return uuid.UUID(value.Bytes()).String()
}

// RandomID returns a fresh random 128-bit identifier.
func RandomID() types.Uint128 {
	return types.BytesToUint128([16]byte(uuid.New()))
}

// DeterministicID derives a 128-bit identifier from an idempotency key by
// taking the first 16 bytes of the SHA-256 digest of the key. The same key
// always yields the same identifier, which lets the engine's at-most-once
// creation semantics carry the whole idempotency guarantee.
func DeterministicID(key string) types.Uint128 {
	digest := sha256.Sum256([]byte(key))
	var b [16]byte
	copy(b[:], digest[:16])
	return types.BytesToUint128(b)
}

// ToMinorUnits converts a non-negative decimal amount to cents, truncating
// any fraction beyond two decimal places. Callers validate sign beforehand.
func ToMinorUnits(amount decimal.Decimal) uint64 {
	return uint64(amount.Mul(minorUnitScale).IntPart())
}

// FromMinorUnits converts cents back to a decimal amount. Exact for every
// value ToMinorUnits can produce.
func FromMinorUnits(units uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(units), -2)
}

// FromPosted converts an engine posted-amount counter to a decimal amount.
func FromPosted(units types.Uint128) decimal.Decimal {
	bi := units.BigInt()
	return decimal.NewFromBigInt(&bi, -2)
}

// BalanceFromPosted computes (debits - credits) in decimal form. The
// subtraction runs over big integers so a credit-heavy account yields an
// exact negative balance rather than an unsigned wraparound.
func BalanceFromPosted(debitsPosted, creditsPosted types.Uint128) decimal.Decimal {
	debits := debitsPosted.BigInt()
	credits := creditsPosted.BigInt()
	return decimal.NewFromBigInt(new(big.Int).Sub(&debits, &credits), -2)
}
