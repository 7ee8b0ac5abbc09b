package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "token"
	StoreKey   = ModuleName
)

// CanonicalDecimals is the fixed precision used for pool position balances
// and for all cross-token arithmetic.
const CanonicalDecimals = 18

// Token describes one fungible ledger entry. A token with a non-empty
// Controller only accepts mint/burn/blocking calls carrying that controller
// identity; a token with TransfersBlocked rejects holder-initiated transfers.
type Token struct {
	Denom            string `json:"denom"`
	Name             string `json:"name"`
	Symbol           string `json:"symbol"`
	Decimals         uint32 `json:"decimals"`
	Controller       string `json:"controller,omitempty"`
	TransfersBlocked bool   `json:"transfers_blocked,omitempty"`
	CreatedAt        int64  `json:"created_at"`
	UpdatedAt        int64  `json:"updated_at"`
}

// NewToken creates a new token record
func NewToken(denom, name, symbol string, decimals uint32, controller string, now int64) *Token {
	return &Token{
		Denom:      denom,
		Name:       name,
		Symbol:     symbol,
		Decimals:   decimals,
		Controller: controller,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate checks the token parameters
func (t *Token) Validate() error {
	if t.Denom == "" {
		return ErrInvalidDenom
	}
	if t.Decimals > CanonicalDecimals {
		return ErrInvalidDecimals
	}
	return nil
}

// ScaleFactor returns 10^(CanonicalDecimals - decimals)
func ScaleFactor(decimals uint32) math.Int {
	return math.NewIntWithDecimal(1, int(CanonicalDecimals-decimals))
}

// NormalizeToCanonical scales an amount in base units of a d-decimal token up
// to the canonical 18-decimal scale. Exact for decimals <= 18.
func NormalizeToCanonical(amount math.Int, decimals uint32) math.Int {
	if decimals == CanonicalDecimals {
		return amount
	}
	return amount.Mul(ScaleFactor(decimals))
}

// DenormalizeFromCanonical scales a canonical 18-decimal amount back down to
// base units of a d-decimal token, truncating any sub-unit remainder.
func DenormalizeFromCanonical(amount math.Int, decimals uint32) math.Int {
	if decimals == CanonicalDecimals {
		return amount
	}
	return amount.Quo(ScaleFactor(decimals))
}
