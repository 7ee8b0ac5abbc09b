package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrPoolNotFound           = errors.Register("pool", 1, "pool not found")
	ErrPoolExists             = errors.Register("pool", 2, "pool already initialized")
	ErrUnauthorized           = errors.Register("pool", 3, "unauthorized")
	ErrPurchaseWindowClosed   = errors.Register("pool", 4, "outside of purchase window")
	ErrCapExceeded            = errors.Register("pool", 5, "purchase exceeds pool cap")
	ErrDealAlreadyExists      = errors.Register("pool", 6, "deal already exists for pool")
	ErrDealNotAllowedYet      = errors.Register("pool", 7, "purchase window still open")
	ErrInsufficientHoldings   = errors.Register("pool", 8, "pool holdings insufficient for deal total")
	ErrProRataPeriodTooShort  = errors.Register("pool", 9, "pro-rata period too short")
	ErrWithdrawLocked         = errors.Register("pool", 10, "withdrawals locked while deal is active")
	ErrNoTransfersAfterRedeem = errors.Register("pool", 11, "no transfers after redeem starts")
	ErrNoPendingSponsor       = errors.Register("pool", 12, "no pending sponsor nomination")
	ErrInsufficientPosition   = errors.Register("pool", 13, "insufficient position balance")
	ErrInvalidConfig          = errors.Register("pool", 14, "invalid pool configuration")
	ErrPurchaseWindowTooShort = errors.Register("pool", 15, "purchase window shorter than minimum")
	ErrPoolDurationTooLong    = errors.Register("pool", 16, "pool duration exceeds one year")
	ErrSponsorFeeTooHigh      = errors.Register("pool", 17, "sponsor fee exceeds protocol maximum")
	ErrPoolExpired            = errors.Register("pool", 18, "pool expired")
	ErrInvalidAmount          = errors.Register("pool", 19, "amount must be positive")
	ErrNothingToWithdraw      = errors.Register("pool", 20, "no position to withdraw")
)
