package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrTokenNotFound          = errors.Register("token", 1, "token not found")
	ErrTokenExists            = errors.Register("token", 2, "token already exists")
	ErrInvalidDenom           = errors.Register("token", 3, "invalid denom")
	ErrInvalidDecimals        = errors.Register("token", 4, "decimals exceed canonical precision")
	ErrInvalidAmount          = errors.Register("token", 5, "amount must be positive")
	ErrInsufficientBalance    = errors.Register("token", 6, "insufficient balance")
	ErrInsufficientAllowance  = errors.Register("token", 7, "insufficient allowance")
	ErrTransfersBlocked       = errors.Register("token", 8, "transfers blocked for token")
	ErrUnauthorizedController = errors.Register("token", 9, "caller is not the token controller")
)
