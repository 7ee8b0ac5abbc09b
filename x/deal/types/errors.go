package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrDealNotFound           = errors.Register("deal", 1, "deal not found")
	ErrDealExists             = errors.Register("deal", 2, "deal already initialized")
	ErrUnauthorized           = errors.Register("deal", 3, "unauthorized")
	ErrDepositComplete        = errors.Register("deal", 4, "deposit already complete")
	ErrFundingDeadlinePassed  = errors.Register("deal", 5, "holder funding deadline passed")
	ErrOutsideRedeemWindow    = errors.Register("deal", 6, "outside of redeem window")
	ErrAcceptingMoreThanShare = errors.Register("deal", 7, "accepting more than share")
	ErrProRataNotMaxed        = errors.Register("deal", 8, "ineligible: didn't max pro-rata")
	ErrNoExcessToWithdraw     = errors.Register("deal", 9, "no excess balance to withdraw")
	ErrOpenWindowNotElapsed   = errors.Register("deal", 10, "open window not yet elapsed")
	ErrDealNeverFunded        = errors.Register("deal", 11, "deposit never completed")
	ErrNothingToClaim         = errors.Register("deal", 12, "nothing claimable")
	ErrNoPendingHolder        = errors.Register("deal", 13, "no pending holder nomination")
	ErrInvalidTerms           = errors.Register("deal", 14, "invalid deal terms")
	ErrInvalidAmount          = errors.Register("deal", 15, "amount must be positive")
)
