package types

import (
	"context"
	"time"
)

// PoolInfo represents a fundraising pool in the API response. Amounts are
// decimal strings in base units of the purchase token.
type PoolInfo struct {
	PoolID            string `json:"pool_id"`
	Name              string `json:"name"`
	Symbol            string `json:"symbol"`
	Sponsor           string `json:"sponsor"`
	PendingSponsor    string `json:"pending_sponsor,omitempty"`
	PurchaseDenom     string `json:"purchase_denom"`
	PurchaseDecimals  uint32 `json:"purchase_decimals"`
	Cap               string `json:"cap"`
	TotalPurchased    string `json:"total_purchased"`
	PurchaseWindowEnd int64  `json:"purchase_window_end"`
	PoolExpiry        int64  `json:"pool_expiry"`
	SponsorFeeBps     uint32 `json:"sponsor_fee_bps"`
	DealID            string `json:"deal_id,omitempty"`
	Status            string `json:"status"`
	CreatedAt         int64  `json:"created_at"`
	UpdatedAt         int64  `json:"updated_at"`
}

// PositionInfo represents a participant's position token balance in a pool
type PositionInfo struct {
	PoolID      string `json:"pool_id"`
	Participant string `json:"participant"`
	Denom       string `json:"denom"`
	Balance     string `json:"balance"`
}

// MaxProRataInfo represents a participant's remaining pro-rata headroom
type MaxProRataInfo struct {
	PoolID      string `json:"pool_id"`
	Participant string `json:"participant"`
	Amount      string `json:"amount"`
}

// DealInfo represents a deal in the API response. Window timestamps are
// zero until the holder's deposit completes.
type DealInfo struct {
	DealID                string `json:"deal_id"`
	PoolID                string `json:"pool_id"`
	Holder                string `json:"holder"`
	PendingHolder         string `json:"pending_holder,omitempty"`
	UnderlyingDenom       string `json:"underlying_denom"`
	UnderlyingDecimals    uint32 `json:"underlying_decimals"`
	PurchaseDenom         string `json:"purchase_denom"`
	PurchaseDecimals      uint32 `json:"purchase_decimals"`
	UnderlyingTotal       string `json:"underlying_total"`
	PurchaseTokenTotal    string `json:"purchase_token_total"`
	ExchangeRate          string `json:"exchange_rate"`
	FeeNumerator          int64  `json:"fee_numerator"`
	FeeBase               int64  `json:"fee_base"`
	HolderFundingDeadline int64  `json:"holder_funding_deadline"`
	DepositTotal          string `json:"deposit_total"`
	DepositComplete       bool   `json:"deposit_complete"`
	ProRataStart          int64  `json:"pro_rata_start,omitempty"`
	ProRataEnd            int64  `json:"pro_rata_end,omitempty"`
	OpenEnd               int64  `json:"open_end,omitempty"`
	VestingCliffAt        int64  `json:"vesting_cliff_at,omitempty"`
	VestingPeriodSeconds  int64  `json:"vesting_period_seconds"`
	TotalAcceptedPurchase string `json:"total_accepted_purchase"`
	RemainingCapacity     string `json:"remaining_capacity"`
	TotalClaimEntitlement string `json:"total_claim_entitlement"`
	TotalClaimed          string `json:"total_claimed"`
	Window                string `json:"window"`
	CreatedAt             int64  `json:"created_at"`
	UpdatedAt             int64  `json:"updated_at"`
}

// AllocationInfo represents a participant's redemption and claim progress
type AllocationInfo struct {
	DealID           string `json:"deal_id"`
	Participant      string `json:"participant"`
	AcceptedPurchase string `json:"accepted_purchase"`
	ClaimBalance     string `json:"claim_balance"`
	Claimed          string `json:"claimed"`
	UpdatedAt        int64  `json:"updated_at"`
}

// ClaimableInfo represents the currently vested, unclaimed amount
type ClaimableInfo struct {
	DealID         string `json:"deal_id"`
	Participant    string `json:"participant"`
	Claimable      string `json:"claimable"`
	VestingCliffAt int64  `json:"vesting_cliff_at,omitempty"`
	VestingEndsAt  int64  `json:"vesting_ends_at,omitempty"`
}

// TokenInfo represents a ledger token in the API response
type TokenInfo struct {
	Denom            string `json:"denom"`
	Name             string `json:"name"`
	Symbol           string `json:"symbol"`
	Decimals         uint32 `json:"decimals"`
	Controller       string `json:"controller,omitempty"`
	TransfersBlocked bool   `json:"transfers_blocked,omitempty"`
	TotalSupply      string `json:"total_supply"`
	CreatedAt        int64  `json:"created_at"`
}

// BalanceInfo represents one account's balance in one token
type BalanceInfo struct {
	Denom   string `json:"denom"`
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// PoolService defines the interface for pool queries
type PoolService interface {
	ListPools(ctx context.Context) ([]*PoolInfo, error)
	GetPool(ctx context.Context, poolID string) (*PoolInfo, error)
	GetPosition(ctx context.Context, poolID, participant string) (*PositionInfo, error)
	GetMaxProRata(ctx context.Context, poolID, participant string) (*MaxProRataInfo, error)
}

// DealService defines the interface for deal queries
type DealService interface {
	ListDeals(ctx context.Context) ([]*DealInfo, error)
	GetDeal(ctx context.Context, dealID string) (*DealInfo, error)
	ListAllocations(ctx context.Context, dealID string) ([]*AllocationInfo, error)
	GetAllocation(ctx context.Context, dealID, participant string) (*AllocationInfo, error)
	GetClaimable(ctx context.Context, dealID, participant string) (*ClaimableInfo, error)
}

// TokenService defines the interface for ledger queries
type TokenService interface {
	ListTokens(ctx context.Context) ([]*TokenInfo, error)
	GetToken(ctx context.Context, denom string) (*TokenInfo, error)
	GetBalance(ctx context.Context, denom, address string) (*BalanceInfo, error)
}

// Helper function to get current timestamp in milliseconds
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
