package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "pool"
	StoreKey   = ModuleName
)

// Fee and window parameters. Fees are expressed in basis points of the
// converted deal amount; the protocol slice is fixed, the sponsor slice is
// chosen at pool creation.
const (
	FeeBase        = 10000
	ProtocolFeeBps = 200

	// MaxSponsorFeeBps caps the combined fee at 98% of the deal amount.
	MaxSponsorFeeBps = 9800 - ProtocolFeeBps

	MinPurchaseWindowSeconds = 30 * 60
	MaxPoolDurationSeconds   = 365 * 24 * 60 * 60
	MinProRataSeconds        = 30 * 60
)

// Pool tracks one fundraising pool through its lifecycle. Amounts are in
// base units of the purchase token; position balances live on the token
// ledger at canonical 18-decimal scale under PositionDenom.
type Pool struct {
	PoolID           string `json:"pool_id"`
	Name             string `json:"name"`
	Symbol           string `json:"symbol"`
	Sponsor          string `json:"sponsor"`
	PendingSponsor   string `json:"pending_sponsor,omitempty"`
	PurchaseDenom    string `json:"purchase_denom"`
	PurchaseDecimals uint32 `json:"purchase_decimals"`

	// Cap limits total contributions in purchase base units. Zero means
	// uncapped.
	Cap math.Int `json:"cap"`

	PurchaseWindowEnd int64  `json:"purchase_window_end"`
	PoolExpiry        int64  `json:"pool_expiry"`
	SponsorFeeBps     uint32 `json:"sponsor_fee_bps"`

	TotalPurchased math.Int `json:"total_purchased"`

	// DealID is set exactly once when the sponsor attaches a deal.
	DealID string `json:"deal_id,omitempty"`

	ExpiredEventEmitted bool `json:"expired_event_emitted,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// PoolConfig carries the creation parameters before validation
type PoolConfig struct {
	PoolID            string
	Name              string
	Symbol            string
	Sponsor           string
	PurchaseDenom     string
	PurchaseDecimals  uint32
	Cap               math.Int
	PurchaseWindowEnd int64
	PoolExpiry        int64
	SponsorFeeBps     uint32
}

// Validate checks the pool creation parameters against now (unix seconds)
func (c *PoolConfig) Validate(now int64) error {
	if c.PoolID == "" {
		return ErrInvalidConfig.Wrap("empty pool id")
	}
	if c.Sponsor == "" {
		return ErrInvalidConfig.Wrap("empty sponsor")
	}
	if c.PurchaseDenom == "" {
		return ErrInvalidConfig.Wrap("empty purchase denom")
	}
	if c.Cap.IsNil() || c.Cap.IsNegative() {
		return ErrInvalidConfig.Wrap("negative cap")
	}
	if c.PurchaseWindowEnd < now+MinPurchaseWindowSeconds {
		return ErrPurchaseWindowTooShort
	}
	if c.PoolExpiry < c.PurchaseWindowEnd {
		return ErrInvalidConfig.Wrap("expiry precedes purchase window end")
	}
	if c.PoolExpiry > now+MaxPoolDurationSeconds {
		return ErrPoolDurationTooLong
	}
	if c.SponsorFeeBps > MaxSponsorFeeBps {
		return ErrSponsorFeeTooHigh
	}
	return nil
}

// NewPool creates a pool record from a validated config
func NewPool(c *PoolConfig, now int64) *Pool {
	return &Pool{
		PoolID:            c.PoolID,
		Name:              c.Name,
		Symbol:            c.Symbol,
		Sponsor:           c.Sponsor,
		PurchaseDenom:     c.PurchaseDenom,
		PurchaseDecimals:  c.PurchaseDecimals,
		Cap:               c.Cap,
		PurchaseWindowEnd: c.PurchaseWindowEnd,
		PoolExpiry:        c.PoolExpiry,
		SponsorFeeBps:     c.SponsorFeeBps,
		TotalPurchased:    math.ZeroInt(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// PositionDenom returns the ledger denom of the pool's position token
func (p *Pool) PositionDenom() string {
	return "pool/" + p.PoolID
}

// EscrowAddress returns the pool's escrow account on the token ledger
func (p *Pool) EscrowAddress() string {
	return "pool/" + p.PoolID + "/escrow"
}

// HasDeal reports whether a deal has been attached
func (p *Pool) HasDeal() bool {
	return p.DealID != ""
}

// CapReached reports whether contributions exactly fill a non-zero cap
func (p *Pool) CapReached() bool {
	return !p.Cap.IsZero() && p.TotalPurchased.GTE(p.Cap)
}

// PurchaseWindowOpen reports whether purchases are still accepted at now
func (p *Pool) PurchaseWindowOpen(now int64) bool {
	return now < p.PurchaseWindowEnd
}

// Expired reports whether the pool passed its expiry at now
func (p *Pool) Expired(now int64) bool {
	return now > p.PoolExpiry
}
