package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "deal"
	StoreKey   = ModuleName
)

// MinProRataSeconds mirrors the pool-side floor on the first redemption phase
const MinProRataSeconds = 30 * 60

// DealTerms carries the frozen creation parameters handed over by the pool.
// Amounts are base units of their respective tokens; durations are seconds.
type DealTerms struct {
	DealID                string
	PoolID                string
	Holder                string
	UnderlyingDenom       string
	UnderlyingDecimals    uint32
	PurchaseDenom         string
	PurchaseDecimals      uint32
	UnderlyingTotal       math.Int
	PurchaseTokenTotal    math.Int
	FeeNumerator          int64
	FeeBase               int64
	VestingPeriodSeconds  int64
	VestingCliffSeconds   int64
	ProRataSeconds        int64
	OpenSeconds           int64
	HolderFundingDeadline int64
}

// Validate checks the deal terms against now (unix seconds)
func (t *DealTerms) Validate(now int64) error {
	if t.DealID == "" || t.PoolID == "" {
		return ErrInvalidTerms.Wrap("empty id")
	}
	if t.Holder == "" {
		return ErrInvalidTerms.Wrap("empty holder")
	}
	if t.UnderlyingDenom == "" {
		return ErrInvalidTerms.Wrap("empty underlying denom")
	}
	if t.UnderlyingTotal.IsNil() || !t.UnderlyingTotal.IsPositive() {
		return ErrInvalidTerms.Wrap("underlying total must be positive")
	}
	if t.PurchaseTokenTotal.IsNil() || !t.PurchaseTokenTotal.IsPositive() {
		return ErrInvalidTerms.Wrap("purchase token total must be positive")
	}
	if t.FeeBase <= 0 || t.FeeNumerator < 0 || t.FeeNumerator > t.FeeBase {
		return ErrInvalidTerms.Wrap("fee fraction out of range")
	}
	if t.ProRataSeconds < MinProRataSeconds {
		return ErrInvalidTerms.Wrap("pro-rata period too short")
	}
	if t.OpenSeconds < 0 || t.VestingPeriodSeconds < 0 || t.VestingCliffSeconds < 0 {
		return ErrInvalidTerms.Wrap("negative duration")
	}
	if t.HolderFundingDeadline <= now {
		return ErrInvalidTerms.Wrap("funding deadline in the past")
	}
	return nil
}

// Deal tracks one settlement through funding, redemption, and vesting.
// Window timestamps stay zero until the holder's deposit completes.
type Deal struct {
	DealID        string `json:"deal_id"`
	PoolID        string `json:"pool_id"`
	Holder        string `json:"holder"`
	PendingHolder string `json:"pending_holder,omitempty"`

	UnderlyingDenom    string `json:"underlying_denom"`
	UnderlyingDecimals uint32 `json:"underlying_decimals"`
	PurchaseDenom      string `json:"purchase_denom"`
	PurchaseDecimals   uint32 `json:"purchase_decimals"`

	UnderlyingTotal    math.Int `json:"underlying_total"`
	PurchaseTokenTotal math.Int `json:"purchase_token_total"`

	// ExchangeRate is underlying per purchase at canonical precision,
	// computed once at creation and never revised.
	ExchangeRate math.LegacyDec `json:"exchange_rate"`

	FeeNumerator int64 `json:"fee_numerator"`
	FeeBase      int64 `json:"fee_base"`

	VestingPeriodSeconds int64 `json:"vesting_period_seconds"`
	VestingCliffSeconds  int64 `json:"vesting_cliff_seconds"`
	ProRataSeconds       int64 `json:"pro_rata_seconds"`
	OpenSeconds          int64 `json:"open_seconds"`

	HolderFundingDeadline int64 `json:"holder_funding_deadline"`

	DepositTotal    math.Int `json:"deposit_total"`
	DepositComplete bool     `json:"deposit_complete"`

	ProRataStart   int64 `json:"pro_rata_start,omitempty"`
	ProRataEnd     int64 `json:"pro_rata_end,omitempty"`
	OpenEnd        int64 `json:"open_end,omitempty"`
	VestingCliffAt int64 `json:"vesting_cliff_at,omitempty"`

	TotalAcceptedPurchase    math.Int `json:"total_accepted_purchase"`
	TotalUnderlyingConverted math.Int `json:"total_underlying_converted"`
	TotalClaimEntitlement    math.Int `json:"total_claim_entitlement"`
	TotalClaimed             math.Int `json:"total_claimed"`

	FundingExpired bool `json:"funding_expired,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Allocation tracks one participant's redemption and claim progress
type Allocation struct {
	DealID           string   `json:"deal_id"`
	Participant      string   `json:"participant"`
	AcceptedPurchase math.Int `json:"accepted_purchase"`
	ClaimBalance     math.Int `json:"claim_balance"`
	Claimed          math.Int `json:"claimed"`
	UpdatedAt        int64    `json:"updated_at"`
}

// NewAllocation creates an empty allocation record
func NewAllocation(dealID, participant string) *Allocation {
	return &Allocation{
		DealID:           dealID,
		Participant:      participant,
		AcceptedPurchase: math.ZeroInt(),
		ClaimBalance:     math.ZeroInt(),
		Claimed:          math.ZeroInt(),
	}
}

// ClaimDenom returns the ledger denom of the deal's claim token
func (d *Deal) ClaimDenom() string {
	return "deal/" + d.DealID
}

// EscrowAddress returns the deal's escrow account on the token ledger
func (d *Deal) EscrowAddress() string {
	return "deal/" + d.DealID + "/escrow"
}

// InProRataWindow reports whether now falls in the pro-rata phase
func (d *Deal) InProRataWindow(now int64) bool {
	return d.DepositComplete && now >= d.ProRataStart && now <= d.ProRataEnd
}

// InOpenWindow reports whether now falls in the open phase
func (d *Deal) InOpenWindow(now int64) bool {
	return d.DepositComplete && now > d.ProRataEnd && now <= d.OpenEnd
}

// InRedeemWindow reports whether now falls in either redemption phase
func (d *Deal) InRedeemWindow(now int64) bool {
	return d.DepositComplete && now >= d.ProRataStart && now <= d.OpenEnd
}

// FundingDeadlinePassed reports whether the holder missed the deadline
func (d *Deal) FundingDeadlinePassed(now int64) bool {
	return !d.DepositComplete && now > d.HolderFundingDeadline
}

// RemainingCapacity returns the purchase base units still convertible
func (d *Deal) RemainingCapacity() math.Int {
	return d.PurchaseTokenTotal.Sub(d.TotalAcceptedPurchase)
}
