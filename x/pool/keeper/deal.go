package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	dealtypes "github.com/openalpha/dealflow/x/deal/types"
	"github.com/openalpha/dealflow/x/pool/types"
	tokentypes "github.com/openalpha/dealflow/x/token/types"
)

// DealParams carries the sponsor's deal terms before validation
type DealParams struct {
	DealID                string
	UnderlyingDenom       string
	PurchaseTokenTotal    math.Int
	UnderlyingTotal       math.Int
	VestingPeriodSeconds  int64
	VestingCliffSeconds   int64
	ProRataSeconds        int64
	OpenSeconds           int64
	Holder                string
	HolderFundingDeadline int64
}

// CreateDeal freezes deal terms and instantiates the deal entity. Callable
// once per pool, by the sponsor, after the purchase window elapses or the
// cap fills exactly.
func (k *Keeper) CreateDeal(ctx sdk.Context, sponsor, poolID string, params *DealParams) (*dealtypes.Deal, error) {
	now := ctx.BlockTime().Unix()

	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	if sponsor != pool.Sponsor {
		return nil, types.ErrUnauthorized
	}
	if pool.HasDeal() {
		return nil, types.ErrDealAlreadyExists
	}
	if pool.Expired(now) {
		return nil, types.ErrPoolExpired
	}
	if pool.PurchaseWindowOpen(now) && !pool.CapReached() {
		return nil, types.ErrDealNotAllowedYet
	}
	if params.ProRataSeconds < types.MinProRataSeconds {
		return nil, types.ErrProRataPeriodTooShort
	}

	holdings := k.tokenKeeper.BalanceOf(ctx, pool.PurchaseDenom, pool.EscrowAddress())
	if holdings.LT(params.PurchaseTokenTotal) {
		return nil, types.ErrInsufficientHoldings
	}

	underlying := k.tokenKeeper.GetToken(ctx, params.UnderlyingDenom)
	if underlying == nil {
		return nil, types.ErrInvalidConfig.Wrap("underlying token not on ledger")
	}

	terms := &dealtypes.DealTerms{
		DealID:                params.DealID,
		PoolID:                poolID,
		Holder:                params.Holder,
		UnderlyingDenom:       params.UnderlyingDenom,
		UnderlyingDecimals:    underlying.Decimals,
		PurchaseDenom:         pool.PurchaseDenom,
		PurchaseDecimals:      pool.PurchaseDecimals,
		UnderlyingTotal:       params.UnderlyingTotal,
		PurchaseTokenTotal:    params.PurchaseTokenTotal,
		FeeNumerator:          int64(types.FeeBase - types.ProtocolFeeBps - pool.SponsorFeeBps),
		FeeBase:               int64(types.FeeBase),
		VestingPeriodSeconds:  params.VestingPeriodSeconds,
		VestingCliffSeconds:   params.VestingCliffSeconds,
		ProRataSeconds:        params.ProRataSeconds,
		OpenSeconds:           params.OpenSeconds,
		HolderFundingDeadline: params.HolderFundingDeadline,
	}

	deal, err := k.dealKeeper.CreateDeal(ctx, terms)
	if err != nil {
		return nil, err
	}

	pool.DealID = deal.DealID
	pool.UpdatedAt = now
	k.SetPool(ctx, pool)

	k.logger.Info("pool deal created",
		"pool_id", poolID,
		"deal_id", deal.DealID,
		"purchase_token_total", params.PurchaseTokenTotal.String(),
		"underlying_total", params.UnderlyingTotal.String(),
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("pool_deal_created",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("deal_id", deal.DealID),
			sdk.NewAttribute("sponsor", sponsor),
			sdk.NewAttribute("holder", params.Holder),
			sdk.NewAttribute("purchase_token_total", params.PurchaseTokenTotal.String()),
		),
	)
	return deal, nil
}

// maxProRataPurchase computes the participant's unredeemed pro-rata
// entitlement in purchase base units. The base counts already-accepted
// amounts so partial redemptions never inflate the remaining share.
func (k *Keeper) maxProRataPurchase(ctx sdk.Context, pool *types.Pool, deal *dealtypes.Deal, participant string) math.Int {
	position := k.PositionBalance(ctx, pool, participant)
	positionPurchase := tokentypes.DenormalizeFromCanonical(position, pool.PurchaseDecimals)

	alloc := k.dealKeeper.GetAcceptedPurchase(ctx, deal.DealID, participant)
	base := positionPurchase.Add(alloc)

	// Multiply before dividing so the share floors exactly. A pre-rounded
	// ratio can land one base unit high for ratios like 2/3.
	entitlement := base.Mul(deal.PurchaseTokenTotal).Quo(pool.TotalPurchased).Sub(alloc)

	if entitlement.IsNegative() {
		return math.ZeroInt()
	}
	if entitlement.GT(positionPurchase) {
		return positionPurchase
	}
	return entitlement
}

// MaxProRataAvailable returns the participant's remaining pro-rata
// entitlement in canonical position units, zero when no deal exists
func (k *Keeper) MaxProRataAvailable(ctx sdk.Context, poolID, participant string) math.Int {
	pool := k.GetPool(ctx, poolID)
	if pool == nil || !pool.HasDeal() {
		return math.ZeroInt()
	}
	deal := k.dealKeeper.GetDeal(ctx, pool.DealID)
	if deal == nil {
		return math.ZeroInt()
	}
	return tokentypes.NormalizeToCanonical(k.maxProRataPurchase(ctx, pool, deal, participant), pool.PurchaseDecimals)
}

// AcceptDealTokens redeems position into deal-claim balance. amount is in
// canonical position units; max redeems the caller's full current
// entitlement for the active window.
func (k *Keeper) AcceptDealTokens(ctx sdk.Context, participant, poolID string, amount math.Int, max bool) (math.Int, math.Int, error) {
	now := ctx.BlockTime().Unix()

	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return math.ZeroInt(), math.ZeroInt(), types.ErrPoolNotFound
	}
	if !pool.HasDeal() {
		return math.ZeroInt(), math.ZeroInt(), dealtypes.ErrDealNotFound
	}
	deal := k.dealKeeper.GetDeal(ctx, pool.DealID)
	if deal == nil {
		return math.ZeroInt(), math.ZeroInt(), dealtypes.ErrDealNotFound
	}

	remaining := k.maxProRataPurchase(ctx, pool, deal, participant)

	var purchaseAmount math.Int
	if max {
		if deal.InProRataWindow(now) {
			purchaseAmount = remaining
		} else {
			position := tokentypes.DenormalizeFromCanonical(k.PositionBalance(ctx, pool, participant), pool.PurchaseDecimals)
			capacity := deal.RemainingCapacity()
			purchaseAmount = position
			if capacity.LT(purchaseAmount) {
				purchaseAmount = capacity
			}
		}
		if !purchaseAmount.IsPositive() {
			return math.ZeroInt(), math.ZeroInt(), dealtypes.ErrInvalidAmount
		}
	} else {
		purchaseAmount = tokentypes.DenormalizeFromCanonical(amount, pool.PurchaseDecimals)
		if !purchaseAmount.IsPositive() {
			return math.ZeroInt(), math.ZeroInt(), dealtypes.ErrInvalidAmount
		}
	}

	position := k.PositionBalance(ctx, pool, participant)
	burned := tokentypes.NormalizeToCanonical(purchaseAmount, pool.PurchaseDecimals)
	if burned.GT(position) {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInsufficientPosition
	}

	claimCredit, err := k.dealKeeper.Convert(ctx, pool.DealID, participant, purchaseAmount, remaining)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	if err := k.tokenKeeper.Burn(ctx, types.ModuleName, pool.PositionDenom(), participant, burned); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	// The accepted contribution is the holder's payment for the converted
	// underlying; it leaves pool escrow the moment conversion settles.
	if err := k.tokenKeeper.ModuleTransfer(ctx, types.ModuleName, pool.PurchaseDenom, pool.EscrowAddress(), deal.Holder, purchaseAmount); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	k.logger.Info("deal tokens accepted",
		"pool_id", poolID,
		"deal_id", pool.DealID,
		"participant", participant,
		"purchase_amount", purchaseAmount.String(),
		"claim_credit", claimCredit.String(),
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("pool_accept",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("deal_id", pool.DealID),
			sdk.NewAttribute("participant", participant),
			sdk.NewAttribute("position_burned", burned.String()),
			sdk.NewAttribute("claim_credit", claimCredit.String()),
		),
	)
	return burned, claimCredit, nil
}
