package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/dealflow/x/deal/types"
	tokentypes "github.com/openalpha/dealflow/x/token/types"
)

// CreateDeal instantiates a deal from frozen terms. Called by the pool
// module's accept path; the terms snapshot never changes afterwards.
func (k *Keeper) CreateDeal(ctx sdk.Context, terms *types.DealTerms) (*types.Deal, error) {
	now := ctx.BlockTime().Unix()

	if k.GetDeal(ctx, terms.DealID) != nil {
		return nil, types.ErrDealExists
	}
	if err := terms.Validate(now); err != nil {
		return nil, err
	}

	// Exchange rate is underlying per purchase at canonical precision,
	// fixed here for the life of the deal.
	underlyingCanonical := tokentypes.NormalizeToCanonical(terms.UnderlyingTotal, terms.UnderlyingDecimals)
	purchaseCanonical := tokentypes.NormalizeToCanonical(terms.PurchaseTokenTotal, terms.PurchaseDecimals)
	exchangeRate := math.LegacyNewDecFromInt(underlyingCanonical).Quo(math.LegacyNewDecFromInt(purchaseCanonical))

	deal := &types.Deal{
		DealID:                terms.DealID,
		PoolID:                terms.PoolID,
		Holder:                terms.Holder,
		UnderlyingDenom:       terms.UnderlyingDenom,
		UnderlyingDecimals:    terms.UnderlyingDecimals,
		PurchaseDenom:         terms.PurchaseDenom,
		PurchaseDecimals:      terms.PurchaseDecimals,
		UnderlyingTotal:       terms.UnderlyingTotal,
		PurchaseTokenTotal:    terms.PurchaseTokenTotal,
		ExchangeRate:          exchangeRate,
		FeeNumerator:          terms.FeeNumerator,
		FeeBase:               terms.FeeBase,
		VestingPeriodSeconds:  terms.VestingPeriodSeconds,
		VestingCliffSeconds:   terms.VestingCliffSeconds,
		ProRataSeconds:        terms.ProRataSeconds,
		OpenSeconds:           terms.OpenSeconds,
		HolderFundingDeadline: terms.HolderFundingDeadline,

		DepositTotal:             math.ZeroInt(),
		TotalAcceptedPurchase:    math.ZeroInt(),
		TotalUnderlyingConverted: math.ZeroInt(),
		TotalClaimEntitlement:    math.ZeroInt(),
		TotalClaimed:             math.ZeroInt(),

		CreatedAt: now,
		UpdatedAt: now,
	}

	// Claim balances live on the ledger as a permanently non-transferable
	// token controlled by this module. Only Claim moves value out.
	if _, err := k.tokenKeeper.CreateToken(ctx, deal.ClaimDenom(), terms.DealID+" claim", "CLAIM", terms.UnderlyingDecimals, types.ModuleName); err != nil {
		return nil, err
	}
	if err := k.tokenKeeper.SetTransfersBlocked(ctx, types.ModuleName, deal.ClaimDenom(), true); err != nil {
		return nil, err
	}

	k.SetDeal(ctx, deal)
	k.indexDeal(deal)

	k.logger.Info("deal created",
		"deal_id", deal.DealID,
		"pool_id", deal.PoolID,
		"holder", deal.Holder,
		"exchange_rate", exchangeRate.String(),
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("deal_created",
			sdk.NewAttribute("deal_id", deal.DealID),
			sdk.NewAttribute("pool_id", deal.PoolID),
			sdk.NewAttribute("holder", deal.Holder),
			sdk.NewAttribute("underlying_total", deal.UnderlyingTotal.String()),
			sdk.NewAttribute("purchase_token_total", deal.PurchaseTokenTotal.String()),
			sdk.NewAttribute("exchange_rate", exchangeRate.String()),
			sdk.NewAttribute("funding_deadline", formatInt(deal.HolderFundingDeadline)),
		),
	)
	return deal, nil
}
