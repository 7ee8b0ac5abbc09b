package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/dealflow/x/deal/types"
)

// SetHolder nominates a successor holder. Nothing changes hands until the
// nominee accepts.
func (k *Keeper) SetHolder(ctx sdk.Context, holder, dealID, nominee string) error {
	deal := k.GetDeal(ctx, dealID)
	if deal == nil {
		return types.ErrDealNotFound
	}
	if holder != deal.Holder {
		return types.ErrUnauthorized
	}
	if nominee == "" {
		return types.ErrInvalidTerms.Wrap("empty nominee")
	}

	deal.PendingHolder = nominee
	deal.UpdatedAt = ctx.BlockTime().Unix()
	k.SetDeal(ctx, deal)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("deal_holder_nominated",
			sdk.NewAttribute("deal_id", dealID),
			sdk.NewAttribute("holder", holder),
			sdk.NewAttribute("nominee", nominee),
		),
	)
	return nil
}

// AcceptHolder completes the two-step holder handover
func (k *Keeper) AcceptHolder(ctx sdk.Context, nominee, dealID string) error {
	deal := k.GetDeal(ctx, dealID)
	if deal == nil {
		return types.ErrDealNotFound
	}
	if deal.PendingHolder == "" {
		return types.ErrNoPendingHolder
	}
	if nominee != deal.PendingHolder {
		return types.ErrUnauthorized
	}

	previous := deal.Holder
	deal.Holder = nominee
	deal.PendingHolder = ""
	deal.UpdatedAt = ctx.BlockTime().Unix()
	k.SetDeal(ctx, deal)

	k.logger.Info("holder handover complete", "deal_id", dealID, "previous", previous, "holder", nominee)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("deal_holder_changed",
			sdk.NewAttribute("deal_id", dealID),
			sdk.NewAttribute("previous", previous),
			sdk.NewAttribute("holder", nominee),
		),
	)
	return nil
}
