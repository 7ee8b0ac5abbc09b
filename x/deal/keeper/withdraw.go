package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/dealflow/x/deal/types"
)

// excessBalance computes what the holder may reclaim at now without touching
// funds still owed to participants. Before completion the committed total
// stays reserved until the funding deadline passes; afterwards only the
// unconverted remainder is reserved through the open window, and outstanding
// unclaimed entitlements are reserved for as long as they exist.
func (k *Keeper) excessBalance(ctx sdk.Context, deal *types.Deal, now int64) math.Int {
	balance := k.tokenKeeper.BalanceOf(ctx, deal.UnderlyingDenom, deal.EscrowAddress())

	if !deal.DepositComplete {
		if now > deal.HolderFundingDeadline {
			// Funding failed; the whole deposit comes back.
			return balance
		}
		return balance.Sub(deal.UnderlyingTotal)
	}

	outstanding := deal.TotalClaimEntitlement.Sub(deal.TotalClaimed)
	if now <= deal.OpenEnd {
		unconverted := deal.UnderlyingTotal.Sub(deal.TotalUnderlyingConverted)
		return balance.Sub(unconverted).Sub(outstanding)
	}
	return balance.Sub(outstanding)
}

// Withdraw pays the holder any escrow balance in excess of outstanding
// obligations
func (k *Keeper) Withdraw(ctx sdk.Context, holder, dealID string) (math.Int, error) {
	now := ctx.BlockTime().Unix()

	deal := k.GetDeal(ctx, dealID)
	if deal == nil {
		return math.ZeroInt(), types.ErrDealNotFound
	}
	if holder != deal.Holder {
		return math.ZeroInt(), types.ErrUnauthorized
	}

	excess := k.excessBalance(ctx, deal, now)
	if !excess.IsPositive() {
		return math.ZeroInt(), types.ErrNoExcessToWithdraw
	}

	if err := k.tokenKeeper.ModuleTransfer(ctx, types.ModuleName, deal.UnderlyingDenom, deal.EscrowAddress(), holder, excess); err != nil {
		return math.ZeroInt(), err
	}

	deal.UpdatedAt = now
	k.SetDeal(ctx, deal)

	k.logger.Info("holder withdrew excess", "deal_id", dealID, "amount", excess.String())

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("deal_withdraw",
			sdk.NewAttribute("deal_id", dealID),
			sdk.NewAttribute("holder", holder),
			sdk.NewAttribute("amount", excess.String()),
		),
	)
	return excess, nil
}

// WithdrawExpiry pays the holder the entire unconverted remainder once the
// open redemption window has fully elapsed
func (k *Keeper) WithdrawExpiry(ctx sdk.Context, holder, dealID string) (math.Int, error) {
	now := ctx.BlockTime().Unix()

	deal := k.GetDeal(ctx, dealID)
	if deal == nil {
		return math.ZeroInt(), types.ErrDealNotFound
	}
	if holder != deal.Holder {
		return math.ZeroInt(), types.ErrUnauthorized
	}
	if !deal.DepositComplete {
		return math.ZeroInt(), types.ErrDealNeverFunded
	}
	if now <= deal.OpenEnd {
		return math.ZeroInt(), types.ErrOpenWindowNotElapsed
	}

	balance := k.tokenKeeper.BalanceOf(ctx, deal.UnderlyingDenom, deal.EscrowAddress())
	outstanding := deal.TotalClaimEntitlement.Sub(deal.TotalClaimed)
	remainder := balance.Sub(outstanding)
	if !remainder.IsPositive() {
		return math.ZeroInt(), types.ErrNoExcessToWithdraw
	}

	if err := k.tokenKeeper.ModuleTransfer(ctx, types.ModuleName, deal.UnderlyingDenom, deal.EscrowAddress(), holder, remainder); err != nil {
		return math.ZeroInt(), err
	}

	deal.UpdatedAt = now
	k.SetDeal(ctx, deal)

	k.logger.Info("holder withdrew expiry remainder", "deal_id", dealID, "amount", remainder.String())

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("deal_withdraw_expiry",
			sdk.NewAttribute("deal_id", dealID),
			sdk.NewAttribute("holder", holder),
			sdk.NewAttribute("amount", remainder.String()),
		),
	)
	return remainder, nil
}
