package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/dealflow/x/deal/types"
)

// ClaimableTokens mirrors the claim formula for queries and tests
func (k *Keeper) ClaimableTokens(ctx sdk.Context, dealID, participant string) math.Int {
	deal := k.GetDeal(ctx, dealID)
	if deal == nil || !deal.DepositComplete {
		return math.ZeroInt()
	}
	alloc := k.GetAllocation(ctx, dealID, participant)
	return types.ClaimableAmount(alloc.ClaimBalance, alloc.Claimed, deal.VestingCliffAt, deal.VestingPeriodSeconds, ctx.BlockTime().Unix())
}

// Claim releases the participant's vested, not yet paid underlying tokens
func (k *Keeper) Claim(ctx sdk.Context, participant, dealID string) (math.Int, error) {
	now := ctx.BlockTime().Unix()

	deal := k.GetDeal(ctx, dealID)
	if deal == nil {
		return math.ZeroInt(), types.ErrDealNotFound
	}
	if !deal.DepositComplete {
		return math.ZeroInt(), types.ErrDealNeverFunded
	}

	alloc := k.GetAllocation(ctx, dealID, participant)
	claimable := types.ClaimableAmount(alloc.ClaimBalance, alloc.Claimed, deal.VestingCliffAt, deal.VestingPeriodSeconds, now)
	if !claimable.IsPositive() {
		return math.ZeroInt(), types.ErrNothingToClaim
	}

	alloc.Claimed = alloc.Claimed.Add(claimable)
	alloc.UpdatedAt = now
	k.SetAllocation(ctx, alloc)

	deal.TotalClaimed = deal.TotalClaimed.Add(claimable)
	deal.UpdatedAt = now
	k.SetDeal(ctx, deal)

	// Retire the matching claim-token balance and pay out the underlying.
	if err := k.tokenKeeper.Burn(ctx, types.ModuleName, deal.ClaimDenom(), participant, claimable); err != nil {
		return math.ZeroInt(), err
	}
	// Escrow payouts take the module path so a transfer freeze on the
	// underlying cannot strand vested claims.
	if err := k.tokenKeeper.ModuleTransfer(ctx, types.ModuleName, deal.UnderlyingDenom, deal.EscrowAddress(), participant, claimable); err != nil {
		return math.ZeroInt(), err
	}

	k.logger.Info("claim released",
		"deal_id", dealID,
		"participant", participant,
		"amount", claimable.String(),
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("deal_claim",
			sdk.NewAttribute("deal_id", dealID),
			sdk.NewAttribute("participant", participant),
			sdk.NewAttribute("amount", claimable.String()),
			sdk.NewAttribute("claimed_total", alloc.Claimed.String()),
		),
	)
	return claimable, nil
}
