package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/dealflow/x/deal/types"
)

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// DepositUnderlying takes underlying tokens from the holder into deal
// escrow. Completion snapshots the redemption window boundaries and the
// absolute vesting cliff, and locks pool position transfers.
func (k *Keeper) DepositUnderlying(ctx sdk.Context, holder, dealID string, amount math.Int) (*types.Deal, error) {
	now := ctx.BlockTime().Unix()

	deal := k.GetDeal(ctx, dealID)
	if deal == nil {
		return nil, types.ErrDealNotFound
	}
	if holder != deal.Holder {
		return nil, types.ErrUnauthorized
	}
	if deal.DepositComplete {
		return nil, types.ErrDepositComplete
	}
	if now > deal.HolderFundingDeadline {
		return nil, types.ErrFundingDeadlinePassed
	}
	if !amount.IsPositive() {
		return nil, types.ErrInvalidAmount
	}

	// The holder pre-approves this module as spender on the underlying
	// ledger; the pull keeps checks ahead of any balance mutation.
	if err := k.tokenKeeper.TransferFrom(ctx, deal.UnderlyingDenom, types.ModuleName, holder, deal.EscrowAddress(), amount); err != nil {
		return nil, err
	}

	deal.DepositTotal = deal.DepositTotal.Add(amount)
	deal.UpdatedAt = now

	if deal.DepositTotal.GTE(deal.UnderlyingTotal) {
		deal.DepositComplete = true
		deal.ProRataStart = now
		deal.ProRataEnd = now + deal.ProRataSeconds
		deal.OpenEnd = deal.ProRataEnd + deal.OpenSeconds
		deal.VestingCliffAt = deal.OpenEnd + deal.VestingCliffSeconds

		// Position transfers lock the moment redemption opens so
		// entitlements can no longer be gamed by shuffling balances.
		positionDenom := "pool/" + deal.PoolID
		if err := k.tokenKeeper.SetTransfersBlocked(ctx, "pool", positionDenom, true); err != nil {
			return nil, err
		}

		k.unindexDeal(deal)

		k.logger.Info("deal fully funded",
			"deal_id", deal.DealID,
			"deposit_total", deal.DepositTotal.String(),
			"pro_rata_start", deal.ProRataStart,
			"open_end", deal.OpenEnd,
			"vesting_cliff_at", deal.VestingCliffAt,
		)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent("deal_funded",
				sdk.NewAttribute("deal_id", deal.DealID),
				sdk.NewAttribute("holder", holder),
				sdk.NewAttribute("deposit_total", deal.DepositTotal.String()),
				sdk.NewAttribute("pro_rata_start", formatInt(deal.ProRataStart)),
				sdk.NewAttribute("pro_rata_end", formatInt(deal.ProRataEnd)),
				sdk.NewAttribute("open_end", formatInt(deal.OpenEnd)),
				sdk.NewAttribute("vesting_cliff_at", formatInt(deal.VestingCliffAt)),
			),
		)
	}

	k.SetDeal(ctx, deal)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("deal_deposit",
			sdk.NewAttribute("deal_id", deal.DealID),
			sdk.NewAttribute("holder", holder),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("deposit_total", deal.DepositTotal.String()),
		),
	)
	return deal, nil
}
