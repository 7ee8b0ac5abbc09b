package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/dealflow/x/pool/types"
	tokentypes "github.com/openalpha/dealflow/x/token/types"
)

// Purchase takes purchase tokens from the buyer into pool escrow and mints
// the decimal-normalized position 1:1. amount is in purchase base units.
func (k *Keeper) Purchase(ctx sdk.Context, purchaser, poolID string, amount math.Int) (math.Int, error) {
	now := ctx.BlockTime().Unix()

	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return math.ZeroInt(), types.ErrPoolNotFound
	}
	if pool.HasDeal() || !pool.PurchaseWindowOpen(now) {
		return math.ZeroInt(), types.ErrPurchaseWindowClosed
	}
	if !amount.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount
	}
	if !pool.Cap.IsZero() && pool.TotalPurchased.Add(amount).GT(pool.Cap) {
		return math.ZeroInt(), types.ErrCapExceeded
	}

	// Buyer pre-approves this module as spender on the purchase ledger.
	if err := k.tokenKeeper.TransferFrom(ctx, pool.PurchaseDenom, types.ModuleName, purchaser, pool.EscrowAddress(), amount); err != nil {
		return math.ZeroInt(), err
	}

	position := tokentypes.NormalizeToCanonical(amount, pool.PurchaseDecimals)
	if err := k.tokenKeeper.Mint(ctx, types.ModuleName, pool.PositionDenom(), purchaser, position); err != nil {
		return math.ZeroInt(), err
	}

	pool.TotalPurchased = pool.TotalPurchased.Add(amount)
	pool.UpdatedAt = now
	k.SetPool(ctx, pool)

	k.logger.Info("pool purchase",
		"pool_id", poolID,
		"purchaser", purchaser,
		"amount", amount.String(),
		"total_purchased", pool.TotalPurchased.String(),
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("pool_purchase",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("purchaser", purchaser),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("position_minted", position.String()),
			sdk.NewAttribute("total_purchased", pool.TotalPurchased.String()),
		),
	)
	return position, nil
}

// withdrawAllowed gates refunds. Positions are locked while an attached deal
// could still convert them; they free up again if the deal never funds or
// once the open redemption window has fully elapsed.
func (k *Keeper) withdrawAllowed(ctx sdk.Context, pool *types.Pool, now int64) bool {
	if !pool.HasDeal() {
		return true
	}
	deal := k.dealKeeper.GetDeal(ctx, pool.DealID)
	if deal == nil {
		return true
	}
	if deal.FundingDeadlinePassed(now) {
		return true
	}
	return deal.DepositComplete && now > deal.OpenEnd
}

// Withdraw burns position balance and refunds the matching purchase tokens.
// amount is in canonical position units; max refunds the whole position.
func (k *Keeper) Withdraw(ctx sdk.Context, withdrawer, poolID string, amount math.Int, max bool) (math.Int, math.Int, error) {
	now := ctx.BlockTime().Unix()

	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return math.ZeroInt(), math.ZeroInt(), types.ErrPoolNotFound
	}
	if !k.withdrawAllowed(ctx, pool, now) {
		return math.ZeroInt(), math.ZeroInt(), types.ErrWithdrawLocked
	}

	position := k.PositionBalance(ctx, pool, withdrawer)
	if max {
		amount = position
	}
	if amount.IsNil() || !amount.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrNothingToWithdraw
	}
	if amount.GT(position) {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInsufficientPosition
	}

	refund := tokentypes.DenormalizeFromCanonical(amount, pool.PurchaseDecimals)
	if !refund.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrNothingToWithdraw
	}

	// Burn exactly the position matching the refunded base units so dust
	// below one purchase unit stays with the holder.
	burned := tokentypes.NormalizeToCanonical(refund, pool.PurchaseDecimals)
	if err := k.tokenKeeper.Burn(ctx, types.ModuleName, pool.PositionDenom(), withdrawer, burned); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	// Escrow pays out through the module path so a transfer freeze on the
	// purchase token cannot strand refunds.
	if err := k.tokenKeeper.ModuleTransfer(ctx, types.ModuleName, pool.PurchaseDenom, pool.EscrowAddress(), withdrawer, refund); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	// Pre-deal withdrawals shrink the conversion denominator; after a deal
	// is struck the denominator stays frozen.
	if !pool.HasDeal() {
		pool.TotalPurchased = pool.TotalPurchased.Sub(refund)
	}
	pool.UpdatedAt = now
	k.SetPool(ctx, pool)

	k.logger.Info("pool withdraw",
		"pool_id", poolID,
		"withdrawer", withdrawer,
		"position_burned", burned.String(),
		"refunded", refund.String(),
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("pool_withdraw",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("withdrawer", withdrawer),
			sdk.NewAttribute("position_burned", burned.String()),
			sdk.NewAttribute("refunded", refund.String()),
		),
	)
	return burned, refund, nil
}
