package keeper

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// EndBlocker emits a one-time expiry event for pools that pass their expiry
// without a deal, so downstream consumers know refunds are open for good
func (k *Keeper) EndBlocker(ctx sdk.Context) error {
	blockHeight := ctx.BlockHeight()
	now := ctx.BlockTime().Unix()
	start := time.Now()

	expiredCount := 0
	for _, pool := range k.GetAllPools(ctx) {
		if pool.HasDeal() || pool.ExpiredEventEmitted || !pool.Expired(now) {
			continue
		}

		pool.ExpiredEventEmitted = true
		pool.UpdatedAt = now
		k.SetPool(ctx, pool)
		expiredCount++

		k.logger.Info("pool expired without deal",
			"pool_id", pool.PoolID,
			"total_purchased", pool.TotalPurchased.String(),
		)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent("pool_expired",
				sdk.NewAttribute("pool_id", pool.PoolID),
				sdk.NewAttribute("total_purchased", pool.TotalPurchased.String()),
			),
		)
	}

	totalDuration := time.Since(start)

	k.logger.Debug("Pool EndBlocker completed",
		"block", blockHeight,
		"total_ms", totalDuration.Milliseconds(),
		"pools_expired", expiredCount,
	)

	if expiredCount > 0 {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				"pool_endblock",
				sdk.NewAttribute("block_height", math.NewInt(blockHeight).String()),
				sdk.NewAttribute("pools_expired", math.NewInt(int64(expiredCount)).String()),
			),
		)
	}

	return nil
}
