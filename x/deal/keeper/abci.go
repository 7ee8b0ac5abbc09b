package keeper

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/btree"
)

// EndBlocker marks deals whose holder missed the funding deadline
func (k *Keeper) EndBlocker(ctx sdk.Context) error {
	blockHeight := ctx.BlockHeight()
	start := time.Now()

	expiredCount := k.expireUnfundedDeals(ctx)

	totalDuration := time.Since(start)

	k.logger.Debug("Deal EndBlocker completed",
		"block", blockHeight,
		"total_ms", totalDuration.Milliseconds(),
		"deals_expired", expiredCount,
	)

	if expiredCount > 0 {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				"deal_endblock",
				sdk.NewAttribute("block_height", math.NewInt(blockHeight).String()),
				sdk.NewAttribute("deals_expired", math.NewInt(int64(expiredCount)).String()),
			),
		)
	}

	return nil
}

// expireUnfundedDeals walks the deadline index in order and flips deals
// whose deadline passed without completion. Each deal expires exactly once;
// the event is the durable signal that holder funds are reclaimable.
func (k *Keeper) expireUnfundedDeals(ctx sdk.Context) int {
	now := ctx.BlockTime().Unix()

	k.mu.Lock()
	k.loadDeadlineIndex(ctx)

	var due []string
	k.deadlineIndex.Ascend(func(item btree.Item) bool {
		di := item.(deadlineItem)
		if di.deadline >= now {
			return false
		}
		due = append(due, di.dealID)
		return true
	})
	for _, dealID := range due {
		deal := k.GetDeal(ctx, dealID)
		if deal != nil {
			k.deadlineIndex.Delete(deadlineItem{deadline: deal.HolderFundingDeadline, dealID: dealID})
		}
	}
	k.mu.Unlock()

	expired := 0
	for _, dealID := range due {
		deal := k.GetDeal(ctx, dealID)
		if deal == nil || deal.DepositComplete || deal.FundingExpired {
			continue
		}

		deal.FundingExpired = true
		deal.UpdatedAt = now
		k.SetDeal(ctx, deal)
		expired++

		k.logger.Info("deal funding expired",
			"deal_id", dealID,
			"deadline", deal.HolderFundingDeadline,
			"deposit_total", deal.DepositTotal.String(),
		)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent("deal_funding_expired",
				sdk.NewAttribute("deal_id", dealID),
				sdk.NewAttribute("holder", deal.Holder),
				sdk.NewAttribute("deposit_total", deal.DepositTotal.String()),
			),
		)
	}
	return expired
}
