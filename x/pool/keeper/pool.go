package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/dealflow/x/pool/types"
	tokentypes "github.com/openalpha/dealflow/x/token/types"
)

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// CreatePool performs the one-time pool setup and mints its position token
// on the ledger. A second create of the same id fails.
func (k *Keeper) CreatePool(ctx sdk.Context, cfg *types.PoolConfig) (*types.Pool, error) {
	now := ctx.BlockTime().Unix()

	if k.GetPool(ctx, cfg.PoolID) != nil {
		return nil, types.ErrPoolExists
	}
	if err := cfg.Validate(now); err != nil {
		return nil, err
	}

	purchaseToken := k.tokenKeeper.GetToken(ctx, cfg.PurchaseDenom)
	if purchaseToken == nil {
		return nil, types.ErrInvalidConfig.Wrap("purchase token not on ledger")
	}
	cfg.PurchaseDecimals = purchaseToken.Decimals

	pool := types.NewPool(cfg, now)

	// Position balances live at canonical precision so positions in pools
	// with different purchase tokens stay directly comparable.
	if _, err := k.tokenKeeper.CreateToken(ctx, pool.PositionDenom(), cfg.Name, cfg.Symbol, tokentypes.CanonicalDecimals, types.ModuleName); err != nil {
		return nil, err
	}

	k.SetPool(ctx, pool)

	k.logger.Info("pool created",
		"pool_id", pool.PoolID,
		"sponsor", pool.Sponsor,
		"purchase_denom", pool.PurchaseDenom,
		"cap", pool.Cap.String(),
		"purchase_window_end", pool.PurchaseWindowEnd,
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("pool_created",
			sdk.NewAttribute("pool_id", pool.PoolID),
			sdk.NewAttribute("sponsor", pool.Sponsor),
			sdk.NewAttribute("purchase_denom", pool.PurchaseDenom),
			sdk.NewAttribute("cap", pool.Cap.String()),
			sdk.NewAttribute("purchase_window_end", formatInt(pool.PurchaseWindowEnd)),
			sdk.NewAttribute("pool_expiry", formatInt(pool.PoolExpiry)),
		),
	)
	return pool, nil
}

// TransferPosition moves position balance between participants. Transfers
// stop for good once the attached deal's redemption window opens.
func (k *Keeper) TransferPosition(ctx sdk.Context, poolID, from, to string, amount math.Int) error {
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return types.ErrPoolNotFound
	}

	if pool.HasDeal() {
		deal := k.dealKeeper.GetDeal(ctx, pool.DealID)
		if deal != nil && deal.DepositComplete {
			return types.ErrNoTransfersAfterRedeem
		}
	}

	if err := k.tokenKeeper.Transfer(ctx, pool.PositionDenom(), from, to, amount); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("pool_position_transfer",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("from", from),
			sdk.NewAttribute("to", to),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// NominateSponsor records a successor sponsor pending acceptance
func (k *Keeper) NominateSponsor(ctx sdk.Context, sponsor, poolID, nominee string) error {
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return types.ErrPoolNotFound
	}
	if sponsor != pool.Sponsor {
		return types.ErrUnauthorized
	}
	if nominee == "" {
		return types.ErrInvalidConfig.Wrap("empty nominee")
	}

	pool.PendingSponsor = nominee
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("pool_sponsor_nominated",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("sponsor", sponsor),
			sdk.NewAttribute("nominee", nominee),
		),
	)
	return nil
}

// AcceptSponsor completes the two-step sponsor handover
func (k *Keeper) AcceptSponsor(ctx sdk.Context, nominee, poolID string) error {
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return types.ErrPoolNotFound
	}
	if pool.PendingSponsor == "" {
		return types.ErrNoPendingSponsor
	}
	if nominee != pool.PendingSponsor {
		return types.ErrUnauthorized
	}

	previous := pool.Sponsor
	pool.Sponsor = nominee
	pool.PendingSponsor = ""
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	k.logger.Info("sponsor handover complete", "pool_id", poolID, "previous", previous, "sponsor", nominee)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("pool_sponsor_changed",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("previous", previous),
			sdk.NewAttribute("sponsor", nominee),
		),
	)
	return nil
}
