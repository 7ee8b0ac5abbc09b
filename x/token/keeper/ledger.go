package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/dealflow/x/token/types"
)

// CreateToken registers a new token record. A token with a non-empty
// controller only accepts mint/burn/blocking calls carrying that identity.
func (k *Keeper) CreateToken(ctx sdk.Context, denom, name, symbol string, decimals uint32, controller string) (*types.Token, error) {
	if k.GetToken(ctx, denom) != nil {
		return nil, types.ErrTokenExists
	}

	token := types.NewToken(denom, name, symbol, decimals, controller, ctx.BlockTime().Unix())
	if err := token.Validate(); err != nil {
		return nil, err
	}
	k.SetToken(ctx, token)

	k.logger.Info("token created",
		"denom", denom,
		"decimals", decimals,
		"controller", controller,
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("token_created",
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("decimals", math.NewInt(int64(decimals)).String()),
			sdk.NewAttribute("controller", controller),
		),
	)
	return token, nil
}

// Mint credits amount of denom to addr. caller must match the token's
// controller when one is set.
func (k *Keeper) Mint(ctx sdk.Context, caller, denom, addr string, amount math.Int) error {
	token := k.GetToken(ctx, denom)
	if token == nil {
		return types.ErrTokenNotFound
	}
	if token.Controller != "" && token.Controller != caller {
		return types.ErrUnauthorizedController
	}
	if !amount.IsPositive() {
		return types.ErrInvalidAmount
	}

	k.setBalance(ctx, denom, addr, k.BalanceOf(ctx, denom, addr).Add(amount))
	k.setSupply(ctx, denom, k.TotalSupply(ctx, denom).Add(amount))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("token_minted",
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("to", addr),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// Burn debits amount of denom from addr. caller must match the token's
// controller when one is set.
func (k *Keeper) Burn(ctx sdk.Context, caller, denom, addr string, amount math.Int) error {
	token := k.GetToken(ctx, denom)
	if token == nil {
		return types.ErrTokenNotFound
	}
	if token.Controller != "" && token.Controller != caller {
		return types.ErrUnauthorizedController
	}
	if !amount.IsPositive() {
		return types.ErrInvalidAmount
	}

	balance := k.BalanceOf(ctx, denom, addr)
	if balance.LT(amount) {
		return types.ErrInsufficientBalance
	}

	k.setBalance(ctx, denom, addr, balance.Sub(amount))
	k.setSupply(ctx, denom, k.TotalSupply(ctx, denom).Sub(amount))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("token_burned",
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("from", addr),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// Transfer moves amount of denom from one address to another. Fails while
// the token has transfers blocked.
func (k *Keeper) Transfer(ctx sdk.Context, denom, from, to string, amount math.Int) error {
	token := k.GetToken(ctx, denom)
	if token == nil {
		return types.ErrTokenNotFound
	}
	if token.TransfersBlocked {
		return types.ErrTransfersBlocked
	}
	return k.move(ctx, denom, from, to, amount)
}

// move performs the balance update without transfer-block checks. Module
// escrow flows use it directly so blocked position tokens can still settle.
func (k *Keeper) move(ctx sdk.Context, denom, from, to string, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidAmount
	}
	fromBalance := k.BalanceOf(ctx, denom, from)
	if fromBalance.LT(amount) {
		return types.ErrInsufficientBalance
	}

	k.setBalance(ctx, denom, from, fromBalance.Sub(amount))
	k.setBalance(ctx, denom, to, k.BalanceOf(ctx, denom, to).Add(amount))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("token_transferred",
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("from", from),
			sdk.NewAttribute("to", to),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// ModuleTransfer moves funds on behalf of a controlling module, bypassing
// the transfer-blocked flag. caller must be the token's controller; tokens
// without a controller accept any module caller.
func (k *Keeper) ModuleTransfer(ctx sdk.Context, caller, denom, from, to string, amount math.Int) error {
	token := k.GetToken(ctx, denom)
	if token == nil {
		return types.ErrTokenNotFound
	}
	if token.Controller != "" && token.Controller != caller {
		return types.ErrUnauthorizedController
	}
	return k.move(ctx, denom, from, to, amount)
}

// Approve sets spender's allowance over owner's denom balance. Overwrites
// any prior allowance; zero clears it.
func (k *Keeper) Approve(ctx sdk.Context, denom, owner, spender string, amount math.Int) error {
	if k.GetToken(ctx, denom) == nil {
		return types.ErrTokenNotFound
	}
	if amount.IsNegative() {
		return types.ErrInvalidAmount
	}

	k.setAllowance(ctx, denom, owner, spender, amount)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("token_approved",
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("owner", owner),
			sdk.NewAttribute("spender", spender),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// TransferFrom spends from spender's allowance over from's balance.
func (k *Keeper) TransferFrom(ctx sdk.Context, denom, spender, from, to string, amount math.Int) error {
	token := k.GetToken(ctx, denom)
	if token == nil {
		return types.ErrTokenNotFound
	}
	if token.TransfersBlocked {
		return types.ErrTransfersBlocked
	}
	if !amount.IsPositive() {
		return types.ErrInvalidAmount
	}

	allowance := k.Allowance(ctx, denom, from, spender)
	if allowance.LT(amount) {
		return types.ErrInsufficientAllowance
	}

	if err := k.move(ctx, denom, from, to, amount); err != nil {
		return err
	}
	k.setAllowance(ctx, denom, from, spender, allowance.Sub(amount))
	return nil
}

// SetTransfersBlocked flips the transfer-blocked flag on a token. caller must
// match the token's controller when one is set.
func (k *Keeper) SetTransfersBlocked(ctx sdk.Context, caller, denom string, blocked bool) error {
	token := k.GetToken(ctx, denom)
	if token == nil {
		return types.ErrTokenNotFound
	}
	if token.Controller != "" && token.Controller != caller {
		return types.ErrUnauthorizedController
	}
	if token.TransfersBlocked == blocked {
		return nil
	}

	token.TransfersBlocked = blocked
	token.UpdatedAt = ctx.BlockTime().Unix()
	k.SetToken(ctx, token)

	k.logger.Info("token transfer flag updated", "denom", denom, "blocked", blocked)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("token_transfers_blocked",
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("blocked", boolString(blocked)),
		),
	)
	return nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
