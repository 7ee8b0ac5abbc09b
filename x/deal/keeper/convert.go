package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/dealflow/x/deal/types"
	tokentypes "github.com/openalpha/dealflow/x/token/types"
)

// Convert credits a participant's claim balance for a redeemed position.
// Called only by the pool module's accept path, which burns the position
// first. purchaseAmount is in purchase base units; remainingProRata is the
// participant's unredeemed pro-rata entitlement, zero once maxed.
func (k *Keeper) Convert(ctx sdk.Context, dealID, participant string, purchaseAmount, remainingProRata math.Int) (math.Int, error) {
	now := ctx.BlockTime().Unix()

	deal := k.GetDeal(ctx, dealID)
	if deal == nil {
		return math.ZeroInt(), types.ErrDealNotFound
	}
	if !deal.DepositComplete || !deal.InRedeemWindow(now) {
		return math.ZeroInt(), types.ErrOutsideRedeemWindow
	}
	if !purchaseAmount.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount
	}

	if deal.InProRataWindow(now) {
		if purchaseAmount.GT(remainingProRata) {
			return math.ZeroInt(), types.ErrAcceptingMoreThanShare
		}
	} else {
		// Open phase: only participants who redeemed their exact full
		// pro-rata allotment compete for the leftover capacity.
		if !remainingProRata.IsZero() {
			return math.ZeroInt(), types.ErrProRataNotMaxed
		}
	}

	if deal.TotalAcceptedPurchase.Add(purchaseAmount).GT(deal.PurchaseTokenTotal) {
		return math.ZeroInt(), types.ErrAcceptingMoreThanShare
	}

	purchaseCanonical := tokentypes.NormalizeToCanonical(purchaseAmount, deal.PurchaseDecimals)
	dealAmountCanonical := math.LegacyNewDecFromInt(purchaseCanonical).Mul(deal.ExchangeRate)
	claimCanonical := dealAmountCanonical.
		MulInt64(deal.FeeNumerator).
		QuoInt64(deal.FeeBase).
		TruncateInt()

	claimCredit := tokentypes.DenormalizeFromCanonical(claimCanonical, deal.UnderlyingDecimals)
	dealAmount := tokentypes.DenormalizeFromCanonical(dealAmountCanonical.TruncateInt(), deal.UnderlyingDecimals)

	alloc := k.GetAllocation(ctx, dealID, participant)
	alloc.AcceptedPurchase = alloc.AcceptedPurchase.Add(purchaseAmount)
	alloc.ClaimBalance = alloc.ClaimBalance.Add(claimCredit)
	alloc.UpdatedAt = now
	k.SetAllocation(ctx, alloc)

	deal.TotalAcceptedPurchase = deal.TotalAcceptedPurchase.Add(purchaseAmount)
	deal.TotalUnderlyingConverted = deal.TotalUnderlyingConverted.Add(dealAmount)
	deal.TotalClaimEntitlement = deal.TotalClaimEntitlement.Add(claimCredit)
	deal.UpdatedAt = now
	k.SetDeal(ctx, deal)

	// The claim token mirrors the entitlement on the ledger; it never
	// transfers, only Claim burns it back out. Dust conversions can floor
	// to a zero credit, which still consumes the accepted position.
	if claimCredit.IsPositive() {
		if err := k.tokenKeeper.Mint(ctx, types.ModuleName, deal.ClaimDenom(), participant, claimCredit); err != nil {
			return math.ZeroInt(), err
		}
	}

	k.logger.Info("position converted",
		"deal_id", dealID,
		"participant", participant,
		"purchase_amount", purchaseAmount.String(),
		"claim_credit", claimCredit.String(),
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("deal_convert",
			sdk.NewAttribute("deal_id", dealID),
			sdk.NewAttribute("participant", participant),
			sdk.NewAttribute("purchase_amount", purchaseAmount.String()),
			sdk.NewAttribute("claim_credit", claimCredit.String()),
			sdk.NewAttribute("total_accepted", deal.TotalAcceptedPurchase.String()),
		),
	)
	return claimCredit, nil
}
