package keeper

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/dealflow/x/deal/types"
	tokenkeeper "github.com/openalpha/dealflow/x/token/keeper"
)

// fundedDeal creates and fully funds the standard test deal at testEpoch
func fundedDeal(t *testing.T) (*Keeper, *tokenkeeper.Keeper, sdk.Context, *types.DealTerms) {
	t.Helper()

	dk, tk, ctx := setupKeepers(t)
	terms := testTerms()
	seedLedger(t, tk, ctx, terms)
	if _, err := dk.CreateDeal(ctx, terms); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	if _, err := dk.DepositUnderlying(ctx, "holder", "d1", terms.UnderlyingTotal); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	return dk, tk, ctx, terms
}

func TestConvertProRata(t *testing.T) {
	dk, tk, ctx, _ := fundedDeal(t)

	// full pro-rata share of a 5,000 contribution against a 22,500 pool:
	// floor(5,000e6 * 20,000/22,500) purchase units
	share := math.NewInt(4_444_444_444)

	credit, err := dk.Convert(ctx, "d1", "alice", share, share)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	// 4,444.444444 * 0.0025 * 0.95 underlying, floored at 18 decimals
	want, _ := math.NewIntFromString("10555555554500000000")
	if !credit.Equal(want) {
		t.Errorf("claim credit = %s, want %s", credit, want)
	}

	if got := tk.BalanceOf(ctx, "deal/d1", "alice"); !got.Equal(want) {
		t.Errorf("claim token balance = %s, want %s", got, want)
	}

	alloc := dk.GetAllocation(ctx, "d1", "alice")
	if !alloc.AcceptedPurchase.Equal(share) {
		t.Errorf("accepted = %s, want %s", alloc.AcceptedPurchase, share)
	}
}

func TestConvertOverShare(t *testing.T) {
	dk, _, ctx, _ := fundedDeal(t)

	share := math.NewInt(4_444_444_444)
	over := share.AddRaw(1)

	if _, err := dk.Convert(ctx, "d1", "alice", over, share); err != types.ErrAcceptingMoreThanShare {
		t.Errorf("over-share convert err = %v, want ErrAcceptingMoreThanShare", err)
	}
}

func TestConvertOpenWindowEligibility(t *testing.T) {
	dk, _, ctx, terms := fundedDeal(t)

	openTime := at(ctx, testEpoch+terms.ProRataSeconds+1)

	// unredeemed pro-rata remainder disqualifies open-window accepts
	if _, err := dk.Convert(openTime, "d1", "bob", math.NewInt(1_000_000), math.NewInt(5)); err != types.ErrProRataNotMaxed {
		t.Errorf("unmaxed open accept err = %v, want ErrProRataNotMaxed", err)
	}

	if _, err := dk.Convert(openTime, "d1", "bob", math.NewInt(1_000_000), math.ZeroInt()); err != nil {
		t.Errorf("maxed open accept failed: %v", err)
	}
}

func TestConvertOutsideWindow(t *testing.T) {
	dk, _, ctx, terms := fundedDeal(t)

	afterClose := at(ctx, testEpoch+terms.ProRataSeconds+terms.OpenSeconds+1)
	if _, err := dk.Convert(afterClose, "d1", "alice", math.NewInt(1_000_000), math.ZeroInt()); err != types.ErrOutsideRedeemWindow {
		t.Errorf("post-window convert err = %v, want ErrOutsideRedeemWindow", err)
	}
}

func TestConvertAggregateCapacity(t *testing.T) {
	dk, _, ctx, terms := fundedDeal(t)

	if _, err := dk.Convert(ctx, "d1", "alice", terms.PurchaseTokenTotal, terms.PurchaseTokenTotal); err != nil {
		t.Fatalf("full-capacity convert failed: %v", err)
	}
	if _, err := dk.Convert(ctx, "d1", "bob", math.NewInt(1), math.NewInt(1)); err != types.ErrAcceptingMoreThanShare {
		t.Errorf("beyond-capacity convert err = %v, want ErrAcceptingMoreThanShare", err)
	}
}

func TestClaimVestingSchedule(t *testing.T) {
	dk, tk, ctx, terms := fundedDeal(t)

	share := math.NewInt(4_444_444_444)
	credit, err := dk.Convert(ctx, "d1", "alice", share, share)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	deal := dk.GetDeal(ctx, "d1")

	// nothing claimable at the cliff
	atCliff := at(ctx, deal.VestingCliffAt)
	if got := dk.ClaimableTokens(atCliff, "d1", "alice"); !got.IsZero() {
		t.Errorf("claimable at cliff = %s, want 0", got)
	}
	if _, err := dk.Claim(atCliff, "alice", "d1"); err != types.ErrNothingToClaim {
		t.Errorf("claim at cliff err = %v, want ErrNothingToClaim", err)
	}

	// everything claimable once the period elapses
	vested := at(ctx, deal.VestingCliffAt+terms.VestingPeriodSeconds)
	if got := dk.ClaimableTokens(vested, "d1", "alice"); !got.Equal(credit) {
		t.Errorf("claimable after vesting = %s, want %s", got, credit)
	}

	released, err := dk.Claim(vested, "alice", "d1")
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if !released.Equal(credit) {
		t.Errorf("released = %s, want %s", released, credit)
	}
	if got := tk.BalanceOf(vested, terms.UnderlyingDenom, "alice"); !got.Equal(credit) {
		t.Errorf("alice underlying = %s, want %s", got, credit)
	}
	if got := tk.BalanceOf(vested, "deal/d1", "alice"); !got.IsZero() {
		t.Errorf("claim token after full claim = %s, want 0", got)
	}

	// repeated claims release nothing further
	if got := dk.ClaimableTokens(vested, "d1", "alice"); !got.IsZero() {
		t.Errorf("claimable after full claim = %s, want 0", got)
	}
	if _, err := dk.Claim(vested, "alice", "d1"); err != types.ErrNothingToClaim {
		t.Errorf("re-claim err = %v, want ErrNothingToClaim", err)
	}
}

func TestWithdrawExpiry(t *testing.T) {
	dk, tk, ctx, terms := fundedDeal(t)

	share := math.NewInt(4_444_444_444)
	credit, err := dk.Convert(ctx, "d1", "alice", share, share)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	deal := dk.GetDeal(ctx, "d1")

	if _, err := dk.WithdrawExpiry(ctx, "holder", "d1"); err != types.ErrOpenWindowNotElapsed {
		t.Errorf("early expiry withdraw err = %v, want ErrOpenWindowNotElapsed", err)
	}

	afterOpen := at(ctx, deal.OpenEnd+1)
	withdrawn, err := dk.WithdrawExpiry(afterOpen, "holder", "d1")
	if err != nil {
		t.Fatalf("WithdrawExpiry failed: %v", err)
	}

	// the escrow keeps exactly the unclaimed entitlement behind
	want := terms.UnderlyingTotal.Sub(credit)
	if !withdrawn.Equal(want) {
		t.Errorf("withdrawn = %s, want %s", withdrawn, want)
	}
	if got := tk.BalanceOf(afterOpen, terms.UnderlyingDenom, deal.EscrowAddress()); !got.Equal(credit) {
		t.Errorf("escrow remainder = %s, want %s", got, credit)
	}
}
