package keeper

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	dealtypes "github.com/openalpha/dealflow/x/deal/types"
	"github.com/openalpha/dealflow/x/pool/types"
	tokenkeeper "github.com/openalpha/dealflow/x/token/keeper"
)

// testDealParams matches a 20,000 purchase / 50 underlying deal with an
// hour of pro-rata, half an hour open, and a ten-minute cliff
func testDealParams() *DealParams {
	underlying, _ := math.NewIntFromString("50000000000000000000")
	return &DealParams{
		DealID:                "d1",
		UnderlyingDenom:       "reward",
		PurchaseTokenTotal:    math.NewInt(20_000_000_000),
		UnderlyingTotal:       underlying,
		VestingPeriodSeconds:  3_600,
		VestingCliffSeconds:   600,
		ProRataSeconds:        3_600,
		OpenSeconds:           1_800,
		Holder:                "holder",
		HolderFundingDeadline: testEpoch + 3_600 + 7_200,
	}
}

// seedRewardToken registers the underlying and funds the holder with an
// approval for the deal module
func seedRewardToken(tb testing.TB, tk *tokenkeeper.Keeper, ctx sdk.Context, total math.Int) {
	tb.Helper()

	if _, err := tk.CreateToken(ctx, "reward", "Reward", "RWD", 18, ""); err != nil {
		tb.Fatalf("create reward token: %v", err)
	}
	if err := tk.Mint(ctx, "anyone", "reward", "holder", total); err != nil {
		tb.Fatalf("fund holder: %v", err)
	}
	if err := tk.Approve(ctx, "reward", "holder", dealtypes.ModuleName, total); err != nil {
		tb.Fatalf("approve deal module: %v", err)
	}
}

// A 2/3 share in an 18-decimal purchase token must floor. Rounding the
// ratio first lands the entitlement one base unit over the deal total.
func TestProRataShareFloorsExactly(t *testing.T) {
	pk, dk, tk, ctx := setupKeepers(t)

	if _, err := tk.CreateToken(ctx, "weth", "Wrapped Ether", "WETH", 18, ""); err != nil {
		t.Fatalf("create purchase token: %v", err)
	}

	raised, _ := math.NewIntFromString("3000000000000000000")
	_, err := pk.CreatePool(ctx, &types.PoolConfig{
		PoolID:            "p1",
		Name:              "Pool One",
		Symbol:            "P1",
		Sponsor:           "sponsor",
		PurchaseDenom:     "weth",
		Cap:               raised,
		PurchaseWindowEnd: testEpoch + 3_600,
		PoolExpiry:        testEpoch + 86_400,
		SponsorFeeBps:     300,
	})
	if err != nil {
		t.Fatalf("CreatePool failed: %v", err)
	}
	if err := tk.Mint(ctx, "anyone", "weth", "alice", raised); err != nil {
		t.Fatalf("fund alice: %v", err)
	}
	if err := tk.Approve(ctx, "weth", "alice", types.ModuleName, raised); err != nil {
		t.Fatalf("approve alice: %v", err)
	}
	if _, err := pk.Purchase(ctx, "alice", "p1", raised); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}

	params := testDealParams()
	dealTotal, _ := math.NewIntFromString("2000000000000000000")
	params.PurchaseTokenTotal = dealTotal
	seedRewardToken(t, tk, ctx, params.UnderlyingTotal)

	if _, err := pk.CreateDeal(ctx, "sponsor", "p1", params); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	if _, err := dk.DepositUnderlying(ctx, "holder", "d1", params.UnderlyingTotal); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	if got := pk.MaxProRataAvailable(ctx, "p1", "alice"); !got.Equal(dealTotal) {
		t.Fatalf("max pro-rata = %s, want %s", got, dealTotal)
	}

	burned, _, err := pk.AcceptDealTokens(ctx, "alice", "p1", math.ZeroInt(), true)
	if err != nil {
		t.Fatalf("AcceptDealTokens failed: %v", err)
	}
	if !burned.Equal(dealTotal) {
		t.Errorf("burned = %s, want %s", burned, dealTotal)
	}
	if got := dk.GetDeal(ctx, "d1").RemainingCapacity(); !got.IsZero() {
		t.Errorf("remaining capacity = %s, want 0", got)
	}
	if _, _, err := pk.AcceptDealTokens(ctx, "alice", "p1", math.NewInt(1), false); err != dealtypes.ErrAcceptingMoreThanShare {
		t.Errorf("over-share accept err = %v, want ErrAcceptingMoreThanShare", err)
	}
}

func TestCreateDealGates(t *testing.T) {
	pk, _, tk, ctx := setupKeepers(t)
	newTestPool(t, pk, tk, ctx, math.NewInt(22_500_000_000), "alice")
	seedRewardToken(t, tk, ctx, testDealParams().UnderlyingTotal)

	if _, err := pk.Purchase(ctx, "alice", "p1", math.NewInt(22_000_000_000)); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}

	// window still open and cap not exactly filled
	if _, err := pk.CreateDeal(ctx, "sponsor", "p1", testDealParams()); err != types.ErrDealNotAllowedYet {
		t.Errorf("early deal err = %v, want ErrDealNotAllowedYet", err)
	}

	afterWindow := at(ctx, testEpoch+3_600)

	if _, err := pk.CreateDeal(afterWindow, "intruder", "p1", testDealParams()); err != types.ErrUnauthorized {
		t.Errorf("non-sponsor deal err = %v, want ErrUnauthorized", err)
	}

	short := testDealParams()
	short.ProRataSeconds = 60
	if _, err := pk.CreateDeal(afterWindow, "sponsor", "p1", short); err != types.ErrProRataPeriodTooShort {
		t.Errorf("short pro-rata err = %v, want ErrProRataPeriodTooShort", err)
	}

	tooBig := testDealParams()
	tooBig.PurchaseTokenTotal = math.NewInt(23_000_000_000)
	if _, err := pk.CreateDeal(afterWindow, "sponsor", "p1", tooBig); err != types.ErrInsufficientHoldings {
		t.Errorf("oversized deal err = %v, want ErrInsufficientHoldings", err)
	}

	deal, err := pk.CreateDeal(afterWindow, "sponsor", "p1", testDealParams())
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	if deal.FeeNumerator != 9_500 || deal.FeeBase != 10_000 {
		t.Errorf("fee = %d/%d, want 9500/10000", deal.FeeNumerator, deal.FeeBase)
	}

	// second creation always fails, whatever the arguments
	other := testDealParams()
	other.DealID = "d2"
	if _, err := pk.CreateDeal(afterWindow, "sponsor", "p1", other); err != types.ErrDealAlreadyExists {
		t.Errorf("second deal err = %v, want ErrDealAlreadyExists", err)
	}
}

func TestCreateDealEarlyWhenCapFilled(t *testing.T) {
	pk, _, tk, ctx := setupKeepers(t)
	newTestPool(t, pk, tk, ctx, math.NewInt(22_500_000_000), "alice")
	seedRewardToken(t, tk, ctx, testDealParams().UnderlyingTotal)

	if _, err := pk.Purchase(ctx, "alice", "p1", math.NewInt(22_500_000_000)); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}

	// cap exactly filled lets the sponsor strike the deal before the
	// purchase window closes
	if _, err := pk.CreateDeal(ctx, "sponsor", "p1", testDealParams()); err != nil {
		t.Errorf("cap-filled early deal failed: %v", err)
	}
}

func TestWithdrawLockedWhileDealLive(t *testing.T) {
	pk, dk, tk, ctx := setupKeepers(t)
	newTestPool(t, pk, tk, ctx, math.NewInt(22_500_000_000), "alice")
	params := testDealParams()
	seedRewardToken(t, tk, ctx, params.UnderlyingTotal)

	if _, err := pk.Purchase(ctx, "alice", "p1", math.NewInt(22_500_000_000)); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}
	if _, err := pk.CreateDeal(ctx, "sponsor", "p1", params); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	if _, _, err := pk.Withdraw(ctx, "alice", "p1", math.ZeroInt(), true); err != types.ErrWithdrawLocked {
		t.Errorf("withdraw with live deal err = %v, want ErrWithdrawLocked", err)
	}

	// funding deadline passes without a deposit; positions unlock
	expired := at(ctx, params.HolderFundingDeadline+1)
	if _, _, err := pk.Withdraw(expired, "alice", "p1", math.ZeroInt(), true); err != nil {
		t.Errorf("withdraw after funding expiry failed: %v", err)
	}
	_ = dk
}

func TestPositionTransferBlockedAfterRedeemOpens(t *testing.T) {
	pk, dk, tk, ctx := setupKeepers(t)
	newTestPool(t, pk, tk, ctx, math.NewInt(22_500_000_000), "alice")
	params := testDealParams()
	seedRewardToken(t, tk, ctx, params.UnderlyingTotal)

	if _, err := pk.Purchase(ctx, "alice", "p1", math.NewInt(22_500_000_000)); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}

	// transfers work freely before any deal
	some, _ := math.NewIntFromString("1000000000000000000000")
	if err := pk.TransferPosition(ctx, "p1", "alice", "bob", some); err != nil {
		t.Fatalf("pre-deal transfer failed: %v", err)
	}

	if _, err := pk.CreateDeal(ctx, "sponsor", "p1", params); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	// still transferable while the holder is funding
	if err := pk.TransferPosition(ctx, "p1", "bob", "alice", some); err != nil {
		t.Fatalf("pre-funding transfer failed: %v", err)
	}

	if _, err := dk.DepositUnderlying(ctx, "holder", "d1", params.UnderlyingTotal); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	if err := pk.TransferPosition(ctx, "p1", "alice", "bob", some); err != types.ErrNoTransfersAfterRedeem {
		t.Errorf("post-funding transfer err = %v, want ErrNoTransfersAfterRedeem", err)
	}
}
