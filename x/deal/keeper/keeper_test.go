package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/dealflow/x/deal/types"
	tokenkeeper "github.com/openalpha/dealflow/x/token/keeper"
	tokentypes "github.com/openalpha/dealflow/x/token/types"
)

const testEpoch = int64(1_700_000_000)

// setupKeepers wires a deal keeper against a real token ledger on a shared
// in-memory multistore
func setupKeepers(tb testing.TB) (*Keeper, *tokenkeeper.Keeper, sdk.Context) {
	tb.Helper()

	dealKey := storetypes.NewKVStoreKey(types.StoreKey)
	tokenKey := storetypes.NewKVStoreKey(tokentypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(dealKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(tokenKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	header := cmtproto.Header{Time: time.Unix(testEpoch, 0)}
	ctx := sdk.NewContext(stateStore, header, false, log.NewNopLogger())

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	tk := tokenkeeper.NewKeeper(cdc, tokenKey, "authority", log.NewNopLogger())
	dk := NewKeeper(cdc, dealKey, tk, "authority", log.NewNopLogger())

	return dk, tk, ctx
}

func at(ctx sdk.Context, unix int64) sdk.Context {
	return ctx.WithBlockTime(time.Unix(unix, 0))
}

// testTerms builds valid terms: 6-decimal purchase token, 18-decimal
// underlying, 20,000 purchase total for 50 underlying at a 95% fee fraction
func testTerms() *types.DealTerms {
	underlying, _ := math.NewIntFromString("50000000000000000000")
	return &types.DealTerms{
		DealID:                "d1",
		PoolID:                "p1",
		Holder:                "holder",
		UnderlyingDenom:       "reward",
		UnderlyingDecimals:    18,
		PurchaseDenom:         "usdc",
		PurchaseDecimals:      6,
		UnderlyingTotal:       underlying,
		PurchaseTokenTotal:    math.NewInt(20_000_000_000),
		FeeNumerator:          9_500,
		FeeBase:               10_000,
		VestingPeriodSeconds:  3_600,
		VestingCliffSeconds:   600,
		ProRataSeconds:        3_600,
		OpenSeconds:           1_800,
		HolderFundingDeadline: testEpoch + 7_200,
	}
}

// seedLedger registers the external tokens and the position token the deal
// expects, and funds the holder
func seedLedger(tb testing.TB, tk *tokenkeeper.Keeper, ctx sdk.Context, terms *types.DealTerms) {
	tb.Helper()

	if _, err := tk.CreateToken(ctx, terms.UnderlyingDenom, "Reward", "RWD", terms.UnderlyingDecimals, ""); err != nil {
		tb.Fatalf("create underlying: %v", err)
	}
	if _, err := tk.CreateToken(ctx, "pool/"+terms.PoolID, "Position", "POS", 18, "pool"); err != nil {
		tb.Fatalf("create position token: %v", err)
	}

	funding := terms.UnderlyingTotal.MulRaw(2)
	if err := tk.Mint(ctx, "anyone", terms.UnderlyingDenom, terms.Holder, funding); err != nil {
		tb.Fatalf("fund holder: %v", err)
	}
	if err := tk.Approve(ctx, terms.UnderlyingDenom, terms.Holder, types.ModuleName, funding); err != nil {
		tb.Fatalf("approve deal module: %v", err)
	}
}

func TestCreateDealOnce(t *testing.T) {
	dk, tk, ctx := setupKeepers(t)
	terms := testTerms()
	seedLedger(t, tk, ctx, terms)

	deal, err := dk.CreateDeal(ctx, terms)
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	// 50 underlying for 20,000 purchase is 0.0025 underlying per purchase
	wantRate := math.LegacyMustNewDecFromStr("0.0025")
	if !deal.ExchangeRate.Equal(wantRate) {
		t.Errorf("exchange rate = %s, want %s", deal.ExchangeRate, wantRate)
	}

	if _, err := dk.CreateDeal(ctx, terms); err != types.ErrDealExists {
		t.Errorf("second create err = %v, want ErrDealExists", err)
	}

	claim := tk.GetToken(ctx, deal.ClaimDenom())
	if claim == nil {
		t.Fatal("claim token not created")
	}
	if !claim.TransfersBlocked {
		t.Error("claim token must be non-transferable from creation")
	}
}

func TestDepositLifecycle(t *testing.T) {
	dk, tk, ctx := setupKeepers(t)
	terms := testTerms()
	seedLedger(t, tk, ctx, terms)
	if _, err := dk.CreateDeal(ctx, terms); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	half := terms.UnderlyingTotal.QuoRaw(2)

	deal, err := dk.DepositUnderlying(ctx, "holder", "d1", half)
	if err != nil {
		t.Fatalf("partial deposit failed: %v", err)
	}
	if deal.DepositComplete {
		t.Error("half-funded deal marked complete")
	}

	if _, err := dk.DepositUnderlying(ctx, "intruder", "d1", half); err != types.ErrUnauthorized {
		t.Errorf("non-holder deposit err = %v, want ErrUnauthorized", err)
	}

	deal, err = dk.DepositUnderlying(ctx, "holder", "d1", half)
	if err != nil {
		t.Fatalf("completing deposit failed: %v", err)
	}
	if !deal.DepositComplete {
		t.Fatal("fully funded deal not marked complete")
	}
	if deal.ProRataStart != testEpoch {
		t.Errorf("pro rata start = %d, want %d", deal.ProRataStart, testEpoch)
	}
	if deal.ProRataEnd != testEpoch+terms.ProRataSeconds {
		t.Errorf("pro rata end = %d", deal.ProRataEnd)
	}
	if deal.OpenEnd != deal.ProRataEnd+terms.OpenSeconds {
		t.Errorf("open end = %d", deal.OpenEnd)
	}
	if deal.VestingCliffAt != deal.OpenEnd+terms.VestingCliffSeconds {
		t.Errorf("vesting cliff at = %d", deal.VestingCliffAt)
	}

	// position transfers lock the moment funding completes
	position := tk.GetToken(ctx, "pool/p1")
	if position == nil || !position.TransfersBlocked {
		t.Error("position token not blocked after funding completed")
	}

	if _, err := dk.DepositUnderlying(ctx, "holder", "d1", half); err != types.ErrDepositComplete {
		t.Errorf("deposit after complete err = %v, want ErrDepositComplete", err)
	}
}

func TestDepositDeadline(t *testing.T) {
	dk, tk, ctx := setupKeepers(t)
	terms := testTerms()
	seedLedger(t, tk, ctx, terms)
	if _, err := dk.CreateDeal(ctx, terms); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	late := at(ctx, terms.HolderFundingDeadline+1)
	if _, err := dk.DepositUnderlying(late, "holder", "d1", terms.UnderlyingTotal); err != types.ErrFundingDeadlinePassed {
		t.Errorf("late deposit err = %v, want ErrFundingDeadlinePassed", err)
	}
}

func TestWithdrawUnfundedAfterDeadline(t *testing.T) {
	dk, tk, ctx := setupKeepers(t)
	terms := testTerms()
	seedLedger(t, tk, ctx, terms)
	if _, err := dk.CreateDeal(ctx, terms); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	half := terms.UnderlyingTotal.QuoRaw(2)
	if _, err := dk.DepositUnderlying(ctx, "holder", "d1", half); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	// before the deadline the committed total stays reserved
	if _, err := dk.Withdraw(ctx, "holder", "d1"); err != types.ErrNoExcessToWithdraw {
		t.Errorf("early withdraw err = %v, want ErrNoExcessToWithdraw", err)
	}

	late := at(ctx, terms.HolderFundingDeadline+1)
	withdrawn, err := dk.Withdraw(late, "holder", "d1")
	if err != nil {
		t.Fatalf("post-deadline withdraw failed: %v", err)
	}
	if !withdrawn.Equal(half) {
		t.Errorf("withdrawn = %s, want %s", withdrawn, half)
	}
}

func TestExcessWithdrawableAfterOverfunding(t *testing.T) {
	dk, tk, ctx := setupKeepers(t)
	terms := testTerms()
	seedLedger(t, tk, ctx, terms)
	if _, err := dk.CreateDeal(ctx, terms); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	excess := math.NewInt(1_000_000)
	deposit := terms.UnderlyingTotal.Add(excess)
	if _, err := dk.DepositUnderlying(ctx, "holder", "d1", deposit); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	withdrawn, err := dk.Withdraw(ctx, "holder", "d1")
	if err != nil {
		t.Fatalf("excess withdraw failed: %v", err)
	}
	if !withdrawn.Equal(excess) {
		t.Errorf("withdrawn = %s, want exactly the excess %s", withdrawn, excess)
	}

	if _, err := dk.Withdraw(ctx, "holder", "d1"); err != types.ErrNoExcessToWithdraw {
		t.Errorf("second withdraw err = %v, want ErrNoExcessToWithdraw", err)
	}
}

func TestWithdrawSettlesWhileUnderlyingFrozen(t *testing.T) {
	dk, tk, ctx := setupKeepers(t)
	terms := testTerms()
	seedLedger(t, tk, ctx, terms)
	if _, err := dk.CreateDeal(ctx, terms); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	half := terms.UnderlyingTotal.QuoRaw(2)
	if _, err := dk.DepositUnderlying(ctx, "holder", "d1", half); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	// freezing the underlying must not strand the failed-funding reclaim
	if err := tk.SetTransfersBlocked(ctx, "anyone", terms.UnderlyingDenom, true); err != nil {
		t.Fatalf("SetTransfersBlocked failed: %v", err)
	}

	late := at(ctx, terms.HolderFundingDeadline+1)
	withdrawn, err := dk.Withdraw(late, "holder", "d1")
	if err != nil {
		t.Fatalf("withdraw with frozen underlying failed: %v", err)
	}
	if !withdrawn.Equal(half) {
		t.Errorf("withdrawn = %s, want %s", withdrawn, half)
	}
}

func TestEndBlockerExpiresUnfundedDeals(t *testing.T) {
	dk, tk, ctx := setupKeepers(t)
	terms := testTerms()
	seedLedger(t, tk, ctx, terms)
	if _, err := dk.CreateDeal(ctx, terms); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	if err := dk.EndBlocker(ctx); err != nil {
		t.Fatalf("EndBlocker failed: %v", err)
	}
	if dk.GetDeal(ctx, "d1").FundingExpired {
		t.Fatal("deal expired before deadline")
	}

	late := at(ctx, terms.HolderFundingDeadline+1)
	if err := dk.EndBlocker(late); err != nil {
		t.Fatalf("EndBlocker failed: %v", err)
	}
	deal := dk.GetDeal(late, "d1")
	if !deal.FundingExpired {
		t.Fatal("deal not expired after deadline")
	}
}
