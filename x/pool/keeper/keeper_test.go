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

	dealkeeper "github.com/openalpha/dealflow/x/deal/keeper"
	dealtypes "github.com/openalpha/dealflow/x/deal/types"
	"github.com/openalpha/dealflow/x/pool/types"
	tokenkeeper "github.com/openalpha/dealflow/x/token/keeper"
	tokentypes "github.com/openalpha/dealflow/x/token/types"
)

const testEpoch = int64(1_700_000_000)

// setupKeepers wires pool, deal, and token keepers over one in-memory
// multistore, the way the app composes them
func setupKeepers(tb testing.TB) (*Keeper, *dealkeeper.Keeper, *tokenkeeper.Keeper, sdk.Context) {
	tb.Helper()

	poolKey := storetypes.NewKVStoreKey(types.StoreKey)
	dealKey := storetypes.NewKVStoreKey(dealtypes.StoreKey)
	tokenKey := storetypes.NewKVStoreKey(tokentypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(poolKey, storetypes.StoreTypeIAVL, db)
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
	dk := dealkeeper.NewKeeper(cdc, dealKey, tk, "authority", log.NewNopLogger())
	pk := NewKeeper(cdc, poolKey, tk, dk, "authority", log.NewNopLogger())

	return pk, dk, tk, ctx
}

func at(ctx sdk.Context, unix int64) sdk.Context {
	return ctx.WithBlockTime(time.Unix(unix, 0))
}

// newTestPool creates a 6-decimal purchase token and a capped pool, and
// funds the named buyers with approvals in place
func newTestPool(tb testing.TB, pk *Keeper, tk *tokenkeeper.Keeper, ctx sdk.Context, cap math.Int, buyers ...string) *types.Pool {
	tb.Helper()

	if tk.GetToken(ctx, "usdc") == nil {
		if _, err := tk.CreateToken(ctx, "usdc", "USD Coin", "USDC", 6, ""); err != nil {
			tb.Fatalf("create purchase token: %v", err)
		}
	}

	pool, err := pk.CreatePool(ctx, &types.PoolConfig{
		PoolID:            "p1",
		Name:              "Pool One",
		Symbol:            "P1",
		Sponsor:           "sponsor",
		PurchaseDenom:     "usdc",
		Cap:               cap,
		PurchaseWindowEnd: testEpoch + 3_600,
		PoolExpiry:        testEpoch + 86_400,
		SponsorFeeBps:     300,
	})
	if err != nil {
		tb.Fatalf("CreatePool failed: %v", err)
	}

	stake := math.NewInt(100_000_000_000)
	for _, buyer := range buyers {
		if err := tk.Mint(ctx, "anyone", "usdc", buyer, stake); err != nil {
			tb.Fatalf("fund %s: %v", buyer, err)
		}
		if err := tk.Approve(ctx, "usdc", buyer, types.ModuleName, stake); err != nil {
			tb.Fatalf("approve for %s: %v", buyer, err)
		}
	}
	return pool
}

func TestCreatePoolOnce(t *testing.T) {
	pk, _, tk, ctx := setupKeepers(t)
	newTestPool(t, pk, tk, ctx, math.ZeroInt())

	_, err := pk.CreatePool(ctx, &types.PoolConfig{
		PoolID:            "p1",
		Sponsor:           "someone-else",
		PurchaseDenom:     "usdc",
		Cap:               math.ZeroInt(),
		PurchaseWindowEnd: testEpoch + 3_600,
		PoolExpiry:        testEpoch + 86_400,
	})
	if err != types.ErrPoolExists {
		t.Errorf("second create err = %v, want ErrPoolExists", err)
	}

	position := tk.GetToken(ctx, "pool/p1")
	if position == nil {
		t.Fatal("position token not created")
	}
	if position.Decimals != tokentypes.CanonicalDecimals {
		t.Errorf("position decimals = %d, want %d", position.Decimals, tokentypes.CanonicalDecimals)
	}
}

func TestPurchaseMintsNormalizedPosition(t *testing.T) {
	pk, _, tk, ctx := setupKeepers(t)
	pool := newTestPool(t, pk, tk, ctx, math.ZeroInt(), "alice")

	amount := math.NewInt(5_000_000_000) // 5,000 USDC
	position, err := pk.Purchase(ctx, "alice", "p1", amount)
	if err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}

	want, _ := math.NewIntFromString("5000000000000000000000")
	if !position.Equal(want) {
		t.Errorf("position minted = %s, want %s", position, want)
	}
	if got := tk.BalanceOf(ctx, "pool/p1", "alice"); !got.Equal(want) {
		t.Errorf("position balance = %s, want %s", got, want)
	}
	if got := tk.BalanceOf(ctx, "usdc", pool.EscrowAddress()); !got.Equal(amount) {
		t.Errorf("escrow = %s, want %s", got, amount)
	}
}

func TestPurchaseCapAndWindow(t *testing.T) {
	pk, _, tk, ctx := setupKeepers(t)
	newTestPool(t, pk, tk, ctx, math.NewInt(10_000_000_000), "alice")

	if _, err := pk.Purchase(ctx, "alice", "p1", math.NewInt(10_000_000_001)); err != types.ErrCapExceeded {
		t.Errorf("over-cap purchase err = %v, want ErrCapExceeded", err)
	}
	if _, err := pk.Purchase(ctx, "alice", "p1", math.NewInt(10_000_000_000)); err != nil {
		t.Fatalf("exact-cap purchase failed: %v", err)
	}
	if _, err := pk.Purchase(ctx, "alice", "p1", math.NewInt(1)); err != types.ErrCapExceeded {
		t.Errorf("post-cap purchase err = %v, want ErrCapExceeded", err)
	}

	closed := at(ctx, testEpoch+3_600)
	if _, err := pk.Purchase(closed, "alice", "p1", math.NewInt(1)); err != types.ErrPurchaseWindowClosed {
		t.Errorf("closed-window purchase err = %v, want ErrPurchaseWindowClosed", err)
	}
}

func TestWithdrawConservation(t *testing.T) {
	pk, _, tk, ctx := setupKeepers(t)
	pool := newTestPool(t, pk, tk, ctx, math.ZeroInt(), "alice", "bob")

	if _, err := pk.Purchase(ctx, "alice", "p1", math.NewInt(5_000_000_000)); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}
	if _, err := pk.Purchase(ctx, "bob", "p1", math.NewInt(2_500_000_000)); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}

	half, _ := math.NewIntFromString("2500000000000000000000")
	burned, refunded, err := pk.Withdraw(ctx, "alice", "p1", half, false)
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if !refunded.Equal(math.NewInt(2_500_000_000)) {
		t.Errorf("refunded = %s, want 2500000000", refunded)
	}
	if !burned.Equal(half) {
		t.Errorf("burned = %s, want %s", burned, half)
	}

	// live positions equal net contributions, exactly
	pool = pk.GetPool(ctx, "p1")
	totalPositions := tk.TotalSupply(ctx, pool.PositionDenom())
	wantPositions, _ := math.NewIntFromString("5000000000000000000000")
	if !totalPositions.Equal(wantPositions) {
		t.Errorf("total positions = %s, want %s", totalPositions, wantPositions)
	}
	if !pool.TotalPurchased.Equal(math.NewInt(5_000_000_000)) {
		t.Errorf("total purchased = %s, want 5000000000", pool.TotalPurchased)
	}
	if got := tk.BalanceOf(ctx, "usdc", pool.EscrowAddress()); !got.Equal(math.NewInt(5_000_000_000)) {
		t.Errorf("escrow = %s, want 5000000000", got)
	}

	_, _, err = pk.Withdraw(ctx, "bob", "p1", math.ZeroInt(), true)
	if err != nil {
		t.Fatalf("WithdrawMax failed: %v", err)
	}
	if got := tk.BalanceOf(ctx, "usdc", "bob"); !got.Equal(math.NewInt(100_000_000_000)) {
		t.Errorf("bob refunded to %s, want original 100000000000", got)
	}
}

func TestWithdrawRefundsWhileTransfersBlocked(t *testing.T) {
	pk, _, tk, ctx := setupKeepers(t)
	newTestPool(t, pk, tk, ctx, math.ZeroInt(), "alice")

	if _, err := pk.Purchase(ctx, "alice", "p1", math.NewInt(5_000_000_000)); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}

	// a frozen purchase token must not strand escrowed refunds
	if err := tk.SetTransfersBlocked(ctx, "anyone", "usdc", true); err != nil {
		t.Fatalf("SetTransfersBlocked failed: %v", err)
	}
	if err := tk.Transfer(ctx, "usdc", "alice", "bob", math.NewInt(1)); err != tokentypes.ErrTransfersBlocked {
		t.Fatalf("direct transfer err = %v, want ErrTransfersBlocked", err)
	}

	_, refunded, err := pk.Withdraw(ctx, "alice", "p1", math.ZeroInt(), true)
	if err != nil {
		t.Fatalf("Withdraw with frozen purchase token failed: %v", err)
	}
	if !refunded.Equal(math.NewInt(5_000_000_000)) {
		t.Errorf("refunded = %s, want 5000000000", refunded)
	}
}

func TestSponsorHandover(t *testing.T) {
	pk, _, tk, ctx := setupKeepers(t)
	newTestPool(t, pk, tk, ctx, math.ZeroInt())

	if err := pk.NominateSponsor(ctx, "intruder", "p1", "carol"); err != types.ErrUnauthorized {
		t.Errorf("non-sponsor nominate err = %v, want ErrUnauthorized", err)
	}
	if err := pk.AcceptSponsor(ctx, "carol", "p1"); err != types.ErrNoPendingSponsor {
		t.Errorf("accept without nomination err = %v, want ErrNoPendingSponsor", err)
	}

	if err := pk.NominateSponsor(ctx, "sponsor", "p1", "carol"); err != nil {
		t.Fatalf("NominateSponsor failed: %v", err)
	}
	if err := pk.AcceptSponsor(ctx, "mallory", "p1"); err != types.ErrUnauthorized {
		t.Errorf("wrong nominee accept err = %v, want ErrUnauthorized", err)
	}
	if err := pk.AcceptSponsor(ctx, "carol", "p1"); err != nil {
		t.Fatalf("AcceptSponsor failed: %v", err)
	}

	if got := pk.GetPool(ctx, "p1").Sponsor; got != "carol" {
		t.Errorf("sponsor = %s, want carol", got)
	}
}
