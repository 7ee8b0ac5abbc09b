package keeper

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	dealtypes "github.com/openalpha/dealflow/x/deal/types"
)

// TestFullLifecycle walks the complete engine: five contributors fund a
// capped pool, the sponsor strikes a deal for 20,000 of the 22,500 raised
// against 50 underlying at a 95% fee fraction, the holder funds it, four
// participants redeem pro-rata, one tops up in the open window, everyone
// vests and claims, and the holder sweeps the remainder.
func TestFullLifecycle(t *testing.T) {
	pk, dk, tk, ctx := setupKeepers(t)

	participants := []string{"alice", "bob", "carol", "dave", "erin"}
	contributions := []int64{5_000_000_000, 5_000_000_000, 5_000_000_000, 5_000_000_000, 2_500_000_000}

	newTestPool(t, pk, tk, ctx, math.NewInt(22_500_000_000), participants...)
	params := testDealParams()
	seedRewardToken(t, tk, ctx, params.UnderlyingTotal)

	// ---- funding phase ----
	for i, p := range participants {
		_, err := pk.Purchase(ctx, p, "p1", math.NewInt(contributions[i]))
		require.NoError(t, err)
	}

	pool := pk.GetPool(ctx, "p1")
	require.True(t, pool.CapReached())
	for i, p := range participants {
		want := math.NewInt(contributions[i]).MulRaw(1_000_000_000_000)
		require.Equal(t, want.String(), tk.BalanceOf(ctx, pool.PositionDenom(), p).String())
	}

	// ---- deal creation (cap filled, window still open) ----
	deal, err := pk.CreateDeal(ctx, "sponsor", "p1", params)
	require.NoError(t, err)
	require.Equal(t, "0.002500000000000000", deal.ExchangeRate.String())
	require.EqualValues(t, 9_500, deal.FeeNumerator)

	// ---- holder funding ----
	fundTime := testEpoch + 4_000
	fundCtx := at(ctx, fundTime)
	deal, err = dk.DepositUnderlying(fundCtx, "holder", "d1", params.UnderlyingTotal)
	require.NoError(t, err)
	require.True(t, deal.DepositComplete)
	require.Equal(t, fundTime, deal.ProRataStart)

	// ---- pro-rata redemption ----
	proRataCtx := at(ctx, fundTime+100)

	fullShare := math.NewInt(4_444_444_444) // floor(5,000e6 * 20,000/22,500)
	shareCredit, _ := math.NewIntFromString("10555555554500000000")

	for _, p := range []string{"alice", "bob", "carol", "dave"} {
		require.Equal(t,
			fullShare.MulRaw(1_000_000_000_000).String(),
			pk.MaxProRataAvailable(proRataCtx, "p1", p).String())

		_, credit, err := pk.AcceptDealTokens(proRataCtx, p, "p1", math.ZeroInt(), true)
		require.NoError(t, err)
		require.Equal(t, shareCredit.String(), credit.String())
	}

	// redeeming beyond the pro-rata share fails before the open window
	_, _, err = pk.AcceptDealTokens(proRataCtx, "bob", "p1", math.NewInt(1_000_000_000_000), false)
	require.ErrorIs(t, err, dealtypes.ErrAcceptingMoreThanShare)

	// ---- open-window redemption ----
	openCtx := at(ctx, fundTime+3_700)

	// erin never redeemed her pro-rata share and is shut out
	_, _, err = pk.AcceptDealTokens(openCtx, "erin", "p1", math.ZeroInt(), true)
	require.ErrorIs(t, err, dealtypes.ErrProRataNotMaxed)

	// alice maxed hers and converts the rest of her position
	extraCredit, _ := math.NewIntFromString("1319444445500000000")
	_, credit, err := pk.AcceptDealTokens(openCtx, "alice", "p1", math.ZeroInt(), true)
	require.NoError(t, err)
	require.Equal(t, extraCredit.String(), credit.String())

	// a full 5,000 contribution converted end to end is worth exactly
	// 5,000 * (50/20,000) * 0.95 = 11.875 underlying
	aliceTotal, _ := math.NewIntFromString("11875000000000000000")
	require.Equal(t, aliceTotal.String(), tk.BalanceOf(openCtx, "deal/d1", "alice").String())
	require.True(t, tk.BalanceOf(openCtx, pool.PositionDenom(), "alice").IsZero())

	// accepted contributions were paid through to the holder
	holderPayment := fullShare.MulRaw(4).AddRaw(555_555_556)
	require.Equal(t, holderPayment.String(), tk.BalanceOf(openCtx, "usdc", "holder").String())

	// ---- vesting and claims ----
	deal = dk.GetDeal(openCtx, "d1")
	vestedCtx := at(ctx, deal.VestingCliffAt+params.VestingPeriodSeconds)

	released, err := dk.Claim(vestedCtx, "alice", "d1")
	require.NoError(t, err)
	require.Equal(t, aliceTotal.String(), released.String())
	require.Equal(t, aliceTotal.String(), tk.BalanceOf(vestedCtx, "reward", "alice").String())
	require.True(t, dk.ClaimableTokens(vestedCtx, "d1", "alice").IsZero())

	for _, p := range []string{"bob", "carol", "dave"} {
		released, err := dk.Claim(vestedCtx, p, "d1")
		require.NoError(t, err)
		require.Equal(t, shareCredit.String(), released.String())
	}

	// ---- unredeemed positions refund after the open window ----
	_, refunded, err := pk.Withdraw(vestedCtx, "erin", "p1", math.ZeroInt(), true)
	require.NoError(t, err)
	require.Equal(t, "2500000000", refunded.String())

	// ---- holder sweeps the unconverted remainder plus fees ----
	remainder, err := dk.WithdrawExpiry(vestedCtx, "holder", "d1")
	require.NoError(t, err)
	want, _ := math.NewIntFromString("6458333336500000000")
	require.Equal(t, want.String(), remainder.String())
	require.True(t, tk.BalanceOf(vestedCtx, "reward", deal.EscrowAddress()).IsZero())

	// ---- conservation across the whole run ----
	// every underlying unit the holder deposited is now either claimed or
	// swept back
	holderReward := tk.BalanceOf(vestedCtx, "reward", "holder")
	claimedTotal := aliceTotal.Add(shareCredit.MulRaw(3))
	require.Equal(t,
		params.UnderlyingTotal.String(),
		holderReward.Add(claimedTotal).String())
}
