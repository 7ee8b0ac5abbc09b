package types

import (
	"testing"

	"cosmossdk.io/math"
)

func TestVestedAmount(t *testing.T) {
	entitlement := math.NewInt(1_000_000)
	cliffAt := int64(10_000)
	period := int64(1_000)

	tests := []struct {
		name string
		now  int64
		want int64
	}{
		{"well before cliff", 0, 0},
		{"at cliff", 10_000, 0},
		{"one second in", 10_001, 1_000},
		{"half way", 10_500, 500_000},
		{"one second short", 10_999, 999_000},
		{"exactly at end", 11_000, 1_000_000},
		{"past end", 20_000, 1_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VestedAmount(entitlement, cliffAt, period, tt.now)
			if !got.Equal(math.NewInt(tt.want)) {
				t.Errorf("VestedAmount(now=%d) = %s, want %d", tt.now, got, tt.want)
			}
		})
	}
}

func TestVestedAmountZeroPeriod(t *testing.T) {
	entitlement := math.NewInt(777)

	if got := VestedAmount(entitlement, 100, 0, 100); !got.IsZero() {
		t.Errorf("at cliff with zero period = %s, want 0", got)
	}
	if got := VestedAmount(entitlement, 100, 0, 101); !got.Equal(entitlement) {
		t.Errorf("past cliff with zero period = %s, want %s", got, entitlement)
	}
}

func TestVestedAmountMonotonic(t *testing.T) {
	entitlement := math.NewInt(987_654_321)
	cliffAt := int64(5_000)
	period := int64(3_600)

	prev := math.ZeroInt()
	for now := int64(4_000); now <= 10_000; now += 37 {
		got := VestedAmount(entitlement, cliffAt, period, now)
		if got.LT(prev) {
			t.Fatalf("vested decreased at now=%d: %s < %s", now, got, prev)
		}
		prev = got
	}
	if !prev.Equal(entitlement) {
		t.Errorf("final vested = %s, want %s", prev, entitlement)
	}
}

func TestClaimableAmount(t *testing.T) {
	entitlement := math.NewInt(1_000)
	cliffAt := int64(0)
	period := int64(100)

	if got := ClaimableAmount(entitlement, math.NewInt(300), cliffAt, period, 50); !got.Equal(math.NewInt(200)) {
		t.Errorf("claimable = %s, want 200", got)
	}
	// already claimed past the vested point never goes negative
	if got := ClaimableAmount(entitlement, math.NewInt(900), cliffAt, period, 50); !got.IsZero() {
		t.Errorf("over-claimed claimable = %s, want 0", got)
	}
	if got := ClaimableAmount(entitlement, math.NewInt(1_000), cliffAt, period, 200); !got.IsZero() {
		t.Errorf("fully claimed claimable = %s, want 0", got)
	}
}
