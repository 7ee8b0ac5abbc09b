package types

import (
	"testing"

	"cosmossdk.io/math"
)

func validConfig(now int64) *PoolConfig {
	return &PoolConfig{
		PoolID:            "p1",
		Name:              "Pool One",
		Symbol:            "P1",
		Sponsor:           "sponsor",
		PurchaseDenom:     "usdc",
		PurchaseDecimals:  6,
		Cap:               math.NewInt(22_500_000_000),
		PurchaseWindowEnd: now + 3_600,
		PoolExpiry:        now + 86_400,
		SponsorFeeBps:     300,
	}
}

func TestPoolConfigValidate(t *testing.T) {
	now := int64(1_700_000_000)

	tests := []struct {
		name    string
		mutate  func(*PoolConfig)
		wantErr error
	}{
		{"valid", func(c *PoolConfig) {}, nil},
		{"uncapped valid", func(c *PoolConfig) { c.Cap = math.ZeroInt() }, nil},
		{"empty id", func(c *PoolConfig) { c.PoolID = "" }, ErrInvalidConfig},
		{"empty sponsor", func(c *PoolConfig) { c.Sponsor = "" }, ErrInvalidConfig},
		{"empty denom", func(c *PoolConfig) { c.PurchaseDenom = "" }, ErrInvalidConfig},
		{"negative cap", func(c *PoolConfig) { c.Cap = math.NewInt(-1) }, ErrInvalidConfig},
		{"window under thirty minutes", func(c *PoolConfig) { c.PurchaseWindowEnd = now + 1_000 }, ErrPurchaseWindowTooShort},
		{"expiry before window end", func(c *PoolConfig) { c.PoolExpiry = now + 3_000 }, ErrInvalidConfig},
		{"duration over a year", func(c *PoolConfig) { c.PoolExpiry = now + MaxPoolDurationSeconds + 1 }, ErrPoolDurationTooLong},
		{"sponsor fee over max", func(c *PoolConfig) { c.SponsorFeeBps = MaxSponsorFeeBps + 1 }, ErrSponsorFeeTooHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(now)
			tt.mutate(cfg)
			err := cfg.Validate(now)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want %v", tt.wantErr)
			}
		})
	}
}

func TestPoolStateHelpers(t *testing.T) {
	now := int64(1_700_000_000)
	pool := NewPool(validConfig(now), now)

	if got := pool.PositionDenom(); got != "pool/p1" {
		t.Errorf("PositionDenom() = %s, want pool/p1", got)
	}
	if got := pool.EscrowAddress(); got != "pool/p1/escrow" {
		t.Errorf("EscrowAddress() = %s, want pool/p1/escrow", got)
	}
	if pool.HasDeal() {
		t.Error("fresh pool should have no deal")
	}
	if !pool.PurchaseWindowOpen(now) {
		t.Error("window should be open at creation")
	}
	if pool.PurchaseWindowOpen(now + 3_600) {
		t.Error("window should be closed at its end")
	}
	if pool.Expired(now + 86_400) {
		t.Error("pool is not expired exactly at expiry")
	}
	if !pool.Expired(now + 86_401) {
		t.Error("pool should be expired past expiry")
	}

	if pool.CapReached() {
		t.Error("cap not reached with zero purchases")
	}
	pool.TotalPurchased = pool.Cap
	if !pool.CapReached() {
		t.Error("cap should be reached when purchases equal it")
	}
}
