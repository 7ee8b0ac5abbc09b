package types

import (
	"testing"

	"cosmossdk.io/math"
)

func TestNormalizeToCanonical(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		decimals uint32
		want     string
	}{
		{"six decimals scales up", 5_000_000_000, 6, "5000000000000000000000"},
		{"zero decimals scales fully", 7, 0, "7000000000000000000"},
		{"eighteen decimals unchanged", 123456789, 18, "123456789"},
		{"zero amount", 0, 6, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeToCanonical(math.NewInt(tt.amount), tt.decimals)
			if got.String() != tt.want {
				t.Errorf("NormalizeToCanonical(%d, %d) = %s, want %s", tt.amount, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestDenormalizeFromCanonical(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals uint32
		want     string
	}{
		{"exact", "5000000000000000000000", 6, "5000000000"},
		{"truncates remainder", "1999999999999", 6, "1"},
		{"sub unit truncates to zero", "999999999999", 6, "0"},
		{"eighteen decimals unchanged", "123456789", 18, "123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, ok := math.NewIntFromString(tt.amount)
			if !ok {
				t.Fatalf("bad amount %s", tt.amount)
			}
			got := DenormalizeFromCanonical(amount, tt.decimals)
			if got.String() != tt.want {
				t.Errorf("DenormalizeFromCanonical(%s, %d) = %s, want %s", tt.amount, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestRoundTripLosesOnlyDust(t *testing.T) {
	amount := math.NewInt(123_456_789)
	up := NormalizeToCanonical(amount, 6)
	down := DenormalizeFromCanonical(up, 6)
	if !down.Equal(amount) {
		t.Errorf("round trip = %s, want %s", down, amount)
	}
}

func TestTokenValidate(t *testing.T) {
	token := NewToken("usdc", "USD Coin", "USDC", 6, "", 0)
	if err := token.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	token = NewToken("", "n", "s", 6, "", 0)
	if err := token.Validate(); err != ErrInvalidDenom {
		t.Errorf("empty denom err = %v, want ErrInvalidDenom", err)
	}

	token = NewToken("x", "n", "s", 19, "", 0)
	if err := token.Validate(); err != ErrInvalidDecimals {
		t.Errorf("19 decimals err = %v, want ErrInvalidDecimals", err)
	}
}
