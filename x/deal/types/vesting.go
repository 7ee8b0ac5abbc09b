package types

import (
	"cosmossdk.io/math"
)

// VestedAmount returns how much of entitlement has linearly unlocked by now.
// Nothing unlocks at or before cliffAt; everything is unlocked at
// cliffAt+periodSeconds. A zero period unlocks the full entitlement the
// moment the cliff passes.
func VestedAmount(entitlement math.Int, cliffAt, periodSeconds, now int64) math.Int {
	if entitlement.IsNil() || !entitlement.IsPositive() {
		return math.ZeroInt()
	}
	if now <= cliffAt {
		return math.ZeroInt()
	}
	if periodSeconds <= 0 || now >= cliffAt+periodSeconds {
		return entitlement
	}
	elapsed := now - cliffAt
	return entitlement.Mul(math.NewInt(elapsed)).Quo(math.NewInt(periodSeconds))
}

// ClaimableAmount returns the vested portion not yet paid out, never negative
func ClaimableAmount(entitlement, claimed math.Int, cliffAt, periodSeconds, now int64) math.Int {
	vested := VestedAmount(entitlement, cliffAt, periodSeconds, now)
	if claimed.IsNil() {
		claimed = math.ZeroInt()
	}
	if vested.LTE(claimed) {
		return math.ZeroInt()
	}
	return vested.Sub(claimed)
}
