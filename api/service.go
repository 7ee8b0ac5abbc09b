package api

import (
	"github.com/openalpha/dealflow/api/types"
)

// Re-export types for convenience
type (
	PoolInfo       = types.PoolInfo
	PositionInfo   = types.PositionInfo
	MaxProRataInfo = types.MaxProRataInfo
	DealInfo       = types.DealInfo
	AllocationInfo = types.AllocationInfo
	ClaimableInfo  = types.ClaimableInfo
	TokenInfo      = types.TokenInfo
	BalanceInfo    = types.BalanceInfo
	PoolService    = types.PoolService
	DealService    = types.DealService
	TokenService   = types.TokenService
)

// nowMillis returns current timestamp in milliseconds
func nowMillis() int64 {
	return types.NowMillis()
}
