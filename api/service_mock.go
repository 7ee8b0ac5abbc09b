package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openalpha/dealflow/api/types"
)

// MockService implements PoolService, DealService, and TokenService with
// in-memory fixture data for development and frontend testing.
type MockService struct {
	mu      sync.RWMutex
	pools   map[string]*types.PoolInfo
	deals   map[string]*types.DealInfo
	allocs  map[string]map[string]*types.AllocationInfo // dealID -> participant
	tokens  map[string]*types.TokenInfo
	startAt int64
}

// NewMockService creates a mock service seeded with fixture data
func NewMockService() *MockService {
	s := &MockService{
		pools:   make(map[string]*types.PoolInfo),
		deals:   make(map[string]*types.DealInfo),
		allocs:  make(map[string]map[string]*types.AllocationInfo),
		tokens:  make(map[string]*types.TokenInfo),
		startAt: time.Now().Unix(),
	}
	s.seed()
	return s
}

var (
	_ types.PoolService  = (*MockService)(nil)
	_ types.DealService  = (*MockService)(nil)
	_ types.TokenService = (*MockService)(nil)
)

func (s *MockService) seed() {
	now := s.startAt

	s.tokens["usdc"] = &types.TokenInfo{
		Denom:       "usdc",
		Name:        "USD Coin",
		Symbol:      "USDC",
		Decimals:    6,
		TotalSupply: "100000000000000",
		CreatedAt:   now - 86400*30,
	}
	s.tokens["alpha"] = &types.TokenInfo{
		Denom:       "alpha",
		Name:        "Alpha Protocol",
		Symbol:      "ALPHA",
		Decimals:    18,
		TotalSupply: "1000000000000000000000000",
		CreatedAt:   now - 86400*7,
	}

	s.pools["pool-1"] = &types.PoolInfo{
		PoolID:            "pool-1",
		Name:              "Alpha Seed Round",
		Symbol:            "ALPHASEED",
		Sponsor:           "cosmos1sponsor000000000000000000000000000000",
		PurchaseDenom:     "usdc",
		PurchaseDecimals:  6,
		Cap:               "22500000000",
		TotalPurchased:    "18750000000",
		PurchaseWindowEnd: now + 3600,
		PoolExpiry:        now + 86400*14,
		SponsorFeeBps:     300,
		Status:            "open",
		CreatedAt:         now - 7200,
		UpdatedAt:         now - 60,
	}
	s.pools["pool-2"] = &types.PoolInfo{
		PoolID:            "pool-2",
		Name:              "Beta Strategic",
		Symbol:            "BETASTRAT",
		Sponsor:           "cosmos1sponsor000000000000000000000000000000",
		PurchaseDenom:     "usdc",
		PurchaseDecimals:  6,
		Cap:               "0",
		TotalPurchased:    "50000000000",
		PurchaseWindowEnd: now - 3600,
		PoolExpiry:        now + 86400*30,
		SponsorFeeBps:     500,
		DealID:            "deal-1",
		Status:            "deal_attached",
		CreatedAt:         now - 86400*3,
		UpdatedAt:         now - 1800,
	}

	s.deals["deal-1"] = &types.DealInfo{
		DealID:                "deal-1",
		PoolID:                "pool-2",
		Holder:                "cosmos1holder0000000000000000000000000000000",
		UnderlyingDenom:       "alpha",
		UnderlyingDecimals:    18,
		PurchaseDenom:         "usdc",
		PurchaseDecimals:      6,
		UnderlyingTotal:       "50000000000000000000000",
		PurchaseTokenTotal:    "50000000000",
		ExchangeRate:          "0.000001000000000000",
		FeeNumerator:          9500,
		FeeBase:               10000,
		HolderFundingDeadline: now - 1800,
		DepositTotal:          "50000000000000000000000",
		DepositComplete:       true,
		ProRataStart:          now - 1800,
		ProRataEnd:            now + 1800,
		OpenEnd:               now + 5400,
		VestingPeriodSeconds:  86400 * 180,
		TotalAcceptedPurchase: "12500000000",
		RemainingCapacity:     "37500000000",
		TotalClaimEntitlement: "11875000000000000000000",
		TotalClaimed:          "0",
		Window:                "pro_rata",
		CreatedAt:             now - 86400,
		UpdatedAt:             now - 300,
	}

	s.allocs["deal-1"] = map[string]*types.AllocationInfo{
		"cosmos1alice00000000000000000000000000000000": {
			DealID:           "deal-1",
			Participant:      "cosmos1alice00000000000000000000000000000000",
			AcceptedPurchase: "12500000000",
			ClaimBalance:     "11875000000000000000000",
			Claimed:          "0",
			UpdatedAt:        now - 300,
		},
	}
}

// ============ PoolService ============

func (s *MockService) ListPools(_ context.Context) ([]*types.PoolInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pools := make([]*types.PoolInfo, 0, len(s.pools))
	for _, p := range s.pools {
		pools = append(pools, p)
	}
	return pools, nil
}

func (s *MockService) GetPool(_ context.Context, poolID string) (*types.PoolInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, ok := s.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("pool %s not found", poolID)
	}
	return pool, nil
}

func (s *MockService) GetPosition(_ context.Context, poolID, participant string) (*types.PositionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.pools[poolID]; !ok {
		return nil, fmt.Errorf("pool %s not found", poolID)
	}
	return &types.PositionInfo{
		PoolID:      poolID,
		Participant: participant,
		Denom:       "pool/" + poolID,
		Balance:     "5000000000000000000000",
	}, nil
}

func (s *MockService) GetMaxProRata(_ context.Context, poolID, participant string) (*types.MaxProRataInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.pools[poolID]; !ok {
		return nil, fmt.Errorf("pool %s not found", poolID)
	}
	return &types.MaxProRataInfo{
		PoolID:      poolID,
		Participant: participant,
		Amount:      "1250000000",
	}, nil
}

// ============ DealService ============

func (s *MockService) ListDeals(_ context.Context) ([]*types.DealInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deals := make([]*types.DealInfo, 0, len(s.deals))
	for _, d := range s.deals {
		deals = append(deals, d)
	}
	return deals, nil
}

func (s *MockService) GetDeal(_ context.Context, dealID string) (*types.DealInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deal, ok := s.deals[dealID]
	if !ok {
		return nil, fmt.Errorf("deal %s not found", dealID)
	}
	return deal, nil
}

func (s *MockService) ListAllocations(_ context.Context, dealID string) ([]*types.AllocationInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.deals[dealID]; !ok {
		return nil, fmt.Errorf("deal %s not found", dealID)
	}
	allocs := make([]*types.AllocationInfo, 0, len(s.allocs[dealID]))
	for _, a := range s.allocs[dealID] {
		allocs = append(allocs, a)
	}
	return allocs, nil
}

func (s *MockService) GetAllocation(_ context.Context, dealID, participant string) (*types.AllocationInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alloc, ok := s.allocs[dealID][participant]
	if !ok {
		return nil, fmt.Errorf("allocation for %s in deal %s not found", participant, dealID)
	}
	return alloc, nil
}

func (s *MockService) GetClaimable(_ context.Context, dealID, participant string) (*types.ClaimableInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deal, ok := s.deals[dealID]
	if !ok {
		return nil, fmt.Errorf("deal %s not found", dealID)
	}
	return &types.ClaimableInfo{
		DealID:         dealID,
		Participant:    participant,
		Claimable:      "0",
		VestingCliffAt: deal.VestingCliffAt,
	}, nil
}

// ============ TokenService ============

func (s *MockService) ListTokens(_ context.Context) ([]*types.TokenInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := make([]*types.TokenInfo, 0, len(s.tokens))
	for _, t := range s.tokens {
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func (s *MockService) GetToken(_ context.Context, denom string) (*types.TokenInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[denom]
	if !ok {
		return nil, fmt.Errorf("token %s not found", denom)
	}
	return token, nil
}

func (s *MockService) GetBalance(_ context.Context, denom, address string) (*types.BalanceInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.tokens[denom]; !ok {
		return nil, fmt.Errorf("token %s not found", denom)
	}
	return &types.BalanceInfo{
		Denom:   denom,
		Address: address,
		Balance: "5000000000",
	}, nil
}
