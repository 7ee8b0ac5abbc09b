package api

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	storemetrics "cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/dealflow/api/types"
	dealkeeper "github.com/openalpha/dealflow/x/deal/keeper"
	dealtypes "github.com/openalpha/dealflow/x/deal/types"
	poolkeeper "github.com/openalpha/dealflow/x/pool/keeper"
	pooltypes "github.com/openalpha/dealflow/x/pool/types"
	tokenkeeper "github.com/openalpha/dealflow/x/token/keeper"
	tokentypes "github.com/openalpha/dealflow/x/token/types"
)

// KeeperService serves API queries straight from the module keepers. The
// context provider hands out a read-only sdk.Context for the latest
// committed state; the service never writes.
type KeeperService struct {
	pool  *poolkeeper.Keeper
	deal  *dealkeeper.Keeper
	token *tokenkeeper.Keeper
	ctxFn func() sdk.Context
}

// NewKeeperService creates a keeper-backed query service
func NewKeeperService(pool *poolkeeper.Keeper, deal *dealkeeper.Keeper, token *tokenkeeper.Keeper, ctxFn func() sdk.Context) *KeeperService {
	return &KeeperService{
		pool:  pool,
		deal:  deal,
		token: token,
		ctxFn: ctxFn,
	}
}

var (
	_ types.PoolService  = (*KeeperService)(nil)
	_ types.DealService  = (*KeeperService)(nil)
	_ types.TokenService = (*KeeperService)(nil)
)

// NewStandaloneKeeperService wires the three keepers over a fresh in-memory
// multistore. State starts empty and lives only for the process; a node
// embeds the service with its own keepers and context provider instead.
func NewStandaloneKeeperService(logger log.Logger) (*KeeperService, error) {
	poolKey := storetypes.NewKVStoreKey(pooltypes.StoreKey)
	dealKey := storetypes.NewKVStoreKey(dealtypes.StoreKey)
	tokenKey := storetypes.NewKVStoreKey(tokentypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, logger, storemetrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(poolKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(dealKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(tokenKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	tk := tokenkeeper.NewKeeper(cdc, tokenKey, "", logger)
	dk := dealkeeper.NewKeeper(cdc, dealKey, tk, "", logger)
	pk := poolkeeper.NewKeeper(cdc, poolKey, tk, dk, "", logger)

	ctxFn := func() sdk.Context {
		header := cmtproto.Header{Time: time.Now().UTC()}
		return sdk.NewContext(stateStore, header, false, logger)
	}

	return NewKeeperService(pk, dk, tk, ctxFn), nil
}

// ============ PoolService ============

// ListPools returns all pools
func (s *KeeperService) ListPools(_ context.Context) ([]*types.PoolInfo, error) {
	ctx := s.ctxFn()
	now := ctx.BlockTime().Unix()

	pools := s.pool.GetAllPools(ctx)
	infos := make([]*types.PoolInfo, 0, len(pools))
	for _, p := range pools {
		infos = append(infos, poolInfo(p, now))
	}
	return infos, nil
}

// GetPool returns one pool by ID
func (s *KeeperService) GetPool(_ context.Context, poolID string) (*types.PoolInfo, error) {
	ctx := s.ctxFn()

	pool := s.pool.GetPool(ctx, poolID)
	if pool == nil {
		return nil, fmt.Errorf("pool %s not found", poolID)
	}
	return poolInfo(pool, ctx.BlockTime().Unix()), nil
}

// GetPosition returns a participant's position token balance
func (s *KeeperService) GetPosition(_ context.Context, poolID, participant string) (*types.PositionInfo, error) {
	ctx := s.ctxFn()

	pool := s.pool.GetPool(ctx, poolID)
	if pool == nil {
		return nil, fmt.Errorf("pool %s not found", poolID)
	}

	balance := s.pool.PositionBalance(ctx, pool, participant)
	return &types.PositionInfo{
		PoolID:      poolID,
		Participant: participant,
		Denom:       pool.PositionDenom(),
		Balance:     balance.String(),
	}, nil
}

// GetMaxProRata returns the participant's remaining pro-rata headroom.
// Zero outside the pro-rata window.
func (s *KeeperService) GetMaxProRata(_ context.Context, poolID, participant string) (*types.MaxProRataInfo, error) {
	ctx := s.ctxFn()

	pool := s.pool.GetPool(ctx, poolID)
	if pool == nil {
		return nil, fmt.Errorf("pool %s not found", poolID)
	}

	amount := s.pool.MaxProRataAvailable(ctx, poolID, participant)
	return &types.MaxProRataInfo{
		PoolID:      poolID,
		Participant: participant,
		Amount:      amount.String(),
	}, nil
}

// ============ DealService ============

// ListDeals returns all deals
func (s *KeeperService) ListDeals(_ context.Context) ([]*types.DealInfo, error) {
	ctx := s.ctxFn()
	now := ctx.BlockTime().Unix()

	deals := s.deal.GetAllDeals(ctx)
	infos := make([]*types.DealInfo, 0, len(deals))
	for _, d := range deals {
		infos = append(infos, dealInfo(d, now))
	}
	return infos, nil
}

// GetDeal returns one deal by ID
func (s *KeeperService) GetDeal(_ context.Context, dealID string) (*types.DealInfo, error) {
	ctx := s.ctxFn()

	deal := s.deal.GetDeal(ctx, dealID)
	if deal == nil {
		return nil, fmt.Errorf("deal %s not found", dealID)
	}
	return dealInfo(deal, ctx.BlockTime().Unix()), nil
}

// ListAllocations returns every allocation recorded for a deal
func (s *KeeperService) ListAllocations(_ context.Context, dealID string) ([]*types.AllocationInfo, error) {
	ctx := s.ctxFn()

	if s.deal.GetDeal(ctx, dealID) == nil {
		return nil, fmt.Errorf("deal %s not found", dealID)
	}

	allocs := s.deal.GetDealAllocations(ctx, dealID)
	infos := make([]*types.AllocationInfo, 0, len(allocs))
	for _, a := range allocs {
		infos = append(infos, allocationInfo(a))
	}
	return infos, nil
}

// GetAllocation returns one participant's allocation in a deal
func (s *KeeperService) GetAllocation(_ context.Context, dealID, participant string) (*types.AllocationInfo, error) {
	ctx := s.ctxFn()

	alloc := s.deal.GetAllocation(ctx, dealID, participant)
	if alloc == nil {
		return nil, fmt.Errorf("allocation for %s in deal %s not found", participant, dealID)
	}
	return allocationInfo(alloc), nil
}

// GetClaimable returns the participant's currently vested, unclaimed amount
func (s *KeeperService) GetClaimable(_ context.Context, dealID, participant string) (*types.ClaimableInfo, error) {
	ctx := s.ctxFn()

	deal := s.deal.GetDeal(ctx, dealID)
	if deal == nil {
		return nil, fmt.Errorf("deal %s not found", dealID)
	}

	claimable := s.deal.ClaimableTokens(ctx, dealID, participant)
	info := &types.ClaimableInfo{
		DealID:         dealID,
		Participant:    participant,
		Claimable:      claimable.String(),
		VestingCliffAt: deal.VestingCliffAt,
	}
	if deal.VestingCliffAt > 0 {
		info.VestingEndsAt = deal.VestingCliffAt + deal.VestingPeriodSeconds
	}
	return info, nil
}

// ============ TokenService ============

// ListTokens returns all registered tokens
func (s *KeeperService) ListTokens(_ context.Context) ([]*types.TokenInfo, error) {
	ctx := s.ctxFn()

	tokens := s.token.GetAllTokens(ctx)
	infos := make([]*types.TokenInfo, 0, len(tokens))
	for _, t := range tokens {
		infos = append(infos, tokenInfo(t, s.token.TotalSupply(ctx, t.Denom).String()))
	}
	return infos, nil
}

// GetToken returns one token by denom
func (s *KeeperService) GetToken(_ context.Context, denom string) (*types.TokenInfo, error) {
	ctx := s.ctxFn()

	token := s.token.GetToken(ctx, denom)
	if token == nil {
		return nil, fmt.Errorf("token %s not found", denom)
	}
	return tokenInfo(token, s.token.TotalSupply(ctx, denom).String()), nil
}

// GetBalance returns an account's balance in a token
func (s *KeeperService) GetBalance(_ context.Context, denom, address string) (*types.BalanceInfo, error) {
	ctx := s.ctxFn()

	if s.token.GetToken(ctx, denom) == nil {
		return nil, fmt.Errorf("token %s not found", denom)
	}

	return &types.BalanceInfo{
		Denom:   denom,
		Address: address,
		Balance: s.token.BalanceOf(ctx, denom, address).String(),
	}, nil
}

// ============ Converters ============

func poolInfo(p *pooltypes.Pool, now int64) *types.PoolInfo {
	return &types.PoolInfo{
		PoolID:            p.PoolID,
		Name:              p.Name,
		Symbol:            p.Symbol,
		Sponsor:           p.Sponsor,
		PendingSponsor:    p.PendingSponsor,
		PurchaseDenom:     p.PurchaseDenom,
		PurchaseDecimals:  p.PurchaseDecimals,
		Cap:               p.Cap.String(),
		TotalPurchased:    p.TotalPurchased.String(),
		PurchaseWindowEnd: p.PurchaseWindowEnd,
		PoolExpiry:        p.PoolExpiry,
		SponsorFeeBps:     p.SponsorFeeBps,
		DealID:            p.DealID,
		Status:            poolStatus(p, now),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func poolStatus(p *pooltypes.Pool, now int64) string {
	switch {
	case p.Expired(now):
		return "expired"
	case p.HasDeal():
		return "deal_attached"
	case p.PurchaseWindowOpen(now) && !p.CapReached():
		return "open"
	default:
		return "closed"
	}
}

func dealInfo(d *dealtypes.Deal, now int64) *types.DealInfo {
	return &types.DealInfo{
		DealID:                d.DealID,
		PoolID:                d.PoolID,
		Holder:                d.Holder,
		PendingHolder:         d.PendingHolder,
		UnderlyingDenom:       d.UnderlyingDenom,
		UnderlyingDecimals:    d.UnderlyingDecimals,
		PurchaseDenom:         d.PurchaseDenom,
		PurchaseDecimals:      d.PurchaseDecimals,
		UnderlyingTotal:       d.UnderlyingTotal.String(),
		PurchaseTokenTotal:    d.PurchaseTokenTotal.String(),
		ExchangeRate:          d.ExchangeRate.String(),
		FeeNumerator:          d.FeeNumerator,
		FeeBase:               d.FeeBase,
		HolderFundingDeadline: d.HolderFundingDeadline,
		DepositTotal:          d.DepositTotal.String(),
		DepositComplete:       d.DepositComplete,
		ProRataStart:          d.ProRataStart,
		ProRataEnd:            d.ProRataEnd,
		OpenEnd:               d.OpenEnd,
		VestingCliffAt:        d.VestingCliffAt,
		VestingPeriodSeconds:  d.VestingPeriodSeconds,
		TotalAcceptedPurchase: d.TotalAcceptedPurchase.String(),
		RemainingCapacity:     d.RemainingCapacity().String(),
		TotalClaimEntitlement: d.TotalClaimEntitlement.String(),
		TotalClaimed:          d.TotalClaimed.String(),
		Window:                dealWindow(d, now),
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

func dealWindow(d *dealtypes.Deal, now int64) string {
	switch {
	case d.FundingExpired:
		return "expired"
	case !d.DepositComplete:
		return "funding"
	case d.InProRataWindow(now):
		return "pro_rata"
	case d.InOpenWindow(now):
		return "open"
	default:
		return "closed"
	}
}

func allocationInfo(a *dealtypes.Allocation) *types.AllocationInfo {
	return &types.AllocationInfo{
		DealID:           a.DealID,
		Participant:      a.Participant,
		AcceptedPurchase: a.AcceptedPurchase.String(),
		ClaimBalance:     a.ClaimBalance.String(),
		Claimed:          a.Claimed.String(),
		UpdatedAt:        a.UpdatedAt,
	}
}

func tokenInfo(t *tokentypes.Token, supply string) *types.TokenInfo {
	return &types.TokenInfo{
		Denom:            t.Denom,
		Name:             t.Name,
		Symbol:           t.Symbol,
		Decimals:         t.Decimals,
		Controller:       t.Controller,
		TransfersBlocked: t.TransfersBlocked,
		TotalSupply:      supply,
		CreatedAt:        t.CreatedAt,
	}
}
