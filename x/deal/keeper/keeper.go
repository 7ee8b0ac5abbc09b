package keeper

import (
	"encoding/json"
	"sync"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/btree"

	"github.com/openalpha/dealflow/x/deal/types"
	tokentypes "github.com/openalpha/dealflow/x/token/types"
)

// Store key prefixes
var (
	DealKeyPrefix       = []byte{0x01}
	AllocationKeyPrefix = []byte{0x02}
)

// deadlineItem orders pending deals by holder funding deadline for the
// EndBlocker expiry scan
type deadlineItem struct {
	deadline int64
	dealID   string
}

func (a deadlineItem) Less(b btree.Item) bool {
	other := b.(deadlineItem)
	if a.deadline != other.deadline {
		return a.deadline < other.deadline
	}
	return a.dealID < other.dealID
}

// Keeper manages the deal module state
type Keeper struct {
	cdc         codec.BinaryCodec
	storeKey    storetypes.StoreKey
	tokenKeeper TokenKeeper
	logger      log.Logger
	authority   string

	mu            sync.Mutex
	deadlineIndex *btree.BTree
	indexLoaded   bool
}

// TokenKeeper defines the expected interface for the token ledger
type TokenKeeper interface {
	CreateToken(ctx sdk.Context, denom, name, symbol string, decimals uint32, controller string) (*tokentypes.Token, error)
	GetToken(ctx sdk.Context, denom string) *tokentypes.Token
	Mint(ctx sdk.Context, caller, denom, addr string, amount math.Int) error
	Burn(ctx sdk.Context, caller, denom, addr string, amount math.Int) error
	Transfer(ctx sdk.Context, denom, from, to string, amount math.Int) error
	TransferFrom(ctx sdk.Context, denom, spender, from, to string, amount math.Int) error
	ModuleTransfer(ctx sdk.Context, caller, denom, from, to string, amount math.Int) error
	BalanceOf(ctx sdk.Context, denom, addr string) math.Int
	SetTransfersBlocked(ctx sdk.Context, caller, denom string, blocked bool) error
}

// NewKeeper creates a new deal keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	tokenKeeper TokenKeeper,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:           cdc,
		storeKey:      storeKey,
		tokenKeeper:   tokenKeeper,
		authority:     authority,
		logger:        logger.With("module", "x/deal"),
		deadlineIndex: btree.New(8),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the governance authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Deal Records ============

func dealKey(dealID string) []byte {
	return append(DealKeyPrefix, []byte(dealID)...)
}

// SetDeal saves a deal to the store
func (k *Keeper) SetDeal(ctx sdk.Context, deal *types.Deal) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(deal)
	store.Set(dealKey(deal.DealID), bz)
}

// GetDeal retrieves a deal from the store
func (k *Keeper) GetDeal(ctx sdk.Context, dealID string) *types.Deal {
	store := k.GetStore(ctx)
	bz := store.Get(dealKey(dealID))
	if bz == nil {
		return nil
	}
	var deal types.Deal
	if err := json.Unmarshal(bz, &deal); err != nil {
		return nil
	}
	return &deal
}

// GetAllDeals returns all deals
func (k *Keeper) GetAllDeals(ctx sdk.Context) []*types.Deal {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, DealKeyPrefix)
	defer iterator.Close()

	var deals []*types.Deal
	for ; iterator.Valid(); iterator.Next() {
		var deal types.Deal
		if err := json.Unmarshal(iterator.Value(), &deal); err != nil {
			continue
		}
		deals = append(deals, &deal)
	}
	return deals
}

// ============ Allocations ============

func allocationKey(dealID, participant string) []byte {
	return append(AllocationKeyPrefix, []byte(dealID+"/"+participant)...)
}

// SetAllocation saves a participant allocation
func (k *Keeper) SetAllocation(ctx sdk.Context, alloc *types.Allocation) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(alloc)
	store.Set(allocationKey(alloc.DealID, alloc.Participant), bz)
}

// GetAllocation retrieves a participant allocation, returning an empty
// record when none exists yet
func (k *Keeper) GetAllocation(ctx sdk.Context, dealID, participant string) *types.Allocation {
	store := k.GetStore(ctx)
	bz := store.Get(allocationKey(dealID, participant))
	if bz == nil {
		return types.NewAllocation(dealID, participant)
	}
	var alloc types.Allocation
	if err := json.Unmarshal(bz, &alloc); err != nil {
		return types.NewAllocation(dealID, participant)
	}
	return &alloc
}

// GetAcceptedPurchase returns a participant's accepted purchase base units
func (k *Keeper) GetAcceptedPurchase(ctx sdk.Context, dealID, participant string) math.Int {
	return k.GetAllocation(ctx, dealID, participant).AcceptedPurchase
}

// GetDealAllocations returns all allocations of a deal
func (k *Keeper) GetDealAllocations(ctx sdk.Context, dealID string) []*types.Allocation {
	store := k.GetStore(ctx)
	prefix := append(AllocationKeyPrefix, []byte(dealID+"/")...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var allocs []*types.Allocation
	for ; iterator.Valid(); iterator.Next() {
		var alloc types.Allocation
		if err := json.Unmarshal(iterator.Value(), &alloc); err != nil {
			continue
		}
		allocs = append(allocs, &alloc)
	}
	return allocs
}

// ============ Deadline Index ============

// loadDeadlineIndex rebuilds the in-memory btree from stored deals. The
// index is a cache; the store stays the source of truth across restarts.
func (k *Keeper) loadDeadlineIndex(ctx sdk.Context) {
	if k.indexLoaded {
		return
	}
	for _, deal := range k.GetAllDeals(ctx) {
		if !deal.DepositComplete && !deal.FundingExpired {
			k.deadlineIndex.ReplaceOrInsert(deadlineItem{deadline: deal.HolderFundingDeadline, dealID: deal.DealID})
		}
	}
	k.indexLoaded = true
}

func (k *Keeper) indexDeal(deal *types.Deal) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.deadlineIndex.ReplaceOrInsert(deadlineItem{deadline: deal.HolderFundingDeadline, dealID: deal.DealID})
}

func (k *Keeper) unindexDeal(deal *types.Deal) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.deadlineIndex.Delete(deadlineItem{deadline: deal.HolderFundingDeadline, dealID: deal.DealID})
}
