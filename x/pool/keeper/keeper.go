package keeper

import (
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	dealtypes "github.com/openalpha/dealflow/x/deal/types"
	"github.com/openalpha/dealflow/x/pool/types"
	tokentypes "github.com/openalpha/dealflow/x/token/types"
)

// Store key prefixes
var (
	PoolKeyPrefix = []byte{0x01}
)

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

// DealKeeper defines the expected interface for the deal module
type DealKeeper interface {
	CreateDeal(ctx sdk.Context, terms *dealtypes.DealTerms) (*dealtypes.Deal, error)
	GetDeal(ctx sdk.Context, dealID string) *dealtypes.Deal
	GetAcceptedPurchase(ctx sdk.Context, dealID, participant string) math.Int
	Convert(ctx sdk.Context, dealID, participant string, purchaseAmount, remainingProRata math.Int) (math.Int, error)
}

// Keeper manages the pool module state
type Keeper struct {
	cdc         codec.BinaryCodec
	storeKey    storetypes.StoreKey
	tokenKeeper TokenKeeper
	dealKeeper  DealKeeper
	logger      log.Logger
	authority   string
}

// NewKeeper creates a new pool keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	tokenKeeper TokenKeeper,
	dealKeeper DealKeeper,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:         cdc,
		storeKey:    storeKey,
		tokenKeeper: tokenKeeper,
		dealKeeper:  dealKeeper,
		authority:   authority,
		logger:      logger.With("module", "x/pool"),
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

// ============ Pool Records ============

func poolKey(poolID string) []byte {
	return append(PoolKeyPrefix, []byte(poolID)...)
}

// SetPool saves a pool to the store
func (k *Keeper) SetPool(ctx sdk.Context, pool *types.Pool) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(pool)
	store.Set(poolKey(pool.PoolID), bz)
}

// GetPool retrieves a pool from the store
func (k *Keeper) GetPool(ctx sdk.Context, poolID string) *types.Pool {
	store := k.GetStore(ctx)
	bz := store.Get(poolKey(poolID))
	if bz == nil {
		return nil
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return nil
	}
	return &pool
}

// GetAllPools returns all pools
func (k *Keeper) GetAllPools(ctx sdk.Context) []*types.Pool {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PoolKeyPrefix)
	defer iterator.Close()

	var pools []*types.Pool
	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			continue
		}
		pools = append(pools, &pool)
	}
	return pools
}

// PositionBalance returns a participant's position in canonical units
func (k *Keeper) PositionBalance(ctx sdk.Context, pool *types.Pool, participant string) math.Int {
	return k.tokenKeeper.BalanceOf(ctx, pool.PositionDenom(), participant)
}
