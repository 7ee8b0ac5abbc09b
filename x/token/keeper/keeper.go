package keeper

import (
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/dealflow/x/token/types"
)

// Store key prefixes
var (
	TokenKeyPrefix     = []byte{0x01}
	BalanceKeyPrefix   = []byte{0x02}
	AllowanceKeyPrefix = []byte{0x03}
	SupplyKeyPrefix    = []byte{0x04}
)

// Keeper manages the token ledger state
type Keeper struct {
	cdc       codec.BinaryCodec
	storeKey  storetypes.StoreKey
	logger    log.Logger
	authority string
}

// NewKeeper creates a new token keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:       cdc,
		storeKey:  storeKey,
		authority: authority,
		logger:    logger.With("module", "x/token"),
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

// ============ Token Records ============

func tokenKey(denom string) []byte {
	return append(TokenKeyPrefix, []byte(denom)...)
}

// SetToken saves a token record to the store
func (k *Keeper) SetToken(ctx sdk.Context, token *types.Token) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(token)
	store.Set(tokenKey(token.Denom), bz)
}

// GetToken retrieves a token record from the store
func (k *Keeper) GetToken(ctx sdk.Context, denom string) *types.Token {
	store := k.GetStore(ctx)
	bz := store.Get(tokenKey(denom))
	if bz == nil {
		return nil
	}
	var token types.Token
	if err := json.Unmarshal(bz, &token); err != nil {
		return nil
	}
	return &token
}

// GetAllTokens returns every registered token
func (k *Keeper) GetAllTokens(ctx sdk.Context) []*types.Token {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, TokenKeyPrefix)
	defer iterator.Close()

	var tokens []*types.Token
	for ; iterator.Valid(); iterator.Next() {
		var token types.Token
		if err := json.Unmarshal(iterator.Value(), &token); err != nil {
			continue
		}
		tokens = append(tokens, &token)
	}
	return tokens
}

// ============ Balances ============

func balanceKey(denom, addr string) []byte {
	return append(BalanceKeyPrefix, []byte(denom+"/"+addr)...)
}

func (k *Keeper) setBalance(ctx sdk.Context, denom, addr string, amount math.Int) {
	store := k.GetStore(ctx)
	if amount.IsZero() {
		store.Delete(balanceKey(denom, addr))
		return
	}
	bz, _ := amount.Marshal()
	store.Set(balanceKey(denom, addr), bz)
}

// BalanceOf returns the base-unit balance of addr in denom
func (k *Keeper) BalanceOf(ctx sdk.Context, denom, addr string) math.Int {
	store := k.GetStore(ctx)
	bz := store.Get(balanceKey(denom, addr))
	if bz == nil {
		return math.ZeroInt()
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		return math.ZeroInt()
	}
	return amount
}

// ============ Supply ============

func supplyKey(denom string) []byte {
	return append(SupplyKeyPrefix, []byte(denom)...)
}

func (k *Keeper) setSupply(ctx sdk.Context, denom string, amount math.Int) {
	store := k.GetStore(ctx)
	bz, _ := amount.Marshal()
	store.Set(supplyKey(denom), bz)
}

// TotalSupply returns the running supply of denom in base units
func (k *Keeper) TotalSupply(ctx sdk.Context, denom string) math.Int {
	store := k.GetStore(ctx)
	bz := store.Get(supplyKey(denom))
	if bz == nil {
		return math.ZeroInt()
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		return math.ZeroInt()
	}
	return amount
}

// ============ Allowances ============

func allowanceKey(denom, owner, spender string) []byte {
	return append(AllowanceKeyPrefix, []byte(denom+"/"+owner+"/"+spender)...)
}

func (k *Keeper) setAllowance(ctx sdk.Context, denom, owner, spender string, amount math.Int) {
	store := k.GetStore(ctx)
	if amount.IsZero() {
		store.Delete(allowanceKey(denom, owner, spender))
		return
	}
	bz, _ := amount.Marshal()
	store.Set(allowanceKey(denom, owner, spender), bz)
}

// Allowance returns the remaining spend allowance of spender over owner's denom balance
func (k *Keeper) Allowance(ctx sdk.Context, denom, owner, spender string) math.Int {
	store := k.GetStore(ctx)
	bz := store.Get(allowanceKey(denom, owner, spender))
	if bz == nil {
		return math.ZeroInt()
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		return math.ZeroInt()
	}
	return amount
}
