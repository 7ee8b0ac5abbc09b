package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/dealflow/x/pool/types"
)

// MsgServer defines the pool MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// CreatePool handles MsgCreatePool
func (m *MsgServer) CreatePool(ctx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	cap, ok := math.NewIntFromString(msg.Cap)
	if !ok {
		return nil, types.ErrInvalidConfig.Wrap("bad cap")
	}

	pool, err := m.keeper.CreatePool(sdkCtx, &types.PoolConfig{
		PoolID:            msg.PoolID,
		Name:              msg.Name,
		Symbol:            msg.Symbol,
		Sponsor:           msg.Sponsor,
		PurchaseDenom:     msg.PurchaseDenom,
		Cap:               cap,
		PurchaseWindowEnd: msg.PurchaseWindowEnd,
		PoolExpiry:        msg.PoolExpiry,
		SponsorFeeBps:     msg.SponsorFeeBps,
	})
	if err != nil {
		return nil, err
	}

	return &types.MsgCreatePoolResponse{
		PoolID:        pool.PoolID,
		PositionDenom: pool.PositionDenom(),
	}, nil
}

// PurchasePoolTokens handles MsgPurchasePoolTokens
func (m *MsgServer) PurchasePoolTokens(ctx context.Context, msg *types.MsgPurchasePoolTokens) (*types.MsgPurchasePoolTokensResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	position, err := m.keeper.Purchase(sdkCtx, msg.Purchaser, msg.PoolID, amount)
	if err != nil {
		return nil, err
	}

	pool := m.keeper.GetPool(sdkCtx, msg.PoolID)
	return &types.MsgPurchasePoolTokensResponse{
		PositionMinted: position.String(),
		TotalPurchased: pool.TotalPurchased.String(),
	}, nil
}

// WithdrawFromPool handles MsgWithdrawFromPool
func (m *MsgServer) WithdrawFromPool(ctx context.Context, msg *types.MsgWithdrawFromPool) (*types.MsgWithdrawFromPoolResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	amount := math.ZeroInt()
	if !msg.Max {
		var ok bool
		amount, ok = math.NewIntFromString(msg.Amount)
		if !ok {
			return nil, types.ErrInvalidAmount
		}
	}

	burned, refunded, err := m.keeper.Withdraw(sdkCtx, msg.Withdrawer, msg.PoolID, amount, msg.Max)
	if err != nil {
		return nil, err
	}

	return &types.MsgWithdrawFromPoolResponse{
		PositionBurned: burned.String(),
		Refunded:       refunded.String(),
	}, nil
}

// CreateDeal handles MsgCreateDeal
func (m *MsgServer) CreateDeal(ctx context.Context, msg *types.MsgCreateDeal) (*types.MsgCreateDealResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	purchaseTotal, ok := math.NewIntFromString(msg.PurchaseTokenTotal)
	if !ok {
		return nil, types.ErrInvalidAmount
	}
	underlyingTotal, ok := math.NewIntFromString(msg.UnderlyingTotal)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	deal, err := m.keeper.CreateDeal(sdkCtx, msg.Sponsor, msg.PoolID, &DealParams{
		DealID:                msg.DealID,
		UnderlyingDenom:       msg.UnderlyingDenom,
		PurchaseTokenTotal:    purchaseTotal,
		UnderlyingTotal:       underlyingTotal,
		VestingPeriodSeconds:  msg.VestingPeriodSeconds,
		VestingCliffSeconds:   msg.VestingCliffSeconds,
		ProRataSeconds:        msg.ProRataSeconds,
		OpenSeconds:           msg.OpenSeconds,
		Holder:                msg.Holder,
		HolderFundingDeadline: msg.HolderFundingDeadline,
	})
	if err != nil {
		return nil, err
	}

	return &types.MsgCreateDealResponse{
		DealID:       deal.DealID,
		ExchangeRate: deal.ExchangeRate.String(),
	}, nil
}

// AcceptDealTokens handles MsgAcceptDealTokens
func (m *MsgServer) AcceptDealTokens(ctx context.Context, msg *types.MsgAcceptDealTokens) (*types.MsgAcceptDealTokensResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	amount := math.ZeroInt()
	if !msg.Max {
		var ok bool
		amount, ok = math.NewIntFromString(msg.Amount)
		if !ok {
			return nil, types.ErrInvalidAmount
		}
	}

	burned, credited, err := m.keeper.AcceptDealTokens(sdkCtx, msg.Participant, msg.PoolID, amount, msg.Max)
	if err != nil {
		return nil, err
	}

	return &types.MsgAcceptDealTokensResponse{
		PositionBurned: burned.String(),
		ClaimCredited:  credited.String(),
	}, nil
}

// TransferPosition handles MsgTransferPosition
func (m *MsgServer) TransferPosition(ctx context.Context, msg *types.MsgTransferPosition) (*types.MsgTransferPositionResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	if err := m.keeper.TransferPosition(sdkCtx, msg.PoolID, msg.From, msg.To, amount); err != nil {
		return nil, err
	}

	pool := m.keeper.GetPool(sdkCtx, msg.PoolID)
	return &types.MsgTransferPositionResponse{
		NewBalance: m.keeper.PositionBalance(sdkCtx, pool, msg.From).String(),
	}, nil
}

// NominateSponsor handles MsgNominateSponsor
func (m *MsgServer) NominateSponsor(ctx context.Context, msg *types.MsgNominateSponsor) (*types.MsgNominateSponsorResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.NominateSponsor(sdkCtx, msg.Sponsor, msg.PoolID, msg.Nominee); err != nil {
		return nil, err
	}
	return &types.MsgNominateSponsorResponse{}, nil
}

// AcceptSponsor handles MsgAcceptSponsor
func (m *MsgServer) AcceptSponsor(ctx context.Context, msg *types.MsgAcceptSponsor) (*types.MsgAcceptSponsorResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.AcceptSponsor(sdkCtx, msg.Nominee, msg.PoolID); err != nil {
		return nil, err
	}
	return &types.MsgAcceptSponsorResponse{NewSponsor: msg.Nominee}, nil
}
