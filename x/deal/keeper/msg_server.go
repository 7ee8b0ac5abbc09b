package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/dealflow/x/deal/types"
)

// MsgServer defines the deal MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// DepositUnderlying handles MsgDepositUnderlying
func (m *MsgServer) DepositUnderlying(ctx context.Context, msg *types.MsgDepositUnderlying) (*types.MsgDepositUnderlyingResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	deal, err := m.keeper.DepositUnderlying(sdkCtx, msg.Holder, msg.DealID, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgDepositUnderlyingResponse{
		DepositTotal:    deal.DepositTotal.String(),
		DepositComplete: deal.DepositComplete,
		ProRataStart:    deal.ProRataStart,
	}, nil
}

// WithdrawExcess handles MsgWithdrawExcess
func (m *MsgServer) WithdrawExcess(ctx context.Context, msg *types.MsgWithdrawExcess) (*types.MsgWithdrawExcessResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	withdrawn, err := m.keeper.Withdraw(sdkCtx, msg.Holder, msg.DealID)
	if err != nil {
		return nil, err
	}

	return &types.MsgWithdrawExcessResponse{Withdrawn: withdrawn.String()}, nil
}

// WithdrawExpiry handles MsgWithdrawExpiry
func (m *MsgServer) WithdrawExpiry(ctx context.Context, msg *types.MsgWithdrawExpiry) (*types.MsgWithdrawExpiryResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	withdrawn, err := m.keeper.WithdrawExpiry(sdkCtx, msg.Holder, msg.DealID)
	if err != nil {
		return nil, err
	}

	return &types.MsgWithdrawExpiryResponse{Withdrawn: withdrawn.String()}, nil
}

// Claim handles MsgClaim
func (m *MsgServer) Claim(ctx context.Context, msg *types.MsgClaim) (*types.MsgClaimResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	released, err := m.keeper.Claim(sdkCtx, msg.Participant, msg.DealID)
	if err != nil {
		return nil, err
	}

	alloc := m.keeper.GetAllocation(sdkCtx, msg.DealID, msg.Participant)
	return &types.MsgClaimResponse{
		Released:     released.String(),
		TotalClaimed: alloc.Claimed.String(),
	}, nil
}

// SetHolder handles MsgSetHolder
func (m *MsgServer) SetHolder(ctx context.Context, msg *types.MsgSetHolder) (*types.MsgSetHolderResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.SetHolder(sdkCtx, msg.Holder, msg.DealID, msg.Nominee); err != nil {
		return nil, err
	}
	return &types.MsgSetHolderResponse{}, nil
}

// AcceptHolder handles MsgAcceptHolder
func (m *MsgServer) AcceptHolder(ctx context.Context, msg *types.MsgAcceptHolder) (*types.MsgAcceptHolderResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.AcceptHolder(sdkCtx, msg.Nominee, msg.DealID); err != nil {
		return nil, err
	}
	return &types.MsgAcceptHolderResponse{NewHolder: msg.Nominee}, nil
}
