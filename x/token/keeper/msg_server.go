package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/dealflow/x/token/types"
)

// MsgServer defines the token MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// CreateToken handles MsgCreateToken
func (m *MsgServer) CreateToken(ctx context.Context, msg *types.MsgCreateToken) (*types.MsgCreateTokenResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	// Tokens created through the msg path have no controller: any holder
	// can be minted to by anyone, which suits external test tokens. Pool
	// and deal modules create their controlled tokens directly.
	token, err := m.keeper.CreateToken(sdkCtx, msg.Denom, msg.Name, msg.Symbol, msg.Decimals, "")
	if err != nil {
		return nil, err
	}

	return &types.MsgCreateTokenResponse{Denom: token.Denom}, nil
}

// Mint handles MsgMint
func (m *MsgServer) Mint(ctx context.Context, msg *types.MsgMint) (*types.MsgMintResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	if err := m.keeper.Mint(sdkCtx, msg.Minter, msg.Denom, msg.To, amount); err != nil {
		return nil, err
	}

	return &types.MsgMintResponse{
		NewBalance: m.keeper.BalanceOf(sdkCtx, msg.Denom, msg.To).String(),
	}, nil
}

// Transfer handles MsgTransfer
func (m *MsgServer) Transfer(ctx context.Context, msg *types.MsgTransfer) (*types.MsgTransferResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	if err := m.keeper.Transfer(sdkCtx, msg.Denom, msg.From, msg.To, amount); err != nil {
		return nil, err
	}

	return &types.MsgTransferResponse{
		NewBalance: m.keeper.BalanceOf(sdkCtx, msg.Denom, msg.From).String(),
	}, nil
}

// Approve handles MsgApprove
func (m *MsgServer) Approve(ctx context.Context, msg *types.MsgApprove) (*types.MsgApproveResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	if err := m.keeper.Approve(sdkCtx, msg.Denom, msg.Owner, msg.Spender, amount); err != nil {
		return nil, err
	}

	return &types.MsgApproveResponse{
		Allowance: m.keeper.Allowance(sdkCtx, msg.Denom, msg.Owner, msg.Spender).String(),
	}, nil
}

// TransferFrom handles MsgTransferFrom
func (m *MsgServer) TransferFrom(ctx context.Context, msg *types.MsgTransferFrom) (*types.MsgTransferFromResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	if err := m.keeper.TransferFrom(sdkCtx, msg.Denom, msg.Spender, msg.From, msg.To, amount); err != nil {
		return nil, err
	}

	return &types.MsgTransferFromResponse{
		RemainingAllowance: m.keeper.Allowance(sdkCtx, msg.Denom, msg.From, msg.Spender).String(),
	}, nil
}
