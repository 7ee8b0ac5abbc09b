package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreateToken  = "create_token"
	TypeMsgMint         = "mint"
	TypeMsgTransfer     = "transfer"
	TypeMsgApprove      = "approve"
	TypeMsgTransferFrom = "transfer_from"
)

// MsgCreateToken defines the CreateToken message
type MsgCreateToken struct {
	Creator  string `json:"creator"`
	Denom    string `json:"denom"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint32 `json:"decimals"`
}

// Route implements sdk.Msg
func (msg MsgCreateToken) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreateToken) Type() string { return TypeMsgCreateToken }

// ValidateBasic implements sdk.Msg
func (msg MsgCreateToken) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return err
	}
	if msg.Denom == "" {
		return ErrInvalidDenom
	}
	if msg.Decimals > CanonicalDecimals {
		return ErrInvalidDecimals
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreateToken) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreateToken) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreateToken) Reset() { *msg = MsgCreateToken{} }

// String implements proto.Message
func (msg MsgCreateToken) String() string {
	return fmt.Sprintf("MsgCreateToken{Creator: %s, Denom: %s, Decimals: %d}", msg.Creator, msg.Denom, msg.Decimals)
}

// MsgCreateTokenResponse defines the CreateToken response
type MsgCreateTokenResponse struct {
	Denom string `json:"denom"`
}

// MsgMint defines the Mint message (uncontrolled tokens only; controlled
// tokens are minted by their controller module)
type MsgMint struct {
	Minter string `json:"minter"`
	Denom  string `json:"denom"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgMint) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgMint) Type() string { return TypeMsgMint }

// ValidateBasic implements sdk.Msg
func (msg MsgMint) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Minter); err != nil {
		return err
	}
	if msg.Denom == "" {
		return ErrInvalidDenom
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgMint) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Minter)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgMint) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgMint) Reset() { *msg = MsgMint{} }

// String implements proto.Message
func (msg MsgMint) String() string {
	return fmt.Sprintf("MsgMint{Minter: %s, Denom: %s, To: %s, Amount: %s}", msg.Minter, msg.Denom, msg.To, msg.Amount)
}

// MsgMintResponse defines the Mint response
type MsgMintResponse struct {
	NewBalance string `json:"new_balance"`
}

// MsgTransfer defines the Transfer message
type MsgTransfer struct {
	From   string `json:"from"`
	Denom  string `json:"denom"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgTransfer) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransfer) Type() string { return TypeMsgTransfer }

// ValidateBasic implements sdk.Msg
func (msg MsgTransfer) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.From); err != nil {
		return err
	}
	if msg.Denom == "" {
		return ErrInvalidDenom
	}
	if msg.To == "" {
		return ErrInvalidDenom
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTransfer) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.From)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTransfer) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransfer) Reset() { *msg = MsgTransfer{} }

// String implements proto.Message
func (msg MsgTransfer) String() string {
	return fmt.Sprintf("MsgTransfer{From: %s, Denom: %s, To: %s, Amount: %s}", msg.From, msg.Denom, msg.To, msg.Amount)
}

// MsgTransferResponse defines the Transfer response
type MsgTransferResponse struct {
	NewBalance string `json:"new_balance"`
}

// MsgApprove defines the Approve message
type MsgApprove struct {
	Owner   string `json:"owner"`
	Denom   string `json:"denom"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgApprove) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgApprove) Type() string { return TypeMsgApprove }

// ValidateBasic implements sdk.Msg
func (msg MsgApprove) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	if msg.Denom == "" {
		return ErrInvalidDenom
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgApprove) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgApprove) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgApprove) Reset() { *msg = MsgApprove{} }

// String implements proto.Message
func (msg MsgApprove) String() string {
	return fmt.Sprintf("MsgApprove{Owner: %s, Denom: %s, Spender: %s, Amount: %s}", msg.Owner, msg.Denom, msg.Spender, msg.Amount)
}

// MsgApproveResponse defines the Approve response
type MsgApproveResponse struct {
	Allowance string `json:"allowance"`
}

// MsgTransferFrom defines the TransferFrom message
type MsgTransferFrom struct {
	Spender string `json:"spender"`
	Denom   string `json:"denom"`
	From    string `json:"from"`
	To      string `json:"to"`
	Amount  string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgTransferFrom) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransferFrom) Type() string { return TypeMsgTransferFrom }

// ValidateBasic implements sdk.Msg
func (msg MsgTransferFrom) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Spender); err != nil {
		return err
	}
	if msg.Denom == "" {
		return ErrInvalidDenom
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTransferFrom) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Spender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTransferFrom) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferFrom) Reset() { *msg = MsgTransferFrom{} }

// String implements proto.Message
func (msg MsgTransferFrom) String() string {
	return fmt.Sprintf("MsgTransferFrom{Spender: %s, Denom: %s, From: %s, To: %s, Amount: %s}", msg.Spender, msg.Denom, msg.From, msg.To, msg.Amount)
}

// MsgTransferFromResponse defines the TransferFrom response
type MsgTransferFromResponse struct {
	RemainingAllowance string `json:"remaining_allowance"`
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgCreateToken{}
	_ sdk.Msg = &MsgMint{}
	_ sdk.Msg = &MsgTransfer{}
	_ sdk.Msg = &MsgApprove{}
	_ sdk.Msg = &MsgTransferFrom{}
)
