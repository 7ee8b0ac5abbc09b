package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgDepositUnderlying = "deposit_underlying"
	TypeMsgWithdrawExcess    = "withdraw_excess"
	TypeMsgWithdrawExpiry    = "withdraw_expiry"
	TypeMsgClaim             = "claim"
	TypeMsgSetHolder         = "set_holder"
	TypeMsgAcceptHolder      = "accept_holder"
)

// MsgDepositUnderlying defines the holder deposit message
type MsgDepositUnderlying struct {
	Holder string `json:"holder"`
	DealID string `json:"deal_id"`
	Amount string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgDepositUnderlying) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDepositUnderlying) Type() string { return TypeMsgDepositUnderlying }

// ValidateBasic implements sdk.Msg
func (msg MsgDepositUnderlying) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Holder); err != nil {
		return err
	}
	if msg.DealID == "" {
		return ErrDealNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgDepositUnderlying) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Holder)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgDepositUnderlying) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgDepositUnderlying) Reset() { *msg = MsgDepositUnderlying{} }

// String implements proto.Message
func (msg MsgDepositUnderlying) String() string {
	return fmt.Sprintf("MsgDepositUnderlying{Holder: %s, DealID: %s, Amount: %s}", msg.Holder, msg.DealID, msg.Amount)
}

// MsgDepositUnderlyingResponse defines the deposit response
type MsgDepositUnderlyingResponse struct {
	DepositTotal    string `json:"deposit_total"`
	DepositComplete bool   `json:"deposit_complete"`
	ProRataStart    int64  `json:"pro_rata_start,omitempty"`
}

// MsgWithdrawExcess defines the holder excess-withdraw message
type MsgWithdrawExcess struct {
	Holder string `json:"holder"`
	DealID string `json:"deal_id"`
}

// Route implements sdk.Msg
func (msg MsgWithdrawExcess) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdrawExcess) Type() string { return TypeMsgWithdrawExcess }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdrawExcess) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Holder); err != nil {
		return err
	}
	if msg.DealID == "" {
		return ErrDealNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWithdrawExcess) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Holder)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWithdrawExcess) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdrawExcess) Reset() { *msg = MsgWithdrawExcess{} }

// String implements proto.Message
func (msg MsgWithdrawExcess) String() string {
	return fmt.Sprintf("MsgWithdrawExcess{Holder: %s, DealID: %s}", msg.Holder, msg.DealID)
}

// MsgWithdrawExcessResponse defines the excess-withdraw response
type MsgWithdrawExcessResponse struct {
	Withdrawn string `json:"withdrawn"`
}

// MsgWithdrawExpiry defines the holder remainder-withdraw message
type MsgWithdrawExpiry struct {
	Holder string `json:"holder"`
	DealID string `json:"deal_id"`
}

// Route implements sdk.Msg
func (msg MsgWithdrawExpiry) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdrawExpiry) Type() string { return TypeMsgWithdrawExpiry }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdrawExpiry) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Holder); err != nil {
		return err
	}
	if msg.DealID == "" {
		return ErrDealNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWithdrawExpiry) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Holder)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWithdrawExpiry) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdrawExpiry) Reset() { *msg = MsgWithdrawExpiry{} }

// String implements proto.Message
func (msg MsgWithdrawExpiry) String() string {
	return fmt.Sprintf("MsgWithdrawExpiry{Holder: %s, DealID: %s}", msg.Holder, msg.DealID)
}

// MsgWithdrawExpiryResponse defines the remainder-withdraw response
type MsgWithdrawExpiryResponse struct {
	Withdrawn string `json:"withdrawn"`
}

// MsgClaim defines the participant claim message
type MsgClaim struct {
	Participant string `json:"participant"`
	DealID      string `json:"deal_id"`
}

// Route implements sdk.Msg
func (msg MsgClaim) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgClaim) Type() string { return TypeMsgClaim }

// ValidateBasic implements sdk.Msg
func (msg MsgClaim) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Participant); err != nil {
		return err
	}
	if msg.DealID == "" {
		return ErrDealNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgClaim) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Participant)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgClaim) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgClaim) Reset() { *msg = MsgClaim{} }

// String implements proto.Message
func (msg MsgClaim) String() string {
	return fmt.Sprintf("MsgClaim{Participant: %s, DealID: %s}", msg.Participant, msg.DealID)
}

// MsgClaimResponse defines the claim response
type MsgClaimResponse struct {
	Released     string `json:"released"`
	TotalClaimed string `json:"total_claimed"`
}

// MsgSetHolder defines the holder nomination message
type MsgSetHolder struct {
	Holder  string `json:"holder"`
	DealID  string `json:"deal_id"`
	Nominee string `json:"nominee"`
}

// Route implements sdk.Msg
func (msg MsgSetHolder) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetHolder) Type() string { return TypeMsgSetHolder }

// ValidateBasic implements sdk.Msg
func (msg MsgSetHolder) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Holder); err != nil {
		return err
	}
	if msg.Nominee == "" {
		return ErrInvalidTerms.Wrap("empty nominee")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetHolder) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Holder)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetHolder) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetHolder) Reset() { *msg = MsgSetHolder{} }

// String implements proto.Message
func (msg MsgSetHolder) String() string {
	return fmt.Sprintf("MsgSetHolder{Holder: %s, DealID: %s, Nominee: %s}", msg.Holder, msg.DealID, msg.Nominee)
}

// MsgSetHolderResponse defines the nomination response
type MsgSetHolderResponse struct{}

// MsgAcceptHolder defines the holder acceptance message
type MsgAcceptHolder struct {
	Nominee string `json:"nominee"`
	DealID  string `json:"deal_id"`
}

// Route implements sdk.Msg
func (msg MsgAcceptHolder) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgAcceptHolder) Type() string { return TypeMsgAcceptHolder }

// ValidateBasic implements sdk.Msg
func (msg MsgAcceptHolder) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Nominee); err != nil {
		return err
	}
	if msg.DealID == "" {
		return ErrDealNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgAcceptHolder) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Nominee)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgAcceptHolder) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgAcceptHolder) Reset() { *msg = MsgAcceptHolder{} }

// String implements proto.Message
func (msg MsgAcceptHolder) String() string {
	return fmt.Sprintf("MsgAcceptHolder{Nominee: %s, DealID: %s}", msg.Nominee, msg.DealID)
}

// MsgAcceptHolderResponse defines the acceptance response
type MsgAcceptHolderResponse struct {
	NewHolder string `json:"new_holder"`
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgDepositUnderlying{}
	_ sdk.Msg = &MsgWithdrawExcess{}
	_ sdk.Msg = &MsgWithdrawExpiry{}
	_ sdk.Msg = &MsgClaim{}
	_ sdk.Msg = &MsgSetHolder{}
	_ sdk.Msg = &MsgAcceptHolder{}
)
