package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreatePool         = "create_pool"
	TypeMsgPurchasePoolTokens = "purchase_pool_tokens"
	TypeMsgWithdrawFromPool   = "withdraw_from_pool"
	TypeMsgCreateDeal         = "create_deal"
	TypeMsgAcceptDealTokens   = "accept_deal_tokens"
	TypeMsgTransferPosition   = "transfer_position"
	TypeMsgNominateSponsor    = "nominate_sponsor"
	TypeMsgAcceptSponsor      = "accept_sponsor"
)

// MsgCreatePool defines the CreatePool message
type MsgCreatePool struct {
	Sponsor           string `json:"sponsor"`
	PoolID            string `json:"pool_id"`
	Name              string `json:"name"`
	Symbol            string `json:"symbol"`
	PurchaseDenom     string `json:"purchase_denom"`
	Cap               string `json:"cap"`
	PurchaseWindowEnd int64  `json:"purchase_window_end"`
	PoolExpiry        int64  `json:"pool_expiry"`
	SponsorFeeBps     uint32 `json:"sponsor_fee_bps"`
}

// Route implements sdk.Msg
func (msg MsgCreatePool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreatePool) Type() string { return TypeMsgCreatePool }

// ValidateBasic implements sdk.Msg
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sponsor); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrInvalidConfig.Wrap("empty pool id")
	}
	if msg.PurchaseDenom == "" {
		return ErrInvalidConfig.Wrap("empty purchase denom")
	}
	if msg.SponsorFeeBps > MaxSponsorFeeBps {
		return ErrSponsorFeeTooHigh
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sponsor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreatePool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreatePool) Reset() { *msg = MsgCreatePool{} }

// String implements proto.Message
func (msg MsgCreatePool) String() string {
	return fmt.Sprintf("MsgCreatePool{Sponsor: %s, PoolID: %s, Cap: %s}", msg.Sponsor, msg.PoolID, msg.Cap)
}

// MsgCreatePoolResponse defines the CreatePool response
type MsgCreatePoolResponse struct {
	PoolID        string `json:"pool_id"`
	PositionDenom string `json:"position_denom"`
}

// MsgPurchasePoolTokens defines the Purchase message. Amount is in purchase
// token base units; the minted position is decimal-normalized.
type MsgPurchasePoolTokens struct {
	Purchaser string `json:"purchaser"`
	PoolID    string `json:"pool_id"`
	Amount    string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgPurchasePoolTokens) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgPurchasePoolTokens) Type() string { return TypeMsgPurchasePoolTokens }

// ValidateBasic implements sdk.Msg
func (msg MsgPurchasePoolTokens) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Purchaser); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgPurchasePoolTokens) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Purchaser)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgPurchasePoolTokens) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgPurchasePoolTokens) Reset() { *msg = MsgPurchasePoolTokens{} }

// String implements proto.Message
func (msg MsgPurchasePoolTokens) String() string {
	return fmt.Sprintf("MsgPurchasePoolTokens{Purchaser: %s, PoolID: %s, Amount: %s}", msg.Purchaser, msg.PoolID, msg.Amount)
}

// MsgPurchasePoolTokensResponse defines the Purchase response
type MsgPurchasePoolTokensResponse struct {
	PositionMinted string `json:"position_minted"`
	TotalPurchased string `json:"total_purchased"`
}

// MsgWithdrawFromPool defines the Withdraw message. Max withdraws the whole
// position and ignores Amount.
type MsgWithdrawFromPool struct {
	Withdrawer string `json:"withdrawer"`
	PoolID     string `json:"pool_id"`
	Amount     string `json:"amount,omitempty"`
	Max        bool   `json:"max,omitempty"`
}

// Route implements sdk.Msg
func (msg MsgWithdrawFromPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdrawFromPool) Type() string { return TypeMsgWithdrawFromPool }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdrawFromPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Withdrawer); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWithdrawFromPool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Withdrawer)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWithdrawFromPool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdrawFromPool) Reset() { *msg = MsgWithdrawFromPool{} }

// String implements proto.Message
func (msg MsgWithdrawFromPool) String() string {
	return fmt.Sprintf("MsgWithdrawFromPool{Withdrawer: %s, PoolID: %s, Amount: %s, Max: %t}", msg.Withdrawer, msg.PoolID, msg.Amount, msg.Max)
}

// MsgWithdrawFromPoolResponse defines the Withdraw response
type MsgWithdrawFromPoolResponse struct {
	PositionBurned string `json:"position_burned"`
	Refunded       string `json:"refunded"`
}

// MsgCreateDeal defines the CreateDeal message. Durations are in seconds;
// amounts are base units of their respective tokens.
type MsgCreateDeal struct {
	Sponsor               string `json:"sponsor"`
	PoolID                string `json:"pool_id"`
	DealID                string `json:"deal_id"`
	UnderlyingDenom       string `json:"underlying_denom"`
	PurchaseTokenTotal    string `json:"purchase_token_total"`
	UnderlyingTotal       string `json:"underlying_total"`
	VestingPeriodSeconds  int64  `json:"vesting_period_seconds"`
	VestingCliffSeconds   int64  `json:"vesting_cliff_seconds"`
	ProRataSeconds        int64  `json:"pro_rata_seconds"`
	OpenSeconds           int64  `json:"open_seconds"`
	Holder                string `json:"holder"`
	HolderFundingDeadline int64  `json:"holder_funding_deadline"`
}

// Route implements sdk.Msg
func (msg MsgCreateDeal) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreateDeal) Type() string { return TypeMsgCreateDeal }

// ValidateBasic implements sdk.Msg
func (msg MsgCreateDeal) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sponsor); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.ProRataSeconds < MinProRataSeconds {
		return ErrProRataPeriodTooShort
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreateDeal) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sponsor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreateDeal) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreateDeal) Reset() { *msg = MsgCreateDeal{} }

// String implements proto.Message
func (msg MsgCreateDeal) String() string {
	return fmt.Sprintf("MsgCreateDeal{Sponsor: %s, PoolID: %s, DealID: %s}", msg.Sponsor, msg.PoolID, msg.DealID)
}

// MsgCreateDealResponse defines the CreateDeal response
type MsgCreateDealResponse struct {
	DealID       string `json:"deal_id"`
	ExchangeRate string `json:"exchange_rate"`
}

// MsgAcceptDealTokens defines the Accept message. Amount is in canonical
// position units; Max redeems the caller's full current entitlement.
type MsgAcceptDealTokens struct {
	Participant string `json:"participant"`
	PoolID      string `json:"pool_id"`
	Amount      string `json:"amount,omitempty"`
	Max         bool   `json:"max,omitempty"`
}

// Route implements sdk.Msg
func (msg MsgAcceptDealTokens) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgAcceptDealTokens) Type() string { return TypeMsgAcceptDealTokens }

// ValidateBasic implements sdk.Msg
func (msg MsgAcceptDealTokens) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Participant); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgAcceptDealTokens) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Participant)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgAcceptDealTokens) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgAcceptDealTokens) Reset() { *msg = MsgAcceptDealTokens{} }

// String implements proto.Message
func (msg MsgAcceptDealTokens) String() string {
	return fmt.Sprintf("MsgAcceptDealTokens{Participant: %s, PoolID: %s, Amount: %s, Max: %t}", msg.Participant, msg.PoolID, msg.Amount, msg.Max)
}

// MsgAcceptDealTokensResponse defines the Accept response
type MsgAcceptDealTokensResponse struct {
	PositionBurned string `json:"position_burned"`
	ClaimCredited  string `json:"claim_credited"`
}

// MsgTransferPosition defines the position transfer message
type MsgTransferPosition struct {
	From   string `json:"from"`
	PoolID string `json:"pool_id"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgTransferPosition) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransferPosition) Type() string { return TypeMsgTransferPosition }

// ValidateBasic implements sdk.Msg
func (msg MsgTransferPosition) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.From); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTransferPosition) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.From)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTransferPosition) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferPosition) Reset() { *msg = MsgTransferPosition{} }

// String implements proto.Message
func (msg MsgTransferPosition) String() string {
	return fmt.Sprintf("MsgTransferPosition{From: %s, PoolID: %s, To: %s, Amount: %s}", msg.From, msg.PoolID, msg.To, msg.Amount)
}

// MsgTransferPositionResponse defines the position transfer response
type MsgTransferPositionResponse struct {
	NewBalance string `json:"new_balance"`
}

// MsgNominateSponsor defines the sponsor nomination message
type MsgNominateSponsor struct {
	Sponsor string `json:"sponsor"`
	PoolID  string `json:"pool_id"`
	Nominee string `json:"nominee"`
}

// Route implements sdk.Msg
func (msg MsgNominateSponsor) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgNominateSponsor) Type() string { return TypeMsgNominateSponsor }

// ValidateBasic implements sdk.Msg
func (msg MsgNominateSponsor) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sponsor); err != nil {
		return err
	}
	if msg.Nominee == "" {
		return ErrInvalidConfig.Wrap("empty nominee")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgNominateSponsor) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sponsor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgNominateSponsor) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgNominateSponsor) Reset() { *msg = MsgNominateSponsor{} }

// String implements proto.Message
func (msg MsgNominateSponsor) String() string {
	return fmt.Sprintf("MsgNominateSponsor{Sponsor: %s, PoolID: %s, Nominee: %s}", msg.Sponsor, msg.PoolID, msg.Nominee)
}

// MsgNominateSponsorResponse defines the nomination response
type MsgNominateSponsorResponse struct{}

// MsgAcceptSponsor defines the sponsor acceptance message
type MsgAcceptSponsor struct {
	Nominee string `json:"nominee"`
	PoolID  string `json:"pool_id"`
}

// Route implements sdk.Msg
func (msg MsgAcceptSponsor) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgAcceptSponsor) Type() string { return TypeMsgAcceptSponsor }

// ValidateBasic implements sdk.Msg
func (msg MsgAcceptSponsor) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Nominee); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgAcceptSponsor) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Nominee)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgAcceptSponsor) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgAcceptSponsor) Reset() { *msg = MsgAcceptSponsor{} }

// String implements proto.Message
func (msg MsgAcceptSponsor) String() string {
	return fmt.Sprintf("MsgAcceptSponsor{Nominee: %s, PoolID: %s}", msg.Nominee, msg.PoolID)
}

// MsgAcceptSponsorResponse defines the acceptance response
type MsgAcceptSponsorResponse struct {
	NewSponsor string `json:"new_sponsor"`
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgCreatePool{}
	_ sdk.Msg = &MsgPurchasePoolTokens{}
	_ sdk.Msg = &MsgWithdrawFromPool{}
	_ sdk.Msg = &MsgCreateDeal{}
	_ sdk.Msg = &MsgAcceptDealTokens{}
	_ sdk.Msg = &MsgTransferPosition{}
	_ sdk.Msg = &MsgNominateSponsor{}
	_ sdk.Msg = &MsgAcceptSponsor{}
)
