package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/dealflow/x/pool/types"
)

const flagMax = "max"

// GetTxCmd returns the transaction commands for the pool module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "pool",
		Short:                      "Pool module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreatePool(),
		CmdPurchase(),
		CmdWithdraw(),
		CmdCreateDeal(),
		CmdAccept(),
		CmdTransferPosition(),
		CmdNominateSponsor(),
		CmdAcceptSponsor(),
	)

	return cmd
}

// CmdCreatePool returns the command to initialize a pool
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [pool-id] [name] [symbol] [purchase-denom] [cap] [window-end] [expiry] [sponsor-fee-bps]",
		Short: "Create a fundraising pool (cap 0 means uncapped, times are unix seconds)",
		Args:  cobra.ExactArgs(8),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			windowEnd, err := strconv.ParseInt(args[5], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid window end: %v", err)
			}
			expiry, err := strconv.ParseInt(args[6], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid expiry: %v", err)
			}
			feeBps, err := strconv.ParseUint(args[7], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid sponsor fee: %v", err)
			}

			msg := &types.MsgCreatePool{
				Sponsor:           clientCtx.GetFromAddress().String(),
				PoolID:            args[0],
				Name:              args[1],
				Symbol:            args[2],
				PurchaseDenom:     args[3],
				Cap:               args[4],
				PurchaseWindowEnd: windowEnd,
				PoolExpiry:        expiry,
				SponsorFeeBps:     uint32(feeBps),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdPurchase returns the command to contribute purchase tokens
func CmdPurchase() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purchase [pool-id] [amount]",
		Short: "Contribute purchase tokens for pool position tokens",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgPurchasePoolTokens{
				Purchaser: clientCtx.GetFromAddress().String(),
				PoolID:    args[0],
				Amount:    args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdraw returns the command to redeem position back into purchase tokens
func CmdWithdraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [pool-id] [amount]",
		Short: "Withdraw purchase tokens by burning position (use --max for everything)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			max, err := cmd.Flags().GetBool(flagMax)
			if err != nil {
				return err
			}

			amount := ""
			if len(args) > 1 {
				amount = args[1]
			}
			if !max && amount == "" {
				return fmt.Errorf("either an amount or --max is required")
			}

			msg := &types.MsgWithdrawFromPool{
				Withdrawer: clientCtx.GetFromAddress().String(),
				PoolID:     args[0],
				Amount:     amount,
				Max:        max,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Bool(flagMax, false, "Withdraw the entire position")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCreateDeal returns the sponsor command to strike a deal
func CmdCreateDeal() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-deal [pool-id] [deal-id] [underlying-denom] [purchase-total] [underlying-total] [holder] [funding-deadline] [pro-rata-secs] [open-secs] [vesting-cliff-secs] [vesting-period-secs]",
		Short: "Strike a deal against the pool's raised funds",
		Args:  cobra.ExactArgs(11),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			deadline, err := strconv.ParseInt(args[6], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid funding deadline: %v", err)
			}
			proRata, err := strconv.ParseInt(args[7], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pro-rata duration: %v", err)
			}
			open, err := strconv.ParseInt(args[8], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid open duration: %v", err)
			}
			cliff, err := strconv.ParseInt(args[9], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid vesting cliff: %v", err)
			}
			period, err := strconv.ParseInt(args[10], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid vesting period: %v", err)
			}

			msg := &types.MsgCreateDeal{
				Sponsor:               clientCtx.GetFromAddress().String(),
				PoolID:                args[0],
				DealID:                args[1],
				UnderlyingDenom:       args[2],
				PurchaseTokenTotal:    args[3],
				UnderlyingTotal:       args[4],
				Holder:                args[5],
				HolderFundingDeadline: deadline,
				ProRataSeconds:        proRata,
				OpenSeconds:           open,
				VestingCliffSeconds:   cliff,
				VestingPeriodSeconds:  period,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAccept returns the command to redeem position into deal claim balance
func CmdAccept() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept [pool-id] [amount]",
		Short: "Redeem position into deal claim balance (use --max for the full entitlement)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			max, err := cmd.Flags().GetBool(flagMax)
			if err != nil {
				return err
			}

			amount := ""
			if len(args) > 1 {
				amount = args[1]
			}
			if !max && amount == "" {
				return fmt.Errorf("either an amount or --max is required")
			}

			msg := &types.MsgAcceptDealTokens{
				Participant: clientCtx.GetFromAddress().String(),
				PoolID:      args[0],
				Amount:      amount,
				Max:         max,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Bool(flagMax, false, "Redeem the full entitlement for the active window")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTransferPosition returns the command to transfer position tokens
func CmdTransferPosition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer-position [pool-id] [to] [amount]",
		Short: "Transfer pool position tokens to another account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgTransferPosition{
				From:   clientCtx.GetFromAddress().String(),
				PoolID: args[0],
				To:     args[1],
				Amount: args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdNominateSponsor returns the command to nominate a successor sponsor
func CmdNominateSponsor() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nominate-sponsor [pool-id] [nominee]",
		Short: "Nominate a new sponsor for the pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgNominateSponsor{
				Sponsor: clientCtx.GetFromAddress().String(),
				PoolID:  args[0],
				Nominee: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAcceptSponsor returns the command to accept a pending nomination
func CmdAcceptSponsor() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept-sponsor [pool-id]",
		Short: "Accept a pending sponsor nomination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgAcceptSponsor{
				Nominee: clientCtx.GetFromAddress().String(),
				PoolID:  args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
