package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/dealflow/x/token/types"
)

// GetTxCmd returns the transaction commands for the token module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "token",
		Short:                      "Token ledger transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreateToken(),
		CmdMint(),
		CmdTransfer(),
		CmdApprove(),
		CmdTransferFrom(),
	)

	return cmd
}

// CmdCreateToken returns the command to register a token on the ledger
func CmdCreateToken() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [denom] [name] [symbol] [decimals]",
		Short: "Register a token on the ledger",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			decimals, err := strconv.ParseUint(args[3], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid decimals: %v", err)
			}

			msg := &types.MsgCreateToken{
				Creator:  clientCtx.GetFromAddress().String(),
				Denom:    args[0],
				Name:     args[1],
				Symbol:   args[2],
				Decimals: uint32(decimals),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdMint returns the command to mint an uncontrolled token
func CmdMint() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint [denom] [to] [amount]",
		Short: "Mint tokens to an account (uncontrolled tokens only)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgMint{
				Minter: clientCtx.GetFromAddress().String(),
				Denom:  args[0],
				To:     args[1],
				Amount: args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTransfer returns the command to transfer tokens
func CmdTransfer() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer [denom] [to] [amount]",
		Short: "Transfer tokens to another account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgTransfer{
				From:   clientCtx.GetFromAddress().String(),
				Denom:  args[0],
				To:     args[1],
				Amount: args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdApprove returns the command to grant a spending allowance
func CmdApprove() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve [denom] [spender] [amount]",
		Short: "Grant a spender an allowance over your balance",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgApprove{
				Owner:   clientCtx.GetFromAddress().String(),
				Denom:   args[0],
				Spender: args[1],
				Amount:  args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTransferFrom returns the command to spend an allowance
func CmdTransferFrom() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer-from [denom] [from] [to] [amount]",
		Short: "Transfer tokens from another account using an allowance",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgTransferFrom{
				Spender: clientCtx.GetFromAddress().String(),
				Denom:   args[0],
				From:    args[1],
				To:      args[2],
				Amount:  args[3],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
