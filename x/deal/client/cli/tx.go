package cli

import (
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/dealflow/x/deal/types"
)

// GetTxCmd returns the transaction commands for the deal module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "deal",
		Short:                      "Deal module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdDeposit(),
		CmdWithdrawExcess(),
		CmdWithdrawExpiry(),
		CmdClaim(),
		CmdSetHolder(),
		CmdAcceptHolder(),
	)

	return cmd
}

// CmdDeposit returns the holder command to fund the deal
func CmdDeposit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [deal-id] [amount]",
		Short: "Deposit underlying tokens into deal escrow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgDepositUnderlying{
				Holder: clientCtx.GetFromAddress().String(),
				DealID: args[0],
				Amount: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdrawExcess returns the holder command to reclaim excess escrow
func CmdWithdrawExcess() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw-excess [deal-id]",
		Short: "Withdraw escrow balance in excess of outstanding obligations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgWithdrawExcess{
				Holder: clientCtx.GetFromAddress().String(),
				DealID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdrawExpiry returns the holder command to sweep the remainder
func CmdWithdrawExpiry() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw-expiry [deal-id]",
		Short: "Withdraw the unconverted remainder after the open window elapses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgWithdrawExpiry{
				Holder: clientCtx.GetFromAddress().String(),
				DealID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdClaim returns the participant command to claim vested tokens
func CmdClaim() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim [deal-id]",
		Short: "Claim vested underlying tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgClaim{
				Participant: clientCtx.GetFromAddress().String(),
				DealID:      args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetHolder returns the command to nominate a successor holder
func CmdSetHolder() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-holder [deal-id] [nominee]",
		Short: "Nominate a new holder for the deal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgSetHolder{
				Holder:  clientCtx.GetFromAddress().String(),
				DealID:  args[0],
				Nominee: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAcceptHolder returns the command to accept a pending nomination
func CmdAcceptHolder() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept-holder [deal-id]",
		Short: "Accept a pending holder nomination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgAcceptHolder{
				Nominee: clientCtx.GetFromAddress().String(),
				DealID:  args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
