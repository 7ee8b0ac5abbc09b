package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the token module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "token",
		Short:                      "Querying commands for the token ledger",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryToken(),
		CmdQueryTokens(),
		CmdQueryBalance(),
	)

	return cmd
}

// CmdQueryToken returns the command to query token metadata
func CmdQueryToken() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token [denom]",
		Short: "Query token metadata and supply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Token query requires a running node connection")
			fmt.Printf("Use REST API: GET /v1/tokens/%s\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryTokens returns the command to query all tokens
func CmdQueryTokens() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Query all registered tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Token listing requires a running node connection")
			fmt.Println("Use REST API: GET /v1/tokens")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryBalance returns the command to query a balance
func CmdQueryBalance() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance [denom] [address]",
		Short: "Query an account's token balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Balance query requires a running node connection")
			fmt.Printf("Use REST API: GET /v1/tokens/%s/balance/%s\n", args[0], args[1])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
