package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the deal module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "deal",
		Short:                      "Querying commands for the deal module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryDeal(),
		CmdQueryDeals(),
		CmdQueryAllocation(),
		CmdQueryClaimable(),
	)

	return cmd
}

// CmdQueryDeal returns the command to query a single deal
func CmdQueryDeal() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deal [deal-id]",
		Short: "Query deal terms, funding status, and window schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Deal query requires a running node connection")
			fmt.Printf("Use REST API: GET /v1/deals/%s\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryDeals returns the command to query all deals
func CmdQueryDeals() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deals",
		Short: "Query all deals",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Deal listing requires a running node connection")
			fmt.Println("Use REST API: GET /v1/deals")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryAllocation returns the command to query a participant allocation
func CmdQueryAllocation() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocation [deal-id] [address]",
		Short: "Query a participant's accepted and claimed totals",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Allocation query requires a running node connection")
			fmt.Printf("Use REST API: GET /v1/deals/%s/allocations/%s\n", args[0], args[1])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryClaimable returns the command to query claimable tokens
func CmdQueryClaimable() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claimable [deal-id] [address]",
		Short: "Query currently claimable vested tokens for a participant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Claimable query requires a running node connection")
			fmt.Printf("Use REST API: GET /v1/deals/%s/claimable/%s\n", args[0], args[1])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
