package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (c *cli) balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print the account balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bal, err := c.wire.Auction.GetBalance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Balance: %.2f\n", bal)
			return nil
		},
	}
}

func (c *cli) addBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-balance <amount>",
		Short: "Credit the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("amount: %w", err)
			}
			res, err := c.wire.Auction.AddBalance(cmd.Context(), amount)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}
