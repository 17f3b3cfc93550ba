package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"auctionauth/internal/domain/types"
)

func (c *cli) bidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bid",
		Short: "Place, cancel and track bids",
	}
	cmd.AddCommand(c.bidPlaceCmd(), c.bidCancelCmd(), c.bidPriceCmd())
	return cmd
}

func (c *cli) bidPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <auction-id> <price>",
		Short: "Bid on an auction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			price, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("price: %w", err)
			}
			b, err := c.wire.Auction.PlaceBid(cmd.Context(), types.NewBid{AuctionID: id, Price: price})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), b)
		},
	}
}

func (c *cli) bidCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <bid-id>",
		Short: "Withdraw your latest bid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := c.wire.Auction.CancelBid(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

func (c *cli) bidPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <auction-id>",
		Short: "Show the highest bid on an auction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := c.wire.Auction.UpdatePrice(cmd.Context(), id)
			if err != nil {
				return err
			}
			if p.UpdatedPrice == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Auction %d has no bids\n", p.AuctionID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Auction %d: %.2f\n", p.AuctionID, *p.UpdatedPrice)
			return nil
		},
	}
}
