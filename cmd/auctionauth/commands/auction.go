package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"auctionauth/internal/domain/types"
)

func (c *cli) auctionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auction",
		Short: "Create, list, inspect and delete auctions",
	}
	cmd.AddCommand(c.auctionCreateCmd(), c.auctionListCmd(), c.auctionGetCmd(), c.auctionDeleteCmd())
	return cmd
}

func (c *cli) auctionCreateCmd() *cobra.Command {
	var (
		a      types.NewAuction
		endsIn time.Duration
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "List a new item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Timestamp = deadline(endsIn)
			created, err := c.wire.Auction.CreateAuction(cmd.Context(), a)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}
	f := cmd.Flags()
	f.StringVar(&a.Title, "title", "", "item title")
	f.StringVar(&a.Description, "description", "", "item description")
	f.Float64Var(&a.Price, "price", 5, "starting price")
	f.DurationVar(&endsIn, "ends-in", time.Hour, "time until the auction closes")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func (c *cli) auctionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all auctions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := c.wire.Auction.ListAuctions(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No auctions")
				return nil
			}
			for _, a := range list {
				fmt.Fprintf(out, "%d\t%s\t%.2f\t%s\tends %s\n",
					a.ID, a.Title, a.BasePrice, a.Status, time.Unix(a.EndAt, 0).Format(time.RFC3339))
			}
			return nil
		},
	}
}

func (c *cli) auctionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <auction-id>",
		Short: "Show one auction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := c.wire.Auction.GetAuction(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a)
		},
	}
}

func (c *cli) auctionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <auction-id>",
		Short: "Delete an auction you are selling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := c.wire.Auction.DeleteAuction(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted auction %d\n", res.AuctionID)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id %q: %w", s, err)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
