package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"auctionauth/internal/domain/types"
	"auctionauth/internal/services/auth"
)

func (c *cli) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Create an account on the auction server",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.wire.Auction.Register(cmd.Context(), types.Username(args[0]), args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in and store the session token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.wire.Auction.Login(cmd.Context(), types.Username(args[0]), args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.wire.Auction.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session, key policy and state location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			state := c.wire.StatePath
			if state == "" {
				state = "(memory)"
			}
			fmt.Fprintf(out, "Server:     %s\n", c.wire.Transport.Base)
			fmt.Fprintf(out, "State:      %s\n", state)
			fmt.Fprintf(out, "Key policy: %s\n", c.wire.Keys.Policy())

			if key, ok, err := c.wire.Keys.RemoteKey(); err != nil {
				return err
			} else if ok {
				fmt.Fprintf(out, "Server key: %s\n", key)
			} else {
				fmt.Fprintln(out, "Server key: not cached")
			}

			token, ok, err := c.wire.Auth.Token()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Session:    logged out")
				return nil
			}
			info, err := auth.ParseSessionToken(token)
			switch {
			case errors.Is(err, auth.ErrOpaqueToken):
				fmt.Fprintln(out, "Session:    opaque token")
				return nil
			case err != nil:
				return err
			}
			fmt.Fprintf(out, "Session:    user id %s\n", info.Subject)
			if !info.ExpiresAt.IsZero() {
				label := "expires"
				if info.Expired(time.Now()) {
					label = "expired"
				}
				fmt.Fprintf(out, "            %s %s\n", label, info.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}
