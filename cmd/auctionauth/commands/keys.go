package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"auctionauth/internal/crypto"
)

func (c *cli) serverKeyCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "server-key",
		Short: "Show the server public key, fetching it if not cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			get := c.wire.Auth.ServerKey
			if refresh {
				get = c.wire.Auth.RefreshServerKey
			}
			key, err := get(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "e:           %s\n", key.Exponent())
			fmt.Fprintf(out, "n:           %s\n", key.Modulus())
			fmt.Fprintf(out, "Fingerprint: %s\n", crypto.Fingerprint(key))
			fmt.Fprintf(out, "Policy:      %s\n", c.wire.Keys.Policy())
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "discard the cached key and fetch again")
	return cmd
}

func (c *cli) identityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identity",
		Short: "Print our public key and fingerprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub := c.wire.Identity.KeyPair().Public
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "e:           %s\n", pub.Exponent())
			fmt.Fprintf(out, "n:           %s\n", pub.Modulus())
			fmt.Fprintf(out, "Fingerprint: %s\n", crypto.Fingerprint(pub))
			return nil
		},
	}
}
