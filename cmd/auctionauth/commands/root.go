package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"auctionauth/internal/app"
	"auctionauth/internal/logging"
	"auctionauth/internal/transport"
)

// Version is stamped into log records.
var Version = "dev"

// cli carries flag values and the wired graph for one invocation.
type cli struct {
	cfg      app.Config
	wire     *app.Wire
	logJSON  bool
	logDebug bool
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "auctionauth",
		Short:         "Authenticated client for the auction service",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&c.cfg.Home, "home", "", "state dir (default $AUCTION_HOME or ~/.auctionauth)")
	f.StringVar(&c.cfg.ServerURL, "server", "", "auction server base URL (default $AUCTION_SERVER_URL or "+app.DefaultServerURL+")")
	f.StringVarP(&c.cfg.Passphrase, "passphrase", "p", "", "passphrase sealing the state file")
	f.StringVar(&c.cfg.IdentityFile, "identity", "", "key pair file, JSON or PEM (default built-in pair)")
	f.StringVar(&c.cfg.PinnedKeyFile, "pinned-key", "", "pin the server public key from this file instead of trusting the first fetch")
	f.DurationVar(&c.cfg.Timeout, "timeout", transport.DefaultTimeout, "per-request timeout")
	f.BoolVar(&c.cfg.Ephemeral, "ephemeral", false, "keep state in memory only")
	f.BoolVar(&c.logJSON, "log-json", false, "log in JSON format")
	f.BoolVar(&c.logDebug, "log-debug", false, "log debug messages")

	root.AddCommand(
		c.serverKeyCmd(),
		c.identityCmd(),
		c.registerCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.statusCmd(),
		c.balanceCmd(),
		c.addBalanceCmd(),
		c.auctionCmd(),
		c.bidCmd(),
	)
	return root
}

func (c *cli) setup() error {
	if c.cfg.Home == "" {
		home, err := app.DefaultHome()
		if err != nil {
			return err
		}
		c.cfg.Home = home
	}
	if err := app.LoadEnv(c.cfg.Home); err != nil {
		return err
	}
	c.cfg.ApplyEnv()
	c.cfg.Logger = logging.Setup(logging.Options{
		Debug:   c.logDebug,
		JSON:    c.logJSON,
		Service: "auctionauth",
		Version: Version,
	})

	w, err := app.NewWire(c.cfg)
	if err != nil {
		return err
	}
	c.wire = w
	return nil
}

// deadline returns a default auction end time for create.
func deadline(d time.Duration) int64 { return time.Now().Add(d).Unix() }
