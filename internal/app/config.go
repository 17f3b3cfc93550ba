package app

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when neither flags nor environment say otherwise.
const (
	DefaultServerURL = "http://127.0.0.1:8000"
	DefaultHomeDir   = ".auctionauth"
)

// Environment variables read by ApplyEnv.
const (
	EnvServerURL  = "AUCTION_SERVER_URL"
	EnvHome       = "AUCTION_HOME"
	EnvPassphrase = "AUCTION_PASSPHRASE"
	EnvIdentity   = "AUCTION_IDENTITY"
	EnvPinnedKey  = "AUCTION_PINNED_KEY"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home      string        // state directory, e.g. $HOME/.auctionauth
	ServerURL string        // auction server base URL
	Timeout   time.Duration // per-request timeout; zero means transport default
	// Passphrase, when set, seals the state file.
	Passphrase string
	// IdentityFile replaces the built-in key pair (JSON or PEM).
	IdentityFile string
	// PinnedKeyFile pins the server key instead of trusting the first fetch.
	PinnedKeyFile string
	// Ephemeral keeps state in memory only.
	Ephemeral bool

	HTTP   *http.Client // optional; defaults to http.DefaultClient
	Logger *slog.Logger // optional; defaults to discard
}

// DefaultHome returns $AUCTION_HOME or ~/.auctionauth.
func DefaultHome() (string, error) {
	if h := os.Getenv(EnvHome); h != "" {
		return h, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultHomeDir), nil
}

// LoadEnv loads <home>/.env and ./.env if they exist. Variables already set
// in the environment are not overridden.
func LoadEnv(home string) error {
	for _, f := range []string{filepath.Join(home, ".env"), ".env"} {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv fills fields left empty from the environment and defaults.
func (c *Config) ApplyEnv() {
	fill := func(dst *string, env, def string) {
		if *dst != "" {
			return
		}
		if v := os.Getenv(env); v != "" {
			*dst = v
			return
		}
		*dst = def
	}
	fill(&c.ServerURL, EnvServerURL, DefaultServerURL)
	fill(&c.Passphrase, EnvPassphrase, "")
	fill(&c.IdentityFile, EnvIdentity, "")
	fill(&c.PinnedKeyFile, EnvPinnedKey, "")
}
