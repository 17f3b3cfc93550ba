package app

import (
	"fmt"
	"net/http"
	"os"

	"auctionauth/internal/crypto"
	"auctionauth/internal/domain"
	"auctionauth/internal/logging"
	auctionsvc "auctionauth/internal/services/auction"
	authsvc "auctionauth/internal/services/auth"
	keysvc "auctionauth/internal/services/keys"
	"auctionauth/internal/store"
	"auctionauth/internal/transport"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	State     domain.ClientStateStore
	Identity  domain.KeyMaterialProvider
	Keys      *keysvc.Model
	Transport *transport.HTTP
	Auth      *authsvc.Authenticator
	Auction   *auctionsvc.Service
	// StatePath is the backing file, empty for ephemeral state.
	StatePath string
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	// State slots, optionally sealed.
	var state domain.ClientStateStore
	var statePath string
	if cfg.Ephemeral {
		state = store.NewMemoryStateStore()
	} else {
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, err
		}
		fs := store.NewStateFileStore(cfg.Home)
		state, statePath = fs, fs.Path()
	}
	if cfg.Passphrase != "" {
		sealed, err := store.NewSealedStore(state, cfg.Passphrase)
		if err != nil {
			return nil, err
		}
		state = sealed
	}

	// Our key pair.
	var identity domain.KeyMaterialProvider = crypto.NewFixedProvider(crypto.DefaultIdentity())
	if cfg.IdentityFile != "" {
		p, err := crypto.NewFileProvider(cfg.IdentityFile)
		if err != nil {
			return nil, fmt.Errorf("load identity: %w", err)
		}
		identity = p
	}

	keyOpts := []keysvc.Option{keysvc.WithLogger(log)}
	if cfg.PinnedKeyFile != "" {
		pinned, err := keysvc.LoadPinnedKey(cfg.PinnedKeyFile)
		if err != nil {
			return nil, err
		}
		keyOpts = append(keyOpts, keysvc.WithPinnedKey(pinned))
	}
	km := keysvc.New(identity, state, keyOpts...)

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	tOpts := []transport.Option{transport.WithHTTPClient(httpClient), transport.WithLogger(log)}
	if cfg.Timeout > 0 {
		tOpts = append(tOpts, transport.WithTimeout(cfg.Timeout))
	}
	tr := transport.NewHTTP(cfg.ServerURL, tOpts...)

	a := authsvc.New(km, crypto.Textbook{}, tr, state, authsvc.WithLogger(log))

	return &Wire{
		State:     state,
		Identity:  identity,
		Keys:      km,
		Transport: tr,
		Auth:      a,
		Auction:   auctionsvc.New(a),
		StatePath: statePath,
	}, nil
}
