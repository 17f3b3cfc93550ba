package devserver

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/atomic"

	"auctionauth/internal/crypto"
	"auctionauth/internal/domain"
	"auctionauth/internal/domain/types"
	"auctionauth/internal/logging"
)

// DefaultTokenTTL matches the production access token lifetime.
const DefaultTokenTTL = 30 * time.Minute

type Config struct {
	ListenAddr string
	Log        *slog.Logger

	// Key signs responses and decrypts credentials.
	Key types.KeyPair
	// TokenSecret is the HS256 key for session tokens. Empty means random.
	TokenSecret []byte
	TokenTTL    time.Duration
	// Now defaults to time.Now.
	Now func() time.Time

	GracefulShutdownDuration time.Duration
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
}

type Server struct {
	cfg     *Config
	log     *slog.Logger
	cipher  domain.Cipher
	db      *memory
	secret  []byte
	now     func() time.Time
	isReady atomic.Bool

	srv *http.Server
}

func New(cfg *Config) (*Server, error) {
	if cfg.Key.Public.IsZero() || cfg.Key.Private.IsZero() {
		return nil, errors.New("devserver: server key pair is required")
	}
	srv := &Server{
		cfg:    cfg,
		log:    cfg.Log,
		cipher: crypto.Textbook{},
		db:     newMemory(),
		secret: cfg.TokenSecret,
		now:    cfg.Now,
	}
	if srv.log == nil {
		srv.log = logging.Discard()
	}
	if srv.now == nil {
		srv.now = time.Now
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if len(srv.secret) == 0 {
		srv.secret = make([]byte, 32)
		if _, err := rand.Read(srv.secret); err != nil {
			return nil, err
		}
	}
	srv.isReady.Store(true)

	srv.srv = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return srv, nil
}

// Handler returns the router; tests mount it on httptest.
func (srv *Server) Handler() http.Handler {
	mux := chi.NewRouter()

	mux.With(srv.httpLogger).Get("/auth/public-key", srv.handlePublicKey)
	mux.With(srv.httpLogger).Post("/auth/register", srv.handleRegister)
	mux.With(srv.httpLogger).Post("/auth/login", srv.handleLogin)
	mux.With(srv.httpLogger).Post("/list-auctions", srv.handleListAuctions)

	mux.Group(func(r chi.Router) {
		r.Use(srv.httpLogger, srv.requireUser)
		r.Get("/get-balance", srv.handleGetBalance)
		r.Post("/balance", srv.handleAddBalance)
		r.Post("/create-auction", srv.handleCreateAuction)
		r.Post("/get-auction", srv.handleGetAuction)
		r.Post("/delete-auction", srv.handleDeleteAuction)
		r.Post("/bid", srv.handleBid)
		r.Post("/cancel-bid", srv.handleCancelBid)
		r.Post("/update-price", srv.handleUpdatePrice)
	})

	mux.With(srv.httpLogger).Get("/livez", srv.handleLivenessCheck)
	mux.With(srv.httpLogger).Get("/readyz", srv.handleReadinessCheck)
	return mux
}

func (srv *Server) httpLogger(next http.Handler) http.Handler {
	return httplogger.LoggingMiddlewareSlog(srv.log, next)
}

func (srv *Server) handleLivenessCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (srv *Server) handleReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if !srv.isReady.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (srv *Server) RunInBackground() {
	go func() {
		srv.log.Info("Starting HTTP server", "listenAddress", srv.cfg.ListenAddr)
		if err := srv.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.log.Error("HTTP server failed", "err", err)
		}
	}()
}

func (srv *Server) Shutdown() {
	srv.isReady.Store(false)
	ctx, cancel := context.WithTimeout(context.Background(), srv.cfg.GracefulShutdownDuration)
	defer cancel()
	if err := srv.srv.Shutdown(ctx); err != nil {
		srv.log.Error("Graceful HTTP server shutdown failed", "err", err)
	} else {
		srv.log.Info("HTTP server gracefully stopped")
	}
}
