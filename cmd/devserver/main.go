package main

import (
	"crypto/rand"
	"crypto/rsa"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"auctionauth/internal/crypto"
	"auctionauth/internal/devserver"
	"auctionauth/internal/domain/types"
	"auctionauth/internal/logging"
)

// Version is stamped into log records.
var Version = "dev"

var flags []cli.Flag = []cli.Flag{
	&cli.StringFlag{
		Name:  "listen-addr",
		Value: "127.0.0.1:8000",
		Usage: "address to listen on for API",
	},
	&cli.StringFlag{
		Name:  "key-file",
		Value: "",
		Usage: "server key pair, PEM or JSON (default: generate one)",
	},
	&cli.IntFlag{
		Name:  "key-bits",
		Value: 2048,
		Usage: "modulus size when generating the server key",
	},
	&cli.StringFlag{
		Name:  "token-secret",
		Value: "",
		Usage: "HS256 secret for session tokens (default: random)",
	},
	&cli.DurationFlag{
		Name:  "token-ttl",
		Value: devserver.DefaultTokenTTL,
		Usage: "session token lifetime",
	},
	&cli.BoolFlag{
		Name:  "log-json",
		Value: false,
		Usage: "log in JSON format",
	},
	&cli.BoolFlag{
		Name:  "log-debug",
		Value: false,
		Usage: "log debug messages",
	},
	&cli.BoolFlag{
		Name:  "log-uid",
		Value: false,
		Usage: "generate a uuid and add to all log messages",
	},
	&cli.StringFlag{
		Name:  "log-service",
		Value: "auction-devserver",
		Usage: "add 'service' tag to logs",
	},
}

func main() {
	app := &cli.App{
		Name:  "devserver",
		Usage: "Serve an in-memory auction API for local development",
		Flags: flags,
		Action: func(cCtx *cli.Context) error {
			logger := logging.Setup(logging.Options{
				Debug:   cCtx.Bool("log-debug"),
				JSON:    cCtx.Bool("log-json"),
				Service: cCtx.String("log-service"),
				Version: Version,
			})
			if cCtx.Bool("log-uid") {
				id := uuid.Must(uuid.NewRandom())
				logger = logger.With("uid", id.String())
			}

			key, err := serverKey(cCtx.String("key-file"), cCtx.Int("key-bits"))
			if err != nil {
				logger.Error("Failed to load server key", "err", err)
				return err
			}
			logger.Info("Server key ready", "fingerprint", crypto.Fingerprint(key.Public), "bits", key.Public.Modulus().BitLen())

			server, err := devserver.New(&devserver.Config{
				ListenAddr:               cCtx.String("listen-addr"),
				Log:                      logger,
				Key:                      key,
				TokenSecret:              []byte(cCtx.String("token-secret")),
				TokenTTL:                 cCtx.Duration("token-ttl"),
				GracefulShutdownDuration: 10 * time.Second,
				ReadTimeout:              30 * time.Second,
				WriteTimeout:             30 * time.Second,
			})
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}
			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			<-exit
			logger.Info("Shutdown signal received")
			server.Shutdown()
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serverKey(path string, bits int) (types.KeyPair, error) {
	if path != "" {
		return crypto.LoadIdentityFile(path)
	}
	k, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return types.KeyPair{}, err
	}
	return crypto.KeyPairFromRSA(k)
}
