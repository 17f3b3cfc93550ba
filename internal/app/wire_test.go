package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctionauth/internal/app"
	"auctionauth/internal/crypto"
	"auctionauth/internal/domain"
	"auctionauth/internal/store"
)

func TestNewWireDefaults(t *testing.T) {
	home := t.TempDir()
	w, err := app.NewWire(app.Config{Home: home, ServerURL: app.DefaultServerURL})
	require.NoError(t, err)

	assert.Equal(t, crypto.DefaultIdentity(), w.Identity.KeyPair())
	assert.Equal(t, domain.TrustOnFirstUse, w.Keys.Policy())
	assert.Equal(t, filepath.Join(home, store.StateFile), w.StatePath)
	assert.IsType(t, &store.StateFileStore{}, w.State)
	assert.Equal(t, app.DefaultServerURL, w.Transport.Base)
}

func TestNewWireEphemeralSealedPinned(t *testing.T) {
	dir := t.TempDir()
	pinned := filepath.Join(dir, "server.json")
	require.NoError(t, os.WriteFile(pinned, []byte(`{"e":"65537","n":"3233009699"}`), 0o600))

	w, err := app.NewWire(app.Config{Ephemeral: true, Passphrase: "pw", PinnedKeyFile: pinned})
	require.NoError(t, err)
	assert.Empty(t, w.StatePath)
	assert.IsType(t, &store.SealedStore{}, w.State)
	assert.Equal(t, domain.Pinned, w.Keys.Policy())
}

func TestNewWireBadIdentity(t *testing.T) {
	_, err := app.NewWire(app.Config{Ephemeral: true, IdentityFile: filepath.Join(t.TempDir(), "missing.json")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnvAndDotEnv(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, ".env"),
		[]byte("AUCTION_SERVER_URL=http://from-dotenv:9000\nAUCTION_IDENTITY=/from/dotenv.json\n"), 0o600))
	t.Setenv(app.EnvIdentity, "/from/env.json")
	t.Setenv(app.EnvServerURL, "")
	os.Unsetenv(app.EnvServerURL)

	require.NoError(t, app.LoadEnv(home))
	cfg := app.Config{PinnedKeyFile: "/from/flag.json"}
	cfg.ApplyEnv()

	assert.Equal(t, "http://from-dotenv:9000", cfg.ServerURL)
	assert.Equal(t, "/from/env.json", cfg.IdentityFile, "existing env wins over .env")
	assert.Equal(t, "/from/flag.json", cfg.PinnedKeyFile, "flags win over env")
}

func TestApplyEnvDefaults(t *testing.T) {
	t.Setenv(app.EnvServerURL, "")
	cfg := app.Config{}
	cfg.ApplyEnv()
	assert.Equal(t, app.DefaultServerURL, cfg.ServerURL)
}

func TestDefaultHomeFromEnv(t *testing.T) {
	t.Setenv(app.EnvHome, "/tmp/auction-home")
	h, err := app.DefaultHome()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/auction-home", h)
}
