package crypto_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctionauth/internal/crypto"
)

func TestDefaultIdentityShape(t *testing.T) {
	id := crypto.DefaultIdentity()
	assert.Equal(t, "552876223337", id.Public.Modulus().String())
	assert.Equal(t, "73191337793", id.Public.Exponent().String())
	assert.Equal(t, "65537", id.Private.Exponent().String())
	assert.Equal(t, id, crypto.NewFixedProvider(id).KeyPair())
}

func TestLoadIdentityFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")
	body := `{
	// test identity
	"public":  {"e": "73191337793", "n": 552876223337},
	"private": {"e": 65537, "n": "552876223337"}
}
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	p, err := crypto.NewFileProvider(path)
	require.NoError(t, err)
	assert.True(t, p.KeyPair().Public.Equal(crypto.DefaultIdentity().Public))
	assert.True(t, p.KeyPair().Private.Equal(crypto.DefaultIdentity().Private))
}

func TestLoadIdentityFileRejectsMismatchedModulus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")
	body := `{"public": {"e": "3", "n": "55"}, "private": {"e": "27", "n": "57"}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	_, err := crypto.LoadIdentityFile(path)
	require.Error(t, err)
}

func TestLoadIdentityFilePEM(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	dir := t.TempDir()

	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	files := map[string]*pem.Block{
		"pkcs1.pem": {Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)},
		"pkcs8.pem": {Type: "PRIVATE KEY", Bytes: pkcs8},
	}
	for name, block := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))

		pair, err := crypto.LoadIdentityFile(path)
		require.NoError(t, err, name)
		assert.Zero(t, pair.Public.Modulus().Cmp(key.N), name)
		assert.Zero(t, pair.Private.Exponent().Cmp(key.D), name)
		assert.Equal(t, int64(key.E), pair.Public.Exponent().Int64(), name)
	}
}

func TestLoadIdentityFileMissing(t *testing.T) {
	_, err := crypto.LoadIdentityFile(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFingerprintStable(t *testing.T) {
	id := crypto.DefaultIdentity()
	fp := crypto.Fingerprint(id.Public)
	assert.Len(t, fp.String(), 20)
	assert.Equal(t, fp, crypto.Fingerprint(id.Public))
	assert.NotEqual(t, fp, crypto.Fingerprint(id.Private))
}
