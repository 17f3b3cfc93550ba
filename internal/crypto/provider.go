package crypto

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/sauerbraten/jsonfile"

	"auctionauth/internal/domain"
	"auctionauth/internal/domain/types"
)

// The built-in identity every client shares unless an identity file is
// configured. The modulus is 40 bits (562357 * 983141), so only a few bytes
// can be signed with it.
const (
	defaultModulus         = "552876223337"
	defaultPublicExponent  = "73191337793"
	defaultPrivateExponent = "65537"
)

// FixedProvider hands out one key pair for the lifetime of the process.
type FixedProvider struct {
	pair types.KeyPair
}

var _ domain.KeyMaterialProvider = (*FixedProvider)(nil)

// NewFixedProvider wraps pair.
func NewFixedProvider(pair types.KeyPair) *FixedProvider {
	return &FixedProvider{pair: pair}
}

// KeyPair returns the configured pair.
func (p *FixedProvider) KeyPair() types.KeyPair { return p.pair }

// DefaultIdentity returns the built-in key pair.
func DefaultIdentity() types.KeyPair {
	n, _ := new(big.Int).SetString(defaultModulus, 10)
	e, _ := new(big.Int).SetString(defaultPublicExponent, 10)
	d, _ := new(big.Int).SetString(defaultPrivateExponent, 10)
	return types.KeyPair{
		Public:  types.MustKeyHalf(e, n),
		Private: types.MustKeyHalf(d, n),
	}
}

// NewFileProvider loads an identity file once and serves it.
func NewFileProvider(path string) (*FixedProvider, error) {
	pair, err := LoadIdentityFile(path)
	if err != nil {
		return nil, err
	}
	return NewFixedProvider(pair), nil
}

// LoadIdentityFile reads a key pair from path. PEM files may hold a PKCS#1
// or PKCS#8 RSA private key; anything else is parsed as JSON of the form
// {"public": {"e", "n"}, "private": {"e", "n"}}, with // comments allowed.
func LoadIdentityFile(path string) (types.KeyPair, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.KeyPair{}, err
	}
	if bytes.Contains(raw, []byte("-----BEGIN")) {
		return parsePEMIdentity(raw)
	}
	Wipe(raw)

	var file types.KeyPair
	if err := jsonfile.ParseFile(path, &file); err != nil {
		return types.KeyPair{}, fmt.Errorf("parse identity %s: %w", path, err)
	}
	return types.NewKeyPair(file.Public, file.Private)
}

// KeyPairFromRSA converts an RSA private key into public (e, n) and private
// (d, n) halves.
func KeyPairFromRSA(key *rsa.PrivateKey) (types.KeyPair, error) {
	pub, err := types.NewKeyHalf(big.NewInt(int64(key.E)), key.N)
	if err != nil {
		return types.KeyPair{}, err
	}
	priv, err := types.NewKeyHalf(key.D, key.N)
	if err != nil {
		return types.KeyPair{}, err
	}
	return types.NewKeyPair(pub, priv)
}

func parsePEMIdentity(raw []byte) (types.KeyPair, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return types.KeyPair{}, errors.New("identity: no PEM block found")
	}
	defer Wipe(block.Bytes)

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return KeyPairFromRSA(key)
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return types.KeyPair{}, fmt.Errorf("identity: %s is neither PKCS#1 nor PKCS#8: %w", block.Type, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return types.KeyPair{}, fmt.Errorf("identity: PKCS#8 key is %T, want RSA", parsed)
	}
	return KeyPairFromRSA(key)
}
