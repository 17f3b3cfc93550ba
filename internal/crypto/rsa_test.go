package crypto_test

import (
	"crypto/rand"
	"crypto/rsa"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctionauth/internal/crypto"
	"auctionauth/internal/domain"
	"auctionauth/internal/domain/types"
)

func generatePair(t *testing.T, bits int) types.KeyPair {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, bits)
	require.NoError(t, err)
	pair, err := crypto.KeyPairFromRSA(key)
	require.NoError(t, err)
	return pair
}

func TestDefaultIdentityRoundTrip(t *testing.T) {
	id := crypto.DefaultIdentity()
	var c crypto.Textbook

	ct, err := c.EncryptText("hi", id.Public)
	require.NoError(t, err)
	assert.Equal(t, "518728529526", ct.String())

	pt, err := c.DecryptValue(ct, id.Private)
	require.NoError(t, err)
	assert.Equal(t, "hi", pt)
}

func TestDefaultIdentitySignature(t *testing.T) {
	id := crypto.DefaultIdentity()
	var c crypto.Textbook

	sig, err := c.Sign("hi", id.Private)
	require.NoError(t, err)
	assert.Equal(t, "207510631238", sig.String())
	require.NoError(t, c.Verify("hi", sig, id.Public))
}

func TestDefaultIdentityRejectsLongBodies(t *testing.T) {
	_, err := crypto.Textbook{}.Sign(`{"amount":5}`, crypto.DefaultIdentity().Private)
	require.ErrorIs(t, err, domain.ErrMessageTooLarge)
}

func TestEncryptDecryptInverse(t *testing.T) {
	pair := generatePair(t, 1024)
	var c crypto.Textbook
	for _, s := range []string{"", "alice", "correct horse battery staple", "пароль", `{"auction_id":3,"price":12.5}`} {
		ct, err := c.EncryptText(s, pair.Public)
		require.NoError(t, err)
		pt, err := c.DecryptValue(ct, pair.Private)
		require.NoError(t, err)
		assert.Equal(t, s, pt)
	}
}

func TestEncryptRangeBoundary(t *testing.T) {
	m := crypto.Encode("hi") // 26729
	var c crypto.Textbook

	above := types.MustKeyHalf(big.NewInt(3), new(big.Int).Add(m, big.NewInt(1)))
	_, err := c.EncryptText("hi", above)
	require.NoError(t, err, "value n-1 must be accepted")

	equal := types.MustKeyHalf(big.NewInt(3), m)
	_, err = c.EncryptText("hi", equal)
	require.ErrorIs(t, err, domain.ErrMessageTooLarge)
}

func TestDecryptRejectsOutOfRangeCiphertext(t *testing.T) {
	id := crypto.DefaultIdentity()
	n := id.Private.Modulus()

	for _, c := range []*big.Int{n, new(big.Int).Add(n, big.NewInt(12345)), new(big.Int).Lsh(n, 64)} {
		_, err := crypto.Textbook{}.DecryptValue(c, id.Private)
		require.ErrorIs(t, err, domain.ErrMessageTooLarge)
	}
	// n plus a valid ciphertext is reported, not reduced mod n.
	_, err := crypto.Textbook{}.DecryptValue(new(big.Int).Add(n, big.NewInt(518728529526)), id.Private)
	require.ErrorIs(t, err, domain.ErrMessageTooLarge)
}

func TestDecryptRejectsNegativeCiphertext(t *testing.T) {
	id := crypto.DefaultIdentity()
	for _, c := range []*big.Int{nil, big.NewInt(-1)} {
		_, err := crypto.Textbook{}.DecryptValue(c, id.Private)
		require.ErrorIs(t, err, crypto.ErrNegativeValue)
		assert.NotErrorIs(t, err, domain.ErrDecode)
	}
}

func TestSignVerifyInverse(t *testing.T) {
	pair := generatePair(t, 1024)
	var c crypto.Textbook
	body := `{"auction_id":7,"price":100}`

	sig, err := c.Sign(body, pair.Private)
	require.NoError(t, err)
	require.NoError(t, c.Verify(body, sig, pair.Public))

	require.ErrorIs(t, c.Verify(`{"auction_id":7,"price":1000}`, sig, pair.Public), crypto.ErrBadSignature)
	require.ErrorIs(t, c.Verify(body, new(big.Int).Add(sig, big.NewInt(1)), pair.Public), crypto.ErrBadSignature)
	require.ErrorIs(t, c.Verify(body, pair.Public.Modulus(), pair.Public), crypto.ErrBadSignature)
}

func TestTransformIsDeterministic(t *testing.T) {
	id := crypto.DefaultIdentity()
	a := crypto.Transform(big.NewInt(42), id.Public)
	b := crypto.Transform(big.NewInt(42), id.Public)
	assert.Zero(t, a.Cmp(b))
}
