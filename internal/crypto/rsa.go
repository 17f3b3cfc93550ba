package crypto

import (
	"errors"
	"fmt"
	"math/big"

	"auctionauth/internal/domain"
	"auctionauth/internal/domain/types"
)

// ErrBadSignature is returned by Verify when the signature does not recover
// the message.
var ErrBadSignature = errors.New("signature does not match message")

// ErrNegativeValue is returned by DecryptValue for a missing or negative
// ciphertext.
var ErrNegativeValue = errors.New("ciphertext must be a non-negative integer")

// Transform applies one key half: v^e mod n.
func Transform(v *big.Int, k types.KeyHalf) *big.Int {
	return ModExp(v, k.Exponent(), k.Modulus())
}

// Textbook is the unpadded RSA cipher. The zero value is ready to use.
type Textbook struct{}

var _ domain.Cipher = Textbook{}

// EncryptText encodes text and transforms it under key. It fails with
// domain.ErrMessageTooLarge when the encoding is not below the modulus.
func (Textbook) EncryptText(text string, key types.KeyHalf) (*big.Int, error) {
	m := Encode(text)
	if err := checkRange(m, key); err != nil {
		return nil, err
	}
	c := Transform(m, key)
	m.SetInt64(0)
	return c, nil
}

// DecryptValue transforms c under key and decodes the result as text. The
// range check runs before any arithmetic.
func (Textbook) DecryptValue(c *big.Int, key types.KeyHalf) (string, error) {
	if c == nil || c.Sign() < 0 {
		return "", ErrNegativeValue
	}
	if err := checkRange(c, key); err != nil {
		return "", err
	}
	return Decode(Transform(c, key))
}

// Sign transforms the exact body bytes under the private half. Nothing is
// hashed, so the body must encode below the modulus.
func (t Textbook) Sign(body string, private types.KeyHalf) (*big.Int, error) {
	return t.EncryptText(body, private)
}

// Verify checks that sig recovers body under the public half.
func (Textbook) Verify(body string, sig *big.Int, public types.KeyHalf) error {
	if public.IsZero() {
		return fmt.Errorf("%w: missing public key", types.ErrInvalidKey)
	}
	if sig == nil || sig.Sign() < 0 || sig.Cmp(public.Modulus()) >= 0 {
		return fmt.Errorf("%w: signature out of range", ErrBadSignature)
	}
	if Transform(sig, public).Cmp(Encode(body)) != 0 {
		return ErrBadSignature
	}
	return nil
}

func checkRange(v *big.Int, key types.KeyHalf) error {
	if key.IsZero() {
		return fmt.Errorf("%w: missing key", types.ErrInvalidKey)
	}
	n := key.Modulus()
	if v.Cmp(n) >= 0 {
		return fmt.Errorf("%w: value is %d bits, modulus is %d bits", domain.ErrMessageTooLarge, v.BitLen(), n.BitLen())
	}
	return nil
}
