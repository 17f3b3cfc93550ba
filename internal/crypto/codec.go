package crypto

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	"auctionauth/internal/domain"
)

// Encode maps text to the non-negative integer whose big-endian bytes are the
// UTF-8 encoding of text. The empty string encodes to zero.
func Encode(text string) *big.Int {
	return new(big.Int).SetBytes([]byte(text))
}

// Decode is the inverse of Encode. Zero decodes to the empty string.
//
// Leading NUL characters do not survive a round trip: the integer has no
// leading zero bytes to carry them.
func Decode(v *big.Int) (string, error) {
	if v == nil || v.Sign() < 0 {
		return "", fmt.Errorf("%w: negative or missing value", domain.ErrDecode)
	}
	b := v.Bytes()
	if !utf8.Valid(b) {
		Wipe(b)
		return "", fmt.Errorf("%w: %d bytes", domain.ErrDecode, len(b))
	}
	return string(b), nil
}
