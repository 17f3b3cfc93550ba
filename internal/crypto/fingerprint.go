package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"auctionauth/internal/domain/types"
)

// Fingerprint returns a short hex fingerprint of a key half.
//
// It hashes "e:n" in decimal with SHA-256 and truncates to 10 bytes (20 hex
// chars).
func Fingerprint(k types.KeyHalf) types.Fingerprint {
	sum := sha256.Sum256([]byte(k.String()))
	return types.Fingerprint(hex.EncodeToString(sum[:10]))
}
