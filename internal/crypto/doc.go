// Package crypto holds the public-key primitive used by the auction client.
//
// Contents
//
//   - Text <-> integer codec over big-endian UTF-8 bytes (Encode, Decode)
//   - Square-and-multiply modular exponentiation (ModExp)
//   - The raw RSA transform and the domain.Cipher built on it (Transform,
//     Textbook)
//   - Key material providers: the fixed default pair and identity files in
//     JSON or PEM form (FixedProvider, DefaultIdentity, LoadIdentityFile)
//   - Short key fingerprints for display/logging (Fingerprint)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// The transform is textbook RSA: no padding, no hashing before signing, and
// no blinding or constant-time arithmetic. Messages must encode to an integer
// strictly below the modulus. It is deterministic, malleable and only as strong
// as the modulus is large; callers that need real protection should swap in a
// padded domain.Cipher.
package crypto
