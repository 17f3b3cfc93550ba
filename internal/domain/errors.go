package domain

import "errors"

// Error kinds surfaced to callers of the authenticator. Concrete errors wrap
// these, so check with errors.Is.
var (
	// ErrMessageTooLarge: a plaintext or ciphertext integer is >= the modulus.
	ErrMessageTooLarge = errors.New("message too large for key modulus")
	// ErrDecode: recovered bytes are not valid UTF-8.
	ErrDecode = errors.New("decoded bytes are not valid UTF-8")
	// ErrTransport: the request could not be completed (network, timeout).
	ErrTransport = errors.New("transport failure")
	// ErrAuthenticationRequired: the call needs a session token and none is stored.
	ErrAuthenticationRequired = errors.New("authentication required: no session token, run login first")
	// ErrUnauthorized: the server rejected our credentials or token.
	ErrUnauthorized = errors.New("unauthorized")
)
