package types

import "net/http"

// Envelope is the signed wrapper posted for authenticated actions. Message is
// the exact serialized body the signature was computed over.
type Envelope struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// Request is what the authenticator hands to the transport.
type Request struct {
	Method string
	Path   string
	// Body is the serialized payload; ignored for GET.
	Body []byte
	// Token is the bearer credential; empty means no Authorization header.
	Token string
}

// HasBody reports whether the request should carry Body on the wire.
func (r Request) HasBody() bool { return r.Method != http.MethodGet && r.Body != nil }

// Call describes one outgoing operation and its protection policy.
type Call struct {
	Method string
	Path   string
	// Body is serialized to canonical JSON. Nil sends no body on GET and
	// "{}" otherwise.
	Body any
	// EncryptFields lists top-level string fields replaced by their
	// ciphertext under the server public key.
	EncryptFields []string
	// Signed wraps the serialized body in a signed Envelope.
	Signed bool
	// RequireSession fails the call before dispatch when no token is stored.
	RequireSession bool
}

// Credentials is the register/login payload. Username and Password carry
// decimal ciphertexts once the authenticator has processed the call.
type Credentials struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	PublicKeyE string `json:"public_key_e"`
	PublicKeyN string `json:"public_key_n"`
}

// LoginResponse is the token grant returned by /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ErrorDetail is the structured error body the auction server returns under
// "detail".
type ErrorDetail struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}
