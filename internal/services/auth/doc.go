// Package auth is the request authenticator: every call to the auction server
// goes through Authenticator.Do, which applies the call's protection policy
// before handing the bytes to the transport.
//
// Per call the authenticator walks four states, logged at debug level:
//
//	NEED_KEY    make sure the server public key is known; an empty cache
//	            triggers one unauthenticated GET /auth/public-key, shared by
//	            every goroutine waiting on it
//	KEY_READY   serialize the body as canonical JSON (compact, sorted keys,
//	            no HTML escaping)
//	SIGNING     replace each listed field with its ciphertext under the server
//	            key, then wrap the body in a signed {message, signature}
//	            envelope if the call is signed
//	DISPATCHED  attach the bearer token if one is stored and send
//
// A call that requires a session fails with domain.ErrAuthenticationRequired
// before any of this when no token is stored. A failed key fetch aborts the
// call and caches nothing. Responses are returned as received; nothing on the
// way back is decrypted or verified.
package auth
