// Package keys holds the client's key model: our own key pair and the
// auction server's public key.
//
// The local pair comes from an injected domain.KeyMaterialProvider and never
// changes for the life of the process. The server key is cached in memory and
// in the "serverKey" slot of the client state store, so a key learned by one
// CLI invocation is reused by the next.
//
// Where the server key comes from is an explicit trust policy:
//   - TrustOnFirstUse (default): the first key served by /auth/public-key is
//     accepted and cached. That first fetch is unauthenticated; whoever
//     answers it controls every later encryption.
//   - Pinned: the key is supplied at construction (for example from a file
//     shipped with the client) and nothing is ever fetched.
package keys
