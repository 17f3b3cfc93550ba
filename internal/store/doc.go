// Package store provides persistence for the auction client's state slots.
//
// It contains concrete implementations of domain.ClientStateStore:
//   - StateFileStore: one JSON object (state.json) under the client home,
//     written atomically via temp file + rename
//   - MemoryStateStore: process-local, for tests and throwaway sessions
//   - SealedStore: wraps another store and encrypts every value under a
//     passphrase (scrypt + XChaCha20-Poly1305, versioned JSON blob)
//
// All methods are concurrency-safe via internal locking.
package store
