package types

// Username identifies an account on the auction server.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// StateSlot names a value held by the client state store.
type StateSlot string

const (
	// SlotServerKey holds the JSON-encoded server public key {e, n}.
	SlotServerKey StateSlot = "serverKey"
	// SlotToken holds the opaque bearer session token.
	SlotToken StateSlot = "token"
)

// String returns the slot name.
func (s StateSlot) String() string { return string(s) }

// TrustPolicy decides where the remote public key comes from.
type TrustPolicy int

const (
	// TrustOnFirstUse accepts the first key served by the key endpoint and
	// caches it. The first fetch is unauthenticated.
	TrustOnFirstUse TrustPolicy = iota
	// Pinned uses a key shipped with the client and never fetches.
	Pinned
)

// String returns the policy name used in logs and CLI output.
func (p TrustPolicy) String() string {
	switch p {
	case TrustOnFirstUse:
		return "trust-on-first-use"
	case Pinned:
		return "pinned"
	default:
		return "unknown"
	}
}
