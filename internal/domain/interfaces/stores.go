package interfaces

import domaintypes "auctionauth/internal/domain/types"

// ClientStateStore persists the few named values the client keeps between
// runs (server key, session token).
type ClientStateStore interface {
	// Get returns the value for slot and whether it was present.
	Get(slot domaintypes.StateSlot) (string, bool, error)
	Set(slot domaintypes.StateSlot, value string) error
	// Delete removes slot; deleting an absent slot is not an error.
	Delete(slot domaintypes.StateSlot) error
}

// KeyMaterialProvider supplies the process's own key pair.
type KeyMaterialProvider interface {
	KeyPair() domaintypes.KeyPair
}
