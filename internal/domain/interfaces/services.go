package interfaces

import (
	"context"
	"math/big"

	domaintypes "auctionauth/internal/domain/types"
)

// Cipher is the public-key transform used for field encryption and request
// signing. Implementations may add padding; callers only see integers.
type Cipher interface {
	EncryptText(text string, key domaintypes.KeyHalf) (*big.Int, error)
	DecryptValue(cipher *big.Int, key domaintypes.KeyHalf) (string, error)
	Sign(body string, private domaintypes.KeyHalf) (*big.Int, error)
	Verify(body string, signature *big.Int, public domaintypes.KeyHalf) error
}

// KeyModel holds our own key pair and the cached server public key.
type KeyModel interface {
	LocalIdentity() domaintypes.KeyPair
	// RemoteKey is a pure cache read; it never reaches the network.
	RemoteKey() (domaintypes.KeyHalf, bool, error)
	SetRemoteKey(key domaintypes.KeyHalf) error
	ClearRemoteKey() error
	Policy() domaintypes.TrustPolicy
}

// Authenticator protects and dispatches calls to the auction server.
type Authenticator interface {
	Do(ctx context.Context, call domaintypes.Call) ([]byte, error)
	ServerKey(ctx context.Context) (domaintypes.KeyHalf, error)
	RefreshServerKey(ctx context.Context) (domaintypes.KeyHalf, error)
	LocalIdentity() domaintypes.KeyPair

	Token() (string, bool, error)
	SetToken(token string) error
	ClearToken() error
}
