package keys

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"go.uber.org/atomic"

	"auctionauth/internal/crypto"
	"auctionauth/internal/domain"
	"auctionauth/internal/domain/types"
	"auctionauth/internal/logging"
)

var (
	// ErrPinnedKeyMismatch is returned when a pinned model is handed a
	// different server key.
	ErrPinnedKeyMismatch = errors.New("server key does not match pinned key")
)

// Model implements domain.KeyModel.
type Model struct {
	provider domain.KeyMaterialProvider
	state    domain.ClientStateStore
	policy   types.TrustPolicy
	pinned   types.KeyHalf
	log      *slog.Logger

	remote atomic.Pointer[types.KeyHalf]
}

var _ domain.KeyModel = (*Model)(nil)

// Option configures a Model.
type Option func(*Model)

// WithPinnedKey switches the model to the Pinned policy with k as the only
// acceptable server key.
func WithPinnedKey(k types.KeyHalf) Option {
	return func(m *Model) {
		m.policy = types.Pinned
		m.pinned = k
	}
}

// WithLogger sets the model's logger.
func WithLogger(l *slog.Logger) Option { return func(m *Model) { m.log = l } }

// New returns a key model over provider and state. Without options the policy
// is TrustOnFirstUse.
func New(provider domain.KeyMaterialProvider, state domain.ClientStateStore, opts ...Option) *Model {
	m := &Model{
		provider: provider,
		state:    state,
		policy:   types.TrustOnFirstUse,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.policy == types.Pinned {
		k := m.pinned
		m.remote.Store(&k)
	}
	return m
}

// LocalIdentity returns our key pair.
func (m *Model) LocalIdentity() types.KeyPair { return m.provider.KeyPair() }

// Policy returns the trust policy.
func (m *Model) Policy() types.TrustPolicy { return m.policy }

// RemoteKey returns the cached server key: memory first, then the state slot.
func (m *Model) RemoteKey() (types.KeyHalf, bool, error) {
	if p := m.remote.Load(); p != nil {
		return *p, true, nil
	}
	raw, ok, err := m.state.Get(types.SlotServerKey)
	if err != nil || !ok {
		return types.KeyHalf{}, false, err
	}
	var k types.KeyHalf
	if err := json.Unmarshal([]byte(raw), &k); err != nil {
		return types.KeyHalf{}, false, fmt.Errorf("cached server key: %w", err)
	}
	m.remote.Store(&k)
	return k, true, nil
}

// SetRemoteKey caches k in memory and in the state slot. A pinned model only
// accepts its pinned key and stores nothing.
func (m *Model) SetRemoteKey(k types.KeyHalf) error {
	if k.IsZero() {
		return fmt.Errorf("%w: empty server key", types.ErrInvalidKey)
	}
	if m.policy == types.Pinned {
		if !k.Equal(m.pinned) {
			return fmt.Errorf("%w: got %s, pinned %s", ErrPinnedKeyMismatch, crypto.Fingerprint(k), crypto.Fingerprint(m.pinned))
		}
		return nil
	}

	b, err := json.Marshal(k)
	if err != nil {
		return err
	}
	if err := m.state.Set(types.SlotServerKey, string(b)); err != nil {
		return fmt.Errorf("store server key: %w", err)
	}
	m.remote.Store(&k)
	m.log.Info("server key cached", "fingerprint", crypto.Fingerprint(k), "policy", m.policy)
	return nil
}

// ClearRemoteKey drops the cached key so the next call fetches again. It is a
// no-op for a pinned model.
func (m *Model) ClearRemoteKey() error {
	if m.policy == types.Pinned {
		return nil
	}
	m.remote.Store(nil)
	if err := m.state.Delete(types.SlotServerKey); err != nil {
		return fmt.Errorf("clear server key: %w", err)
	}
	return nil
}
