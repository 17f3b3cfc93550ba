package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"auctionauth/internal/crypto"
	"auctionauth/internal/domain"
)

const (
	// The current supported version of the sealed value format.
	sealFormatVersion = 1
	saltBytes         = 16
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or a
	// sealed value has been modified / corrupted.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted state")
	// ErrWeakPassphrase rejects an empty passphrase.
	ErrWeakPassphrase = errors.New("passphrase must not be empty")
)

// sealed is the JSON structure stored in place of each plaintext value.
type sealed struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

type scryptParams struct{ N, r, p int }

// Tunables for scrypt key derivation.
func scryptParamsDefault() scryptParams { return scryptParams{N: 1 << 15, r: 8, p: 1} }

// SealOption tunes a SealedStore.
type SealOption func(*SealedStore)

// WithScryptParams overrides the KDF cost for newly sealed values. Values
// already stored keep the parameters recorded alongside them.
func WithScryptParams(N, r, p int) SealOption {
	return func(s *SealedStore) { s.params = scryptParams{N: N, r: r, p: p} }
}

// SealedStore encrypts every value before handing it to an inner store. The
// key is derived from a passphrase with scrypt and values are sealed with
// XChaCha20-Poly1305, bound to their slot name.
type SealedStore struct {
	inner      domain.ClientStateStore
	passphrase []byte
	params     scryptParams

	mu   sync.Mutex
	salt []byte
	keys map[string][]byte // salt -> derived key
}

var _ domain.ClientStateStore = (*SealedStore)(nil)

// NewSealedStore wraps inner. The passphrase must not be empty.
func NewSealedStore(inner domain.ClientStateStore, passphrase string, opts ...SealOption) (*SealedStore, error) {
	if passphrase == "" {
		return nil, ErrWeakPassphrase
	}
	s := &SealedStore{
		inner:      inner,
		passphrase: []byte(passphrase),
		params:     scryptParamsDefault(),
		keys:       make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *SealedStore) Get(slot domain.StateSlot) (string, bool, error) {
	raw, ok, err := s.inner.Get(slot)
	if err != nil || !ok {
		return "", ok, err
	}
	pt, err := s.open(slot, raw)
	if err != nil {
		return "", false, fmt.Errorf("open %s: %w", slot, err)
	}
	return pt, true, nil
}

func (s *SealedStore) Set(slot domain.StateSlot, value string) error {
	blob, err := s.seal(slot, value)
	if err != nil {
		return fmt.Errorf("seal %s: %w", slot, err)
	}
	return s.inner.Set(slot, blob)
}

func (s *SealedStore) Delete(slot domain.StateSlot) error { return s.inner.Delete(slot) }

// Close wipes the passphrase and cached keys. The store is unusable afterwards.
func (s *SealedStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	crypto.Wipe(s.passphrase)
	for k, key := range s.keys {
		crypto.Wipe(key)
		delete(s.keys, k)
	}
	s.passphrase = nil
}

func (s *SealedStore) seal(slot domain.StateSlot, value string) (string, error) {
	s.mu.Lock()
	if s.salt == nil {
		salt := make([]byte, saltBytes)
		if _, err := rand.Read(salt); err != nil {
			s.mu.Unlock()
			return "", err
		}
		s.salt = salt
	}
	salt := s.salt
	params := s.params
	key, err := s.keyLocked(salt, params)
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	pt := []byte(value)
	ct := aead.Seal(nil, nonce, pt, []byte(slot))
	crypto.Wipe(pt)

	b, err := json.Marshal(sealed{
		V:      sealFormatVersion,
		Salt:   salt,
		N:      params.N,
		R:      params.r,
		P:      params.p,
		Nonce:  nonce,
		Cipher: ct,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *SealedStore) open(slot domain.StateSlot, raw string) (string, error) {
	var bl sealed
	if err := json.Unmarshal([]byte(raw), &bl); err != nil {
		return "", ErrWrongPassphrase
	}
	if bl.V > sealFormatVersion {
		return "", fmt.Errorf("unsupported sealed format version %d", bl.V)
	}

	s.mu.Lock()
	key, err := s.keyLocked(bl.Salt, scryptParams{N: bl.N, r: bl.R, p: bl.P})
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", err
	}
	if len(bl.Nonce) != aead.NonceSize() {
		return "", ErrWrongPassphrase
	}
	pt, err := aead.Open(nil, bl.Nonce, bl.Cipher, []byte(slot))
	if err != nil {
		return "", ErrWrongPassphrase
	}
	defer crypto.Wipe(pt)
	return string(pt), nil
}

// keyLocked derives (or reuses) the key for salt. Caller holds s.mu.
func (s *SealedStore) keyLocked(salt []byte, p scryptParams) ([]byte, error) {
	if s.passphrase == nil {
		return nil, errors.New("sealed store closed")
	}
	id := fmt.Sprintf("%x/%d/%d/%d", salt, p.N, p.r, p.p)
	if key, ok := s.keys[id]; ok {
		return key, nil
	}
	key, err := scrypt.Key(s.passphrase, salt, p.N, p.r, p.p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	s.keys[id] = key
	return key, nil
}
