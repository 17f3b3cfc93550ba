package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/singleflight"

	"auctionauth/internal/crypto"
	"auctionauth/internal/domain"
	"auctionauth/internal/domain/types"
	"auctionauth/internal/logging"
	"auctionauth/internal/services/keys"
)

// PublicKeyPath is the server's key endpoint.
const PublicKeyPath = "/auth/public-key"

// State is a step of the per-call protocol.
type State string

const (
	StateNeedKey    State = "NEED_KEY"
	StateKeyReady   State = "KEY_READY"
	StateSigning    State = "SIGNING"
	StateDispatched State = "DISPATCHED"
)

// Authenticator implements domain.Authenticator.
type Authenticator struct {
	keys      domain.KeyModel
	cipher    domain.Cipher
	transport domain.Transport
	state     domain.ClientStateStore
	log       *slog.Logger
	keyPath   string

	fetches singleflight.Group
}

var _ domain.Authenticator = (*Authenticator)(nil)

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithLogger sets the logger for state transitions and key fetches.
func WithLogger(l *slog.Logger) Option { return func(a *Authenticator) { a.log = l } }

// WithKeyPath overrides PublicKeyPath.
func WithKeyPath(p string) Option { return func(a *Authenticator) { a.keyPath = p } }

// New wires an authenticator. The state store holds the session token; the
// key model owns the server key slot.
func New(
	km domain.KeyModel,
	cipher domain.Cipher,
	transport domain.Transport,
	state domain.ClientStateStore,
	opts ...Option,
) *Authenticator {
	a := &Authenticator{
		keys:      km,
		cipher:    cipher,
		transport: transport,
		state:     state,
		log:       logging.Discard(),
		keyPath:   PublicKeyPath,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Do protects and dispatches call and returns the raw response body.
func (a *Authenticator) Do(ctx context.Context, call types.Call) ([]byte, error) {
	log := a.log.With("method", call.Method, "path", call.Path)

	token, hasToken, err := a.Token()
	if err != nil {
		return nil, err
	}
	if call.RequireSession && !hasToken {
		return nil, fmt.Errorf("%s %s: %w", call.Method, call.Path, domain.ErrAuthenticationRequired)
	}

	log.Debug("auth state", "state", StateNeedKey)
	remote, err := a.ServerKey(ctx)
	if err != nil {
		return nil, err
	}

	log.Debug("auth state", "state", StateKeyReady)
	body, err := a.prepare(log, call, remote)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", call.Method, call.Path, err)
	}

	out, err := a.transport.Send(ctx, types.Request{
		Method: call.Method,
		Path:   call.Path,
		Body:   body,
		Token:  token,
	})
	log.Debug("auth state", "state", StateDispatched, "bearer", hasToken, "ok", err == nil)
	return out, err
}

// prepare serializes the body, encrypts the listed fields and signs.
func (a *Authenticator) prepare(log *slog.Logger, call types.Call, remote types.KeyHalf) ([]byte, error) {
	if call.Method == http.MethodGet {
		if call.Signed || len(call.EncryptFields) > 0 {
			return nil, errors.New("GET calls carry no body to encrypt or sign")
		}
		return nil, nil
	}
	if call.Body == nil {
		if call.Signed || len(call.EncryptFields) > 0 {
			return nil, errors.New("protected call has no body")
		}
		return []byte("{}"), nil
	}

	generic, err := toGeneric(call.Body)
	if err != nil {
		return nil, err
	}

	if len(call.EncryptFields) > 0 || call.Signed {
		log.Debug("auth state", "state", StateSigning, "encrypted_fields", len(call.EncryptFields), "signed", call.Signed)
	}
	if len(call.EncryptFields) > 0 {
		obj, ok := generic.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("encrypted fields need a JSON object body, got %T", generic)
		}
		for _, field := range call.EncryptFields {
			v, ok := obj[field].(string)
			if !ok {
				return nil, fmt.Errorf("field %q is missing or not a string", field)
			}
			c, err := a.cipher.EncryptText(v, remote)
			if err != nil {
				return nil, fmt.Errorf("encrypt field %q: %w", field, err)
			}
			obj[field] = c.String()
		}
	}

	serialized, err := marshal(generic)
	if err != nil {
		return nil, err
	}
	if !call.Signed {
		return serialized, nil
	}

	sig, err := a.cipher.Sign(string(serialized), a.keys.LocalIdentity().Private)
	if err != nil {
		return nil, fmt.Errorf("sign body: %w", err)
	}
	return marshal(types.Envelope{Message: string(serialized), Signature: sig.String()})
}

// ServerKey returns the cached server key, fetching it once if the cache is
// empty. Concurrent callers share a single fetch.
func (a *Authenticator) ServerKey(ctx context.Context) (types.KeyHalf, error) {
	if k, ok, err := a.keys.RemoteKey(); err != nil || ok {
		return k, err
	}
	ch := a.fetches.DoChan("server-key", func() (any, error) {
		if k, ok, err := a.keys.RemoteKey(); err != nil || ok {
			return k, err
		}
		// Shared by every waiter, so no single caller may cancel it. The
		// transport timeout still bounds the request.
		return a.fetchServerKey(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return types.KeyHalf{}, fmt.Errorf("fetch server key: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return types.KeyHalf{}, res.Err
		}
		return res.Val.(types.KeyHalf), nil
	}
}

// RefreshServerKey drops the cached key and fetches it again. Under the
// Pinned policy it returns the pinned key without any request.
func (a *Authenticator) RefreshServerKey(ctx context.Context) (types.KeyHalf, error) {
	if err := a.keys.ClearRemoteKey(); err != nil {
		return types.KeyHalf{}, err
	}
	return a.ServerKey(ctx)
}

func (a *Authenticator) fetchServerKey(ctx context.Context) (types.KeyHalf, error) {
	body, err := a.transport.Send(ctx, types.Request{Method: http.MethodGet, Path: a.keyPath})
	if err != nil {
		return types.KeyHalf{}, fmt.Errorf("fetch server key: %w", err)
	}
	k, err := keys.ParseServerKey(body)
	if err != nil {
		return types.KeyHalf{}, fmt.Errorf("fetch server key: %w", err)
	}
	if err := a.keys.SetRemoteKey(k); err != nil {
		return types.KeyHalf{}, err
	}
	a.log.Info("fetched server key", "fingerprint", crypto.Fingerprint(k), "bits", k.Modulus().BitLen(), "policy", a.keys.Policy())
	return k, nil
}

// LocalIdentity returns our key pair.
func (a *Authenticator) LocalIdentity() types.KeyPair { return a.keys.LocalIdentity() }

// Token returns the stored session token. An empty value counts as absent.
func (a *Authenticator) Token() (string, bool, error) {
	tok, ok, err := a.state.Get(types.SlotToken)
	if err != nil {
		return "", false, fmt.Errorf("read session token: %w", err)
	}
	if !ok || tok == "" {
		return "", false, nil
	}
	return tok, true, nil
}

// SetToken stores the session token.
func (a *Authenticator) SetToken(token string) error {
	if token == "" {
		return errors.New("empty session token")
	}
	return a.state.Set(types.SlotToken, token)
}

// ClearToken forgets the session token.
func (a *Authenticator) ClearToken() error { return a.state.Delete(types.SlotToken) }
