package keys_test

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctionauth/internal/crypto"
	"auctionauth/internal/domain"
	"auctionauth/internal/domain/types"
	"auctionauth/internal/services/keys"
	"auctionauth/internal/store"
)

var serverKey = types.MustKeyHalf(big.NewInt(65537), big.NewInt(3233*1000003))

func newModel(t *testing.T, st domain.ClientStateStore, opts ...keys.Option) *keys.Model {
	t.Helper()
	return keys.New(crypto.NewFixedProvider(crypto.DefaultIdentity()), st, opts...)
}

func TestLocalIdentityComesFromProvider(t *testing.T) {
	m := newModel(t, store.NewMemoryStateStore())
	assert.Equal(t, crypto.DefaultIdentity(), m.LocalIdentity())
	assert.Equal(t, types.TrustOnFirstUse, m.Policy())
}

func TestRemoteKeyLifecycle(t *testing.T) {
	st := store.NewMemoryStateStore()
	m := newModel(t, st)

	_, ok, err := m.RemoteKey()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.SetRemoteKey(serverKey))
	got, ok, err := m.RemoteKey()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(serverKey))

	raw, ok, _ := st.Get(types.SlotServerKey)
	require.True(t, ok)
	assert.JSONEq(t, `{"e":"65537","n":"3233009699"}`, raw)

	require.NoError(t, m.ClearRemoteKey())
	_, ok, err = m.RemoteKey()
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, _ = st.Get(types.SlotServerKey)
	assert.False(t, ok)
}

func TestRemoteKeyReadsSlotFromEarlierRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, newModel(t, store.NewStateFileStore(dir)).SetRemoteKey(serverKey))

	got, ok, err := newModel(t, store.NewStateFileStore(dir)).RemoteKey()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(serverKey))
}

func TestRemoteKeyCorruptSlot(t *testing.T) {
	st := store.NewMemoryStateStore()
	require.NoError(t, st.Set(types.SlotServerKey, `{"e":"x"}`))
	_, _, err := newModel(t, st).RemoteKey()
	require.Error(t, err)
}

func TestSetRemoteKeyRejectsEmpty(t *testing.T) {
	err := newModel(t, store.NewMemoryStateStore()).SetRemoteKey(types.KeyHalf{})
	require.ErrorIs(t, err, types.ErrInvalidKey)
}

func TestPinnedPolicy(t *testing.T) {
	st := store.NewMemoryStateStore()
	m := newModel(t, st, keys.WithPinnedKey(serverKey))
	assert.Equal(t, types.Pinned, m.Policy())

	got, ok, err := m.RemoteKey()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(serverKey))

	other := types.MustKeyHalf(big.NewInt(3), big.NewInt(3233))
	require.ErrorIs(t, m.SetRemoteKey(other), keys.ErrPinnedKeyMismatch)
	require.NoError(t, m.SetRemoteKey(serverKey))

	require.NoError(t, m.ClearRemoteKey())
	got, ok, _ = m.RemoteKey()
	assert.True(t, ok)
	assert.True(t, got.Equal(serverKey))

	_, stored, _ := st.Get(types.SlotServerKey)
	assert.False(t, stored, "pinned model never writes the slot")
}

func TestParseServerKeyShapes(t *testing.T) {
	cases := map[string]string{
		"nested object":   `{"message": {"e": 65537, "n": 3233009699}}`,
		"nested string":   `{"message": "{\"e\": 65537, \"n\": 3233009699}", "signature": "1"}`,
		"bare":            `{"e": 65537, "n": 3233009699}`,
		"decimal strings": `{"message": {"e": "65537", "n": "3233009699"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			k, err := keys.ParseServerKey([]byte(body))
			require.NoError(t, err)
			assert.True(t, k.Equal(serverKey))
		})
	}
}

func TestParseServerKeyRejects(t *testing.T) {
	for _, body := range []string{`not json`, `{"message": "OK"}`, `{"e": 3}`, `{"e": 3, "n": 1}`, `{}`} {
		_, err := keys.ParseServerKey([]byte(body))
		assert.Error(t, err, body)
	}
}

func TestLoadPinnedKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte("// pinned auction server key\n{\"e\": \"65537\", \"n\": \"3233009699\"}\n"), 0o600))

	k, err := keys.LoadPinnedKey(path)
	require.NoError(t, err)
	assert.True(t, k.Equal(serverKey))
}
