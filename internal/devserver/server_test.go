package devserver

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"auctionauth/internal/crypto"
	"auctionauth/internal/domain/types"
	"auctionauth/internal/services/auth"
)

var (
	keysOnce             sync.Once
	serverPair, userPair types.KeyPair
)

func testKeys(t *testing.T) (server, client types.KeyPair) {
	t.Helper()
	keysOnce.Do(func() {
		gen := func() types.KeyPair {
			k, err := rsa.GenerateKey(rand.Reader, 2048)
			if err != nil {
				panic(err)
			}
			pair, err := crypto.KeyPairFromRSA(k)
			if err != nil {
				panic(err)
			}
			return pair
		}
		serverPair, userPair = gen(), gen()
	})
	return serverPair, userPair
}

type harness struct {
	ts     *httptest.Server
	clock  *atomic.Int64
	server types.KeyPair
	user   types.KeyPair
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	server, client := testKeys(t)
	clock := atomic.NewInt64(1_760_000_000)
	srv, err := New(&Config{
		Key:         server,
		TokenSecret: []byte("test-secret"),
		Now:         func() time.Time { return time.Unix(clock.Load(), 0) },
	})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &harness{ts: ts, clock: clock, server: server, user: client}
}

func (h *harness) advance(d time.Duration) { h.clock.Add(int64(d / time.Second)) }

func (h *harness) now() int64 { return h.clock.Load() }

func (h *harness) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, h.ts.URL+path, rd)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (h *harness) credentials(t *testing.T, name, password string) types.Credentials {
	t.Helper()
	enc := func(s string) string {
		c, err := crypto.Textbook{}.EncryptText(s, h.server.Public)
		require.NoError(t, err)
		return c.String()
	}
	return types.Credentials{
		Username:   enc(name),
		Password:   enc(password),
		PublicKeyE: h.user.Public.Exponent().String(),
		PublicKeyN: h.user.Public.Modulus().String(),
	}
}

// signup registers and logs in, returning the session token.
func (h *harness) signup(t *testing.T, name string) string {
	t.Helper()
	status, body := h.do(t, http.MethodPost, "/auth/register", "", h.credentials(t, name, "hunter22"))
	require.Equal(t, http.StatusOK, status, string(body))
	status, body = h.do(t, http.MethodPost, "/auth/login", "", h.credentials(t, name, "hunter22"))
	require.Equal(t, http.StatusOK, status, string(body))
	var grant types.LoginResponse
	require.NoError(t, json.Unmarshal(body, &grant))
	require.NotEmpty(t, grant.AccessToken)
	return grant.AccessToken
}

func (h *harness) envelope(t *testing.T, body any) types.Envelope {
	t.Helper()
	msg, err := auth.Canonical(body)
	require.NoError(t, err)
	sig, err := crypto.Textbook{}.Sign(string(msg), h.user.Private)
	require.NoError(t, err)
	return types.Envelope{Message: string(msg), Signature: sig.String()}
}

func (h *harness) signed(t *testing.T, path, token string, body any) (int, []byte) {
	t.Helper()
	return h.do(t, http.MethodPost, path, token, h.envelope(t, body))
}

func errorCode(t *testing.T, body []byte) int {
	t.Helper()
	var out struct {
		Detail types.ErrorDetail `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	assert.Equal(t, "ERROR", out.Detail.Status)
	return out.Detail.Code
}

func (h *harness) inner(t *testing.T, body []byte, out any) {
	t.Helper()
	var env types.Envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	sig, ok := new(big.Int).SetString(env.Signature, 10)
	require.True(t, ok, "signature %q", env.Signature)
	require.NoError(t, crypto.Textbook{}.Verify(env.Message, sig, h.server.Public))
	require.NoError(t, json.Unmarshal([]byte(env.Message), out))
}

func TestPublicKeyServedAsNumbers(t *testing.T) {
	h := newHarness(t)
	status, body := h.do(t, http.MethodGet, "/auth/public-key", "", nil)
	require.Equal(t, http.StatusOK, status)

	var raw map[string]json.Number
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, h.server.Public.Exponent().String(), raw["e"].String())
	assert.Equal(t, h.server.Public.Modulus().String(), raw["n"].String())
}

func TestRegisterValidation(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(t, http.MethodPost, "/auth/register", "", h.credentials(t, "al", "hunter22"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 11, errorCode(t, body))

	status, body = h.do(t, http.MethodPost, "/auth/register", "", h.credentials(t, "alice", "short"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 24, errorCode(t, body))

	h.signup(t, "alice")
	status, body = h.do(t, http.MethodPost, "/auth/register", "", h.credentials(t, "alice", "hunter22"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 23, errorCode(t, body))

	plain := h.credentials(t, "bob", "hunter22")
	plain.Username = "bob"
	status, body = h.do(t, http.MethodPost, "/auth/register", "", plain)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 10, errorCode(t, body))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "alice")

	status, body := h.do(t, http.MethodPost, "/auth/login", "", h.credentials(t, "alice", "wrong-pass"))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 20, errorCode(t, body))

	status, body = h.do(t, http.MethodPost, "/auth/login", "", h.credentials(t, "nobody", "hunter22"))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 20, errorCode(t, body))
}

func TestTokenChecks(t *testing.T) {
	h := newHarness(t)
	token := h.signup(t, "alice")

	status, body := h.do(t, http.MethodGet, "/get-balance", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 13, errorCode(t, body))

	status, body = h.do(t, http.MethodGet, "/get-balance", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 15, errorCode(t, body))

	status, body = h.do(t, http.MethodGet, "/get-balance", token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var bal types.Balance
	h.inner(t, body, &bal)
	assert.Zero(t, bal.Balance)

	info, err := auth.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "1", info.Subject)

	h.advance(DefaultTokenTTL + time.Minute)
	status, body = h.do(t, http.MethodGet, "/get-balance", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 14, errorCode(t, body))
}

func TestEnvelopeSignatureChecked(t *testing.T) {
	h := newHarness(t)
	token := h.signup(t, "alice")

	env := h.envelope(t, types.Deposit{Amount: 10})
	env.Message = `{"amount":1000}`
	status, body := h.do(t, http.MethodPost, "/balance", token, env)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 0, errorCode(t, body))

	status, body = h.signed(t, "/balance", token, types.Deposit{Amount: -1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 25, errorCode(t, body))

	status, body = h.signed(t, "/balance", token, types.Deposit{Amount: 10})
	require.Equal(t, http.StatusOK, status, string(body))
	var ack types.StatusMessage
	h.inner(t, body, &ack)
	assert.Equal(t, "OK", ack.Status)
}

func TestCreateAuctionValidation(t *testing.T) {
	h := newHarness(t)
	token := h.signup(t, "alice")
	valid := types.NewAuction{
		Title:       "Brass lamp",
		Description: "A fine brass lamp, barely used.",
		Price:       10,
		Timestamp:   h.now() + 3600,
	}

	cases := []struct {
		name   string
		mutate func(*types.NewAuction)
		code   int
	}{
		{"short title", func(a *types.NewAuction) { a.Title = "abc" }, 32},
		{"long title", func(a *types.NewAuction) { a.Title = "abcdefghijklmno" }, 32},
		{"title symbols", func(a *types.NewAuction) { a.Title = "lamp!" }, 32},
		{"short description", func(a *types.NewAuction) { a.Description = "abc" }, 38},
		{"cheap", func(a *types.NewAuction) { a.Price = 4.99 }, 31},
		{"ends too soon", func(a *types.NewAuction) { a.Timestamp = h.now() + 119 }, 30},
		{"ends too late", func(a *types.NewAuction) { a.Timestamp = h.now() + 86401 }, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := valid
			tc.mutate(&a)
			status, body := h.signed(t, "/create-auction", token, a)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tc.code, errorCode(t, body))
		})
	}

	accented := valid
	accented.Title = "Lampe dorée"
	status, body := h.signed(t, "/create-auction", token, accented)
	require.Equal(t, http.StatusOK, status, string(body))
	var created types.Auction
	h.inner(t, body, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(1), created.SellerID)
	assert.Equal(t, StatusActive, created.Status)
	assert.Equal(t, h.now(), created.CreatedAt)
}

func TestBiddingRules(t *testing.T) {
	h := newHarness(t)
	seller := h.signup(t, "alice")
	bidder := h.signup(t, "bob")

	status, body := h.signed(t, "/create-auction", seller, types.NewAuction{
		Title: "Brass lamp", Description: "A fine brass lamp", Price: 10, Timestamp: h.now() + 600,
	})
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = h.signed(t, "/bid", bidder, types.NewBid{AuctionID: 1, Price: 20})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 47, errorCode(t, body))

	status, _ = h.signed(t, "/balance", bidder, types.Deposit{Amount: 100})
	require.Equal(t, http.StatusOK, status)

	status, body = h.signed(t, "/bid", bidder, types.NewBid{AuctionID: 9, Price: 20})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, 40, errorCode(t, body))

	status, body = h.signed(t, "/bid", bidder, types.NewBid{AuctionID: 1, Price: 20})
	require.Equal(t, http.StatusOK, status, string(body))
	var first types.Bid
	h.inner(t, body, &first)

	status, body = h.signed(t, "/cancel-bid", seller, types.BidRef{BidID: first.ID})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, 44, errorCode(t, body))

	h.advance(time.Second)
	status, body = h.signed(t, "/bid", bidder, types.NewBid{AuctionID: 1, Price: 30})
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = h.signed(t, "/cancel-bid", bidder, types.BidRef{BidID: first.ID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 46, errorCode(t, body))

	status, body = h.signed(t, "/update-price", bidder, types.AuctionRef{AuctionID: 1})
	require.Equal(t, http.StatusOK, status, string(body))
	var price types.PriceUpdate
	h.inner(t, body, &price)
	require.NotNil(t, price.UpdatedPrice)
	assert.Equal(t, 30.0, *price.UpdatedPrice)

	h.advance(11 * time.Second)
	status, body = h.signed(t, "/cancel-bid", bidder, types.BidRef{BidID: 2})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 45, errorCode(t, body))

	status, body = h.signed(t, "/delete-auction", bidder, types.AuctionRef{AuctionID: 1})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, 41, errorCode(t, body))

	h.advance(10 * time.Minute)
	status, body = h.signed(t, "/bid", bidder, types.NewBid{AuctionID: 1, Price: 40})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 42, errorCode(t, body))
}

func TestOversizedResponseGoesUnsigned(t *testing.T) {
	srv, err := New(&Config{Key: crypto.DefaultIdentity()})
	require.NoError(t, err)
	srv.db.addAuction(types.Auction{Title: "Brass lamp", Status: StatusActive})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/list-auctions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var env types.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Empty(t, env.Signature)
	var list []types.Auction
	require.NoError(t, json.Unmarshal([]byte(env.Message), &list))
	assert.Len(t, list, 1)
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(&Config{})
	require.Error(t, err)
}

func TestValidators(t *testing.T) {
	now := time.Unix(1_760_000_000, 0)
	assert.True(t, checkEnd(now.Unix()+120, now))
	assert.True(t, checkEnd(now.Unix()+86400, now))
	assert.False(t, checkEnd(now.Unix()-10, now))

	assert.True(t, checkDescription("Rare, vintage - it's great."))
	assert.False(t, checkDescription("no <html> here"))

	assert.True(t, checkPrice(5))
	assert.False(t, checkAmount(-0.01))
	assert.Nil(t, checkUsername("bob"))
	assert.Equal(t, errUsernameLength, checkUsername("abcdefghijklmnopqrstuvwxyz"))
	assert.Equal(t, errPasswordLength, checkPassword("abcdefghijklmnopqrstuvwxyz0123456"))
}
