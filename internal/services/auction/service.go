package auction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"auctionauth/internal/domain"
	"auctionauth/internal/domain/types"
)

// Routes of the auction server.
const (
	PathRegister      = "/auth/register"
	PathLogin         = "/auth/login"
	PathGetBalance    = "/get-balance"
	PathAddBalance    = "/balance"
	PathCreateAuction = "/create-auction"
	PathListAuctions  = "/list-auctions"
	PathGetAuction    = "/get-auction"
	PathDeleteAuction = "/delete-auction"
	PathBid           = "/bid"
	PathCancelBid     = "/cancel-bid"
	PathUpdatePrice   = "/update-price"
)

var (
	// ErrNoToken is returned when a login response carries no access token.
	ErrNoToken = errors.New("login response has no access token")
)

// Service performs auction operations through an Authenticator.
type Service struct {
	auth domain.Authenticator
}

// New returns a service dispatching through a.
func New(a domain.Authenticator) *Service { return &Service{auth: a} }

// Register creates an account. Username and password travel encrypted under
// the server key, alongside our public key for later signature checks.
func (s *Service) Register(ctx context.Context, username types.Username, password string) error {
	_, err := s.auth.Do(ctx, s.credentialsCall(PathRegister, username, password))
	return err
}

// Login exchanges credentials for a session token and stores it.
func (s *Service) Login(ctx context.Context, username types.Username, password string) (string, error) {
	raw, err := s.auth.Do(ctx, s.credentialsCall(PathLogin, username, password))
	if err != nil {
		return "", err
	}
	token, err := parseToken(raw)
	if err != nil {
		return "", err
	}
	if err := s.auth.SetToken(token); err != nil {
		return "", fmt.Errorf("store session token: %w", err)
	}
	return token, nil
}

// Logout forgets the session token. The server keeps no session state.
func (s *Service) Logout() error { return s.auth.ClearToken() }

// GetBalance returns the account balance.
func (s *Service) GetBalance(ctx context.Context) (float64, error) {
	var out types.Balance
	err := s.call(ctx, types.Call{Method: http.MethodGet, Path: PathGetBalance, RequireSession: true}, &out)
	return out.Balance, err
}

// AddBalance credits amount to the account.
func (s *Service) AddBalance(ctx context.Context, amount float64) (types.StatusMessage, error) {
	var out types.StatusMessage
	err := s.call(ctx, signed(PathAddBalance, types.Deposit{Amount: amount}), &out)
	return out, err
}

// CreateAuction lists a new item.
func (s *Service) CreateAuction(ctx context.Context, a types.NewAuction) (types.Auction, error) {
	var out types.Auction
	err := s.call(ctx, signed(PathCreateAuction, a), &out)
	return out, err
}

// ListAuctions returns every auction. The route is open to anonymous callers.
func (s *Service) ListAuctions(ctx context.Context) ([]types.Auction, error) {
	var out []types.Auction
	err := s.call(ctx, types.Call{Method: http.MethodPost, Path: PathListAuctions, Body: struct{}{}}, &out)
	return out, err
}

// GetAuction fetches one auction.
func (s *Service) GetAuction(ctx context.Context, id int64) (types.Auction, error) {
	var out types.Auction
	err := s.call(ctx, signed(PathGetAuction, types.AuctionRef{AuctionID: id}), &out)
	return out, err
}

// DeleteAuction removes an auction we are selling.
func (s *Service) DeleteAuction(ctx context.Context, id int64) (types.Deletion, error) {
	var out types.Deletion
	err := s.call(ctx, signed(PathDeleteAuction, types.AuctionRef{AuctionID: id}), &out)
	return out, err
}

// PlaceBid bids on an auction.
func (s *Service) PlaceBid(ctx context.Context, b types.NewBid) (types.Bid, error) {
	var out types.Bid
	err := s.call(ctx, signed(PathBid, b), &out)
	return out, err
}

// CancelBid withdraws our latest bid.
func (s *Service) CancelBid(ctx context.Context, bidID int64) (types.StatusMessage, error) {
	var out types.StatusMessage
	err := s.call(ctx, signed(PathCancelBid, types.BidRef{BidID: bidID}), &out)
	return out, err
}

// UpdatePrice returns the highest bid on an auction; UpdatedPrice is nil
// while there are no bids.
func (s *Service) UpdatePrice(ctx context.Context, auctionID int64) (types.PriceUpdate, error) {
	var out types.PriceUpdate
	err := s.call(ctx, signed(PathUpdatePrice, types.AuctionRef{AuctionID: auctionID}), &out)
	return out, err
}

func (s *Service) credentialsCall(path string, username types.Username, password string) types.Call {
	pub := s.auth.LocalIdentity().Public
	return types.Call{
		Method: http.MethodPost,
		Path:   path,
		Body: types.Credentials{
			Username:   username.String(),
			Password:   password,
			PublicKeyE: pub.Exponent().String(),
			PublicKeyN: pub.Modulus().String(),
		},
		EncryptFields: []string{"username", "password"},
	}
}

func signed(path string, body any) types.Call {
	return types.Call{Method: http.MethodPost, Path: path, Body: body, Signed: true, RequireSession: true}
}

func (s *Service) call(ctx context.Context, c types.Call, out any) error {
	raw, err := s.auth.Do(ctx, c)
	if err != nil {
		return err
	}
	inner, err := Message(raw)
	if err != nil {
		return fmt.Errorf("%s response: %w", c.Path, err)
	}
	if err := json.Unmarshal(inner, out); err != nil {
		return fmt.Errorf("%s response: %w", c.Path, err)
	}
	return nil
}
