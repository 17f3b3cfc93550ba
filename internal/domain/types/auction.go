package types

// Auction is a listing as returned by the auction server.
type Auction struct {
	ID          int64   `json:"id"`
	SellerID    int64   `json:"seller_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price"`
	CreatedAt   int64   `json:"created_at"`
	EndAt       int64   `json:"end_at"`
	Status      string  `json:"status"`
}

// Bid is a single offer on an auction.
type Bid struct {
	ID        int64   `json:"id"`
	AuctionID int64   `json:"auction_id"`
	UserID    int64   `json:"user_id"`
	CreatedAt int64   `json:"created_at"`
	Price     float64 `json:"price"`
}

// NewAuction is the signed body of /create-auction. Timestamp is the Unix
// end time.
type NewAuction struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Timestamp   int64   `json:"timestamp"`
}

// NewBid is the signed body of /bid.
type NewBid struct {
	AuctionID int64   `json:"auction_id"`
	Price     float64 `json:"price"`
}

// AuctionRef is the signed body of /get-auction, /delete-auction and
// /update-price.
type AuctionRef struct {
	AuctionID int64 `json:"auction_id"`
}

// BidRef is the signed body of /cancel-bid.
type BidRef struct {
	BidID int64 `json:"bid_id"`
}

// Deposit is the signed body of /balance.
type Deposit struct {
	Amount float64 `json:"amount"`
}

// Balance is the inner message of /get-balance.
type Balance struct {
	Balance float64 `json:"balance"`
}

// PriceUpdate is the inner message of /update-price.
type PriceUpdate struct {
	AuctionID    int64    `json:"auction_id"`
	UpdatedPrice *float64 `json:"updated_price"`
}

// StatusMessage is the {status, message} acknowledgement several routes
// return.
type StatusMessage struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Deletion is the (unsigned) response of /delete-auction.
type Deletion struct {
	Status    string `json:"status"`
	Deleted   bool   `json:"deleted"`
	AuctionID int64  `json:"auction_id"`
}
