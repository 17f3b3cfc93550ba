package interfaces

import (
	"context"

	domaintypes "auctionauth/internal/domain/types"
)

// Transport is how we talk to the auction server. It returns the raw response
// body of a successful exchange.
type Transport interface {
	Send(ctx context.Context, req domaintypes.Request) ([]byte, error)
}
