package devserver

import (
	"net/http"

	"auctionauth/internal/domain/types"
)

// apiError is a failure reported to the client under "detail".
type apiError struct {
	status int
	code   int
	msg    string
}

func (e *apiError) Error() string { return e.msg }

func fail(status, code int, msg string) *apiError {
	return &apiError{status: status, code: code, msg: msg}
}

// Errors shared by several routes. Codes follow the production server.
var (
	errNotIdentified  = fail(http.StatusUnauthorized, 13, "User not identified")
	errTokenExpired   = fail(http.StatusUnauthorized, 14, "Token expired")
	errTokenInvalid   = fail(http.StatusUnauthorized, 15, "Invalid token")
	errNoSubject      = fail(http.StatusUnauthorized, 16, "User id not found in token")
	errBadSubject     = fail(http.StatusUnauthorized, 17, "Invalid user id in token")
	errLoginFailed    = fail(http.StatusUnauthorized, 20, "Authentication failed")
	errBadSignature   = fail(http.StatusUnauthorized, 0, "Signature verification failed")
	errBadMessage     = fail(http.StatusBadRequest, 0, "Invalid JSON in message")
	errBadCredentials = fail(http.StatusBadRequest, 10, "Credentials are not encrypted for this server")
	errUsernameLength = fail(http.StatusBadRequest, 11, "Username must be 3 to 25 characters")
	errUsernameTaken  = fail(http.StatusBadRequest, 23, "Username already taken")
	errPasswordLength = fail(http.StatusBadRequest, 24, "Password must be 6 to 32 characters")
	errBadAmount      = fail(http.StatusBadRequest, 25, "Amount is not valid")
	errBadPublicKey   = fail(http.StatusBadRequest, 26, "Public key is not valid")
	errBadTimestamp   = fail(http.StatusBadRequest, 30, "Time is not ok")
	errBadPrice       = fail(http.StatusBadRequest, 31, "Price is not ok")
	errBadTitle       = fail(http.StatusBadRequest, 32, "Title is not ok")
	errBadDescription = fail(http.StatusBadRequest, 38, "Description is not ok")
	errNoAuction      = fail(http.StatusNotFound, 40, "Auction not found")
	errNotSeller      = fail(http.StatusForbidden, 41, "You are not the seller of this auction")
	errAuctionOver    = fail(http.StatusBadRequest, 42, "Auction already finished")
	errNoBid          = fail(http.StatusNotFound, 43, "Bid not found")
	errNotBidder      = fail(http.StatusForbidden, 44, "You are not the owner of this bid")
	errCancelTooLate  = fail(http.StatusBadRequest, 45, "You cannot cancel a bid after 10 seconds")
	errNotLatestBid   = fail(http.StatusBadRequest, 46, "You can only cancel your bid if it is the latest one")
	errNoCredit       = fail(http.StatusBadRequest, 47, "Insufficient credit")
)

func (e *apiError) detail() types.ErrorDetail {
	return types.ErrorDetail{Status: "ERROR", Code: e.code, Message: e.msg}
}
