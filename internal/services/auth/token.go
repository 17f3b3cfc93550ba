package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned by ParseSessionToken for tokens that are not
// JWTs. Such tokens still work as bearer credentials.
var ErrOpaqueToken = errors.New("session token is not a JWT")

// SessionInfo is what the client can read from its own session token.
type SessionInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry is before now. Tokens without
// an expiry never expire.
func (s SessionInfo) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// ParseSessionToken reads the registered claims of a JWT session token
// without checking its signature; the client does not hold the server's
// secret. Use it for display only.
func ParseSessionToken(token string) (SessionInfo, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return SessionInfo{}, fmt.Errorf("%w: %v", ErrOpaqueToken, err)
	}
	info := SessionInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
