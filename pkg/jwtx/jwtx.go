package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants. These provide sensible defaults but can be
// overridden per-service via configuration.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 60 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Longer-lived for user convenience - typical range is 7d to 30d.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Token use values carried in the token_use claim. Access and refresh tokens
// are signed with the same key, so the claim is the only thing stopping a
// refresh token from being replayed as an access token (and vice versa).
const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrTokenUse    = errors.New("jwtx: wrong token use")
)

// Claims are the token claims used across the service. Additive changes only
// to preserve compatibility with already-issued tokens.
type Claims struct {
	jwt.RegisteredClaims

	// UID is the user's identifier. Present on access tokens only; refresh
	// tokens carry just the subject (email).
	UID string `json:"uid,omitempty"`

	// TokenUse distinguishes access from refresh tokens.
	TokenUse string `json:"token_use,omitempty"`
}

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// RequireUse checks that the claims carry the expected token_use value.
func (c *Claims) RequireUse(use string) error {
	if c.TokenUse != use {
		return ErrTokenUse
	}
	return nil
}
