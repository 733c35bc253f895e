package authapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/manav03panchal/tasksync/internal/errors"
)

// TokenInfo is what the CLI can show about a bearer token without the
// server's key.
type TokenInfo struct {
	Subject   string    `json:"subject,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
	HasExpiry bool      `json:"-"`
}

// Expired reports whether the token's exp claim is before now. Tokens
// without exp never expire.
func (i TokenInfo) Expired(now time.Time) bool {
	return i.HasExpiry && !i.ExpiresAt.After(now)
}

// InspectToken reads the claims of a JWT without verifying its signature.
// The result is for display only.
func InspectToken(token string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, errors.Wrap(err, "parse token")
	}

	var info TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return TokenInfo{}, errors.Wrap(err, "read exp claim")
	}
	if exp != nil {
		info.ExpiresAt = exp.Time
		info.HasExpiry = true
	}
	return info, nil
}

// TokenExpiry returns the exp claim of token. ok is false when the token
// carries no expiry.
func TokenExpiry(token string) (exp time.Time, ok bool, err error) {
	info, err := InspectToken(token)
	if err != nil {
		return time.Time{}, false, err
	}
	return info.ExpiresAt, info.HasExpiry, nil
}
