// Package adminauth handles the admin_token cookie and the advisory,
// unverified inspection of the JWT it carries. Signature checks belong to
// the backend; nothing here grants or denies access on its own.
package adminauth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiryWarningWindow is how close to expiry a token must be before the
// admin pages show the one-time warning.
const ExpiryWarningWindow = 300 * time.Second

type TokenState int

const (
	TokenMissing TokenState = iota
	TokenValid
	TokenExpired
	TokenInvalid
)

func (s TokenState) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenExpired:
		return "expired"
	case TokenInvalid:
		return "invalid"
	default:
		return "missing"
	}
}

type TokenInfo struct {
	State     TokenState
	ExpiresAt time.Time
	Remaining time.Duration
}

// ExpiresSoon reports whether a still valid token is within the warning
// window of its expiry.
func (ti TokenInfo) ExpiresSoon() bool {
	return ti.State == TokenValid && !ti.ExpiresAt.IsZero() && ti.Remaining <= ExpiryWarningWindow
}

// Inspect decodes the token payload without verifying its signature. A
// token without an exp claim is treated as valid with no known expiry.
func Inspect(token string, now time.Time) TokenInfo {
	if token == "" {
		return TokenInfo{State: TokenMissing}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{State: TokenInvalid}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return TokenInfo{State: TokenInvalid}
	}

	if exp == nil {
		return TokenInfo{State: TokenValid}
	}

	info := TokenInfo{ExpiresAt: exp.Time, Remaining: exp.Time.Sub(now)}
	if info.Remaining <= 0 {
		info.State = TokenExpired
		return info
	}

	info.State = TokenValid
	return info
}
