package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the payload of the tokens the complaint API issues.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Expired reports whether the claims carry an exp that is not after now.
// Tokens without exp never expire from the client's point of view.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !c.ExpiresAt.After(now)
}
