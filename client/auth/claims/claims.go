package claims

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminRole is the scope entry granting administrative access.
const AdminRole = "ROLE_ADMIN"

// ErrEmptyToken is returned when decoding an empty credential.
var ErrEmptyToken = errors.New("empty token")

// Claims are the identity claims carried by an access token.
// The backend encodes roles as a space separated scope claim.
type Claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope,omitempty"`
}

// Decode extracts claims from token without verifying its signature;
// verification is the backend's concern, the client only reads identity.
func Decode(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrEmptyToken
	}
	ret := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, ret); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return ret, nil
}

// Roles returns the granted roles.
func (c *Claims) Roles() []string {
	if c == nil {
		return nil
	}
	return strings.Fields(c.Scope)
}

// HasRole reports whether role is granted.
func (c *Claims) HasRole(role string) bool {
	for _, candidate := range c.Roles() {
		if candidate == role {
			return true
		}
	}
	return false
}

// Expiry returns the token expiry, zero when the token carries none.
func (c *Claims) Expiry() time.Time {
	if c == nil || c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Username returns the subject claim.
func (c *Claims) Username() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

// IsAdmin reports whether claims grant AdminRole; nil claims are never admin.
func IsAdmin(c *Claims) bool {
	return c.HasRole(AdminRole)
}
