package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the access-token claims minted by the auth service. Only the
// fields this service reads are declared; unknown claims are ignored.
type Claims struct {
	jwt.RegisteredClaims

	SID           string   `json:"sid,omitempty"`
	Scopes        []string `json:"scopes,omitempty"`
	Username      string   `json:"username,omitempty"`
	PreferredName string   `json:"preferred_name,omitempty"`
	Email         string   `json:"email,omitempty"`
}

// DisplayName picks the friendliest name the token carries, or "" when it
// has none.
func (c *Claims) DisplayName() string {
	if c.PreferredName != "" {
		return c.PreferredName
	}
	return c.Username
}

// HasScope reports whether the token carries scope.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// ValidateIssuer checks the iss claim. An empty expectation is not enforced.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience passes when any expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiryWithLeeway checks exp and nbf allowing for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
