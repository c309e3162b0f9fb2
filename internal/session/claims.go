package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/labshare-dev/labshare/internal/api"
)

// Claims mirrors what the platform backend puts in its tokens
type Claims struct {
	UserID   string       `json:"user_id"`
	UserType api.UserType `json:"user_type"`
	LabID    *int64       `json:"lab_id,omitempty"`
	jwt.RegisteredClaims
}

// ErrMalformedToken is returned when a token cannot be decoded as a JWT
var ErrMalformedToken = errors.New("malformed token")

// ParseClaims decodes token claims without verifying the signature.
// The backend verifies on every call; the client only needs to read the role.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return claims, nil
}

// VerifyClaims decodes and verifies an HS256 token with the shared secret
func VerifyClaims(token string, secret []byte) (*Claims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("JWT secret not configured")
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := parsed.Claims.(*Claims); ok && parsed.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// SignToken issues an HS256 token for profile. Used by tests and local fixtures.
func SignToken(secret []byte, profile api.Profile, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   profile.ID,
		UserType: profile.UserType,
		LabID:    profile.LabID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// expired reports whether the claims carry an exp in the past
func (c *Claims) expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time)
}

// profile converts claims into the profile shape used by the rest of the client
func (c *Claims) profile() *api.Profile {
	return &api.Profile{
		ID:       c.UserID,
		UserType: c.UserType,
		LabID:    c.LabID,
	}
}
