// Package token issues and verifies time-bounded, signed password-reset tokens.
package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Service mints and verifies password-reset tokens signed with the process
// secret. The secret is injected at construction; the package reads no
// ambient state.
type Service struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewService returns a Service signing with secret and issuing tokens valid
// for defaultTTL unless Issue is given an explicit ttl.
func NewService(secret string, defaultTTL time.Duration) *Service {
	return &Service{secret: []byte(secret), defaultTTL: defaultTTL}
}

// Issue mints a token valid for the service's default TTL.
func (s *Service) Issue(userID uint) (string, error) {
	return s.IssueWithTTL(userID, s.defaultTTL)
}

// IssueWithTTL encodes {sub: userID, exp: now+ttl} and signs it with HS256.
// The ttl is taken as given; a zero or negative ttl produces a token that is
// already expired.
func (s *Service) IssueWithTTL(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify decodes the token and checks signature and expiry. Every failure
// mode collapses to ok=false; callers cannot distinguish expired from
// tampered or malformed. The expiry boundary is exclusive.
func (s *Service) Verify(tokenString string) (uint, bool) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return 0, false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(userID), true
}
