// Package token issues and verifies the signed auth tokens handed out at
// login and checked on every authenticated request.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
)

const issuer = "noteful-server"

// DefaultTTL is the lifetime of issued tokens.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned when a token cannot be parsed or verified.
var ErrInvalidToken = errors.New("invalid token")

// ErrTokenExpired is returned when a token is past its expiry.
var ErrTokenExpired = errors.New("token expired")

// Claims are the claims carried by an auth token.
type Claims struct {
	jwt.Claims
	// Username is the login name of the token subject.
	Username string `json:"username"`
}

// Manager signs and verifies HMAC tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// New creates a Manager signing with the given secret and DefaultTTL.
func New(secret string) *Manager {
	return &Manager{secret: []byte(secret), ttl: DefaultTTL}
}

// NewWithTTL creates a Manager with an explicit token lifetime.
func NewWithTTL(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token whose subject is the user id.
func (m *Manager) Issue(userID, username string) (string, error) {
	signer, err := jose.NewSigner(jose.SigningKey{
		Algorithm: jose.HS256,
		Key:       m.secret,
	}, (&jose.SignerOptions{}).WithType("JWT"))
	if err != nil {
		return "", fmt.Errorf("token: failed to create signer: %w", err)
	}

	now := time.Now()
	claims := Claims{
		Claims: jwt.Claims{
			Subject:  userID,
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
			Expiry:   jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Username: username,
	}

	raw, err := jwt.Signed(signer).Claims(claims).CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("token: failed to sign: %w", err)
	}
	return raw, nil
}

// Verify parses and validates a token, returning its claims.
func (m *Manager) Verify(raw string) (*Claims, error) {
	parsed, err := jwt.ParseSigned(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims := &Claims{}
	if err := parsed.Claims(m.secret, claims); err != nil {
		return nil, fmt.Errorf("%w: signature verification failed", ErrInvalidToken)
	}

	expected := jwt.Expected{
		Issuer: issuer,
		Time:   time.Now(),
	}
	if err := claims.Validate(expected); err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: claims validation failed: %v", ErrInvalidToken, err)
	}

	return claims, nil
}
