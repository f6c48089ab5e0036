package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "user-management-console"

var ErrInvalidToken = errors.New("invalid session token")

// Claims is the payload of the session cookie. The subject is the session id.
type Claims struct {
	Operator bool `json:"op,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) SessionID() string {
	return c.Subject
}

// JWTManager signs and verifies session cookies.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// TTL is also used as the cookie Max-Age.
func (m *JWTManager) TTL() time.Duration {
	return m.ttl
}

// GenerateSessionToken signs a token for sessionID. operator marks sessions
// that passed the operator login.
func (m *JWTManager) GenerateSessionToken(sessionID string, operator bool) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Operator: operator,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseAndValidate verifies the signature, issuer and expiry of tokenStr.
func (m *JWTManager) ParseAndValidate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if _, err := m.parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
