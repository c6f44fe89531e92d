// Package auth issues and validates bearer tokens. Users are provisioned
// outside this service; tokens carry the user id as subject and the role
// as a custom claim. Tokens are minted by `opsctl users token`.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// clockSkew is tolerated on exp/iat between instances.
const clockSkew = 30 * time.Second

var errUnknownRole = errors.New("unknown role")

// JWTManager signs and verifies HS256 access tokens.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	parser    *jwt.Parser
}

// NewJWTManager creates a JWTManager. config.Validate enforces a secret of
// at least 32 characters.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// GenerateAccessToken signs a token for userID holding role, valid for the
// configured TTL.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	return m.GenerateAccessTokenTTL(userID, role, m.accessTTL)
}

// GenerateAccessTokenTTL is GenerateAccessToken with an explicit lifetime.
func (m *JWTManager) GenerateAccessTokenTTL(userID uuid.UUID, role string, ttl time.Duration) (string, error) {
	if !domain.UserRole(role).IsValid() {
		return "", fmt.Errorf("sign token: %w %q", errUnknownRole, role)
	}

	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken verifies signature, issuer and expiry and returns the
// subject and role. Tokens naming a role this service does not know are
// rejected.
func (m *JWTManager) ValidateAccessToken(tokenString string) (uuid.UUID, string, error) {
	if tokenString == "" {
		return uuid.Nil, "", errors.New("token is empty")
	}

	claims := &accessClaims{}
	if _, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return uuid.Nil, "", fmt.Errorf("parse token: %w", err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid subject UUID: %w", err)
	}
	if !domain.UserRole(claims.Role).IsValid() {
		return uuid.Nil, "", fmt.Errorf("%w %q", errUnknownRole, claims.Role)
	}

	return userID, claims.Role, nil
}

// UnverifiedSubject returns the subject claim of tokenString without
// checking its signature or expiry, or "" when it cannot be parsed. It
// identifies the caller for failure counting only and must never be
// trusted for authorization.
func UnverifiedSubject(tokenString string) string {
	claims := &accessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return ""
	}
	return claims.Subject
}
