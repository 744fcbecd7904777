package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultIssuer = "blog-api"

// TokenService signs and verifies HS256 JWTs.
//
// Tokens carry the subject in "sub" and must have an expiry and the configured
// issuer. Only HS256 is accepted, so a token claiming "none" or an asymmetric
// algorithm never reaches the key function.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

var _ Verifier = (*TokenService)(nil)

// NewTokenService creates a TokenService. The secret must be at least 16
// characters; an empty issuer means DefaultIssuer.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &TokenService{secret: []byte(secret), issuer: issuer, now: time.Now}, nil
}

type claims struct {
	jwt.RegisteredClaims
}

// Generate signs a token for subject that expires after ttl.
func (s *TokenService) Generate(subject string, ttl time.Duration) (string, error) {
	now := s.now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    s.issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate parses tokenStr and returns its subject.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}
	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}
	return c.Subject, nil
}

// Verify implements Verifier. Every validation failure is a rejection.
func (s *TokenService) Verify(_ context.Context, token string) (string, error) {
	subject, err := s.Validate(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return subject, nil
}
