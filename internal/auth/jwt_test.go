package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-at-least-16-chars!!"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService(testSecret, "")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

// =========================================================================
// CONSTRUCTION
// =========================================================================

func TestNewTokenService_ShortSecret(t *testing.T) {
	if _, err := NewTokenService("short", ""); err == nil {
		t.Fatal("NewTokenService() should reject secrets shorter than 16 chars")
	}
}

func TestNewTokenService_DefaultIssuer(t *testing.T) {
	ts, err := NewTokenService("this-is-16-chars", "")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	if ts.issuer != DefaultIssuer {
		t.Errorf("issuer = %q, want %q", ts.issuer, DefaultIssuer)
	}
}

// =========================================================================
// GENERATE / VALIDATE
// =========================================================================

func TestValidate_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("507f1f77bcf86cd799439011", time.Hour)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("token doesn't look like a JWT: %q", token)
	}

	got, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got != "507f1f77bcf86cd799439011" {
		t.Errorf("Validate() subject = %q", got)
	}
}

func TestValidate_Rejects(t *testing.T) {
	ts := newTestTokenService(t)
	valid, _ := ts.Generate("user-123", time.Hour)
	expired, _ := ts.Generate("user-123", -time.Second)
	noSubject, _ := ts.Generate("", time.Hour)

	other, _ := NewTokenService("wrong-secret-32-chars-long!!!!!!", "")
	wrongSecret, _ := other.Generate("user-123", time.Hour)

	otherIssuer, _ := NewTokenService(testSecret, "someone-else")
	wrongIssuer, _ := otherIssuer.Generate("user-123", time.Hour)

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-123",
		Issuer:  DefaultIssuer,
	}).SignedString([]byte(testSecret))

	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-123",
		Issuer:    DefaultIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt.token"},
		{"tampered", valid[:len(valid)-3] + "xxx"},
		{"expired", expired},
		{"no subject", noSubject},
		{"wrong secret", wrongSecret},
		{"wrong issuer", wrongIssuer},
		{"no expiry", noExpiry},
		{"alg none", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ts.Validate(tt.token); err == nil {
				t.Fatal("Validate() should fail")
			}
		})
	}
}

func TestValidate_UsesClock(t *testing.T) {
	ts := newTestTokenService(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts.now = func() time.Time { return start }

	token, err := ts.Generate("user-123", time.Minute)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := ts.Validate(token); err != nil {
		t.Fatalf("Validate() within ttl error = %v", err)
	}

	ts.now = func() time.Time { return start.Add(2 * time.Minute) }
	if _, err := ts.Validate(token); err == nil {
		t.Fatal("Validate() should fail once the clock passes expiry")
	}
}

func TestTokenService_Verify(t *testing.T) {
	ts := newTestTokenService(t)
	token, _ := ts.Generate("user-123", time.Hour)

	subject, err := ts.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if subject != "user-123" {
		t.Errorf("subject = %q, want user-123", subject)
	}

	_, err = ts.Verify(context.Background(), "nonsense")
	if !errors.Is(err, ErrRejected) {
		t.Errorf("Verify(nonsense) error = %v, want ErrRejected", err)
	}
}
