package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"careerpath/internal/domain"
)

func signTestToken(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestJWTService_GenerateParseAccess(t *testing.T) {
	svc := NewJWTService("secret", "careerpath", 15*time.Minute)
	user := domain.User{ID: "u1", Email: "user@example.com", DisplayName: "Test"}

	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if got := claims.User(); got.ID != "u1" || got.Email != "user@example.com" || got.DisplayName != "Test" {
		t.Fatalf("unexpected user from claims: %+v", got)
	}
}

func TestJWTService_RejectsEmptySecret(t *testing.T) {
	svc := NewJWTService("", "careerpath", 15*time.Minute)
	if _, err := svc.GenerateAccessToken(domain.User{ID: "u1"}); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on empty secret, got %v", err)
	}
	if _, err := svc.ParseAccessToken("abc"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on empty secret, got %v", err)
	}
}

func TestJWTService_RejectsInvalidTokens(t *testing.T) {
	svc := NewJWTService("secret", "careerpath", 15*time.Minute)
	now := time.Now().UTC()
	base := func() Claims {
		return Claims{
			UserID:    "u1",
			TokenType: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "careerpath",
				Subject:   "u1",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
			},
		}
	}

	wrongIssuer := base()
	wrongIssuer.Issuer = "other-issuer"
	refresh := base()
	refresh.TokenType = "refresh"
	mismatch := base()
	mismatch.Subject = "u2"
	expired := base()
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	tests := []struct {
		name   string
		token  string
		expect error
	}{
		{"wrong issuer", signTestToken(t, wrongIssuer, "secret"), ErrJWTInvalid},
		{"refresh token", signTestToken(t, refresh, "secret"), ErrJWTInvalid},
		{"subject mismatch", signTestToken(t, mismatch, "secret"), ErrJWTInvalid},
		{"wrong secret", signTestToken(t, base(), "other"), ErrJWTInvalid},
		{"expired", signTestToken(t, expired, "secret"), ErrJWTExpired},
		{"blank", "  ", ErrJWTInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ParseAccessToken(tt.token); !errors.Is(err, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, err)
			}
		})
	}
}
