package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewTokenService("secret", 24*time.Hour)

	token, err := svc.Generate("user@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if !svc.Validate(token) {
		t.Fatalf("expected freshly issued token to validate")
	}

	email, err := svc.ExtractEmail(token)
	if err != nil {
		t.Fatalf("extract email: %v", err)
	}
	if email != "user@example.com" {
		t.Fatalf("expected email user@example.com, got %q", email)
	}
}

func TestTokenService_VerifyAndExtract(t *testing.T) {
	svc := NewTokenService("secret", 24*time.Hour)

	token, err := svc.Generate("user@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	email, ok := svc.VerifyAndExtract(token)
	if !ok {
		t.Fatalf("expected token to verify")
	}
	if email != "user@example.com" {
		t.Fatalf("expected email user@example.com, got %q", email)
	}

	if _, ok := svc.VerifyAndExtract("garbage"); ok {
		t.Fatalf("expected garbage token to fail")
	}
}

func TestTokenService_RejectsDifferentSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", 24*time.Hour)
	verifier := NewTokenService("secret-b", 24*time.Hour)

	token, err := issuer.Generate("user@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if verifier.Validate(token) {
		t.Fatalf("expected token signed with another secret to fail")
	}
}

func TestTokenService_RejectsTamperedPayload(t *testing.T) {
	svc := NewTokenService("secret", 24*time.Hour)

	token, err := svc.Generate("user@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three JWT segments, got %d", len(parts))
	}
	tampered := parts[0] + ".eyJlbWFpbCI6ImV2aWxAZXhhbXBsZS5jb20ifQ." + parts[2]
	if svc.Validate(tampered) {
		t.Fatalf("expected tampered payload to fail validation")
	}
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := NewTokenService("secret", 24*time.Hour)

	now := time.Now().UTC()
	claims := TokenClaims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user@example.com",
			IssuedAt:  jwt.NewNumericDate(now.Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-24 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	if svc.Validate(expired) {
		t.Fatalf("expected expired token to fail validation")
	}
	if _, ok := svc.VerifyAndExtract(expired); ok {
		t.Fatalf("expected expired token to fail VerifyAndExtract")
	}
	// ExtractEmail no verifica expiración: parte del contrato de llamada.
	email, err := svc.ExtractEmail(expired)
	if err != nil {
		t.Fatalf("extract email: %v", err)
	}
	if email != "user@example.com" {
		t.Fatalf("expected email claim from unverified parse, got %q", email)
	}
}

func TestTokenService_ClaimLayout(t *testing.T) {
	svc := NewTokenService("secret", 24*time.Hour)

	before := time.Now().UTC().Truncate(time.Second)
	token, err := svc.Generate("user@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	after := time.Now().UTC()

	var claims TokenClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if _, err := parser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if claims.Subject != "user@example.com" {
		t.Fatalf("expected subject to duplicate email, got %q", claims.Subject)
	}
	if claims.Email != claims.Subject {
		t.Fatalf("expected email claim to equal subject")
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatalf("expected issued-at and expiration claims")
	}
	ttl := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	if ttl != 24*time.Hour {
		t.Fatalf("expected 24h expiry, got %v", ttl)
	}
	if claims.IssuedAt.Time.Before(before) || claims.IssuedAt.Time.After(after) {
		t.Fatalf("issued-at %v outside [%v, %v]", claims.IssuedAt.Time, before, after)
	}
}

func TestTokenService_EmptySecret(t *testing.T) {
	svc := NewTokenService("", 24*time.Hour)

	if _, err := svc.Generate("user@example.com"); err == nil {
		t.Fatalf("expected generate to fail with empty secret")
	}
	if svc.Validate("anything") {
		t.Fatalf("expected validate to fail with empty secret")
	}
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService("secret", 0)
	if svc.ttl != 24*time.Hour {
		t.Fatalf("expected 24h default TTL, got %v", svc.ttl)
	}
}
