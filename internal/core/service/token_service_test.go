package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lzar/wallet-gateway/internal/core/domain"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("alice@example.com", "prov_1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("unexpected email claim: %q", claims.Email)
	}
	if claims.ProviderUserID != "prov_1" {
		t.Fatalf("unexpected provider user id claim: %q", claims.ProviderUserID)
	}
}

func TestTokenService_Validate_TamperedToken(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("bob@example.com", "prov_2")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Flipping any single character must invalidate the token.
	for _, pos := range []int{0, len(token) / 2, len(token) - 1} {
		altered := []byte(token)
		if altered[pos] == 'A' {
			altered[pos] = 'B'
		} else {
			altered[pos] = 'A'
		}
		if _, err := svc.Validate(string(altered)); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("tampered token at pos %d should fail, got %v", pos, err)
		}
	}
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Issue("carol@example.com", "prov_3")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := NewTokenService("secret-b", time.Hour).Validate(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenService_Validate_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":            "dave@example.com",
		"provider_user_id": "prov_4",
		"exp":              time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Validate(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_Validate_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Validate(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("Validate(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestTokenService_Validate_MissingEmailClaim(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := anonymous.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Validate(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for token without identity, got %v", err)
	}
}
