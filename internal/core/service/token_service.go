package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lzar/wallet-gateway/internal/core/domain"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// Claims is the identity carried by a session token.
type Claims struct {
	Email          string
	ProviderUserID string
}

// TokenService issues and validates stateless HS256 session tokens. There is
// no server-side session store: validity is signature plus expiry, and the
// signing secret is fixed for the lifetime of the process.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a fresh token binding the email and provider user id.
func (s *TokenService) Issue(email, providerUserID string) (string, error) {
	claims := jwt.MapClaims{
		"email":            email,
		"provider_user_id": providerUserID,
		"exp":              time.Now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry. Every failure mode (malformed
// token, wrong algorithm, bad signature, expired) collapses into
// domain.ErrInvalidToken so callers cannot leak which check failed.
func (s *TokenService) Validate(token string) (*Claims, error) {
	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	email, _ := mc["email"].(string)
	if email == "" {
		return nil, domain.ErrInvalidToken
	}
	providerUserID, _ := mc["provider_user_id"].(string)

	return &Claims{Email: email, ProviderUserID: providerUserID}, nil
}
