// Package auth validates bearer tokens issued by the external identity
// provider and exposes the caller's identity to request handlers. Tokens
// are verified against a shared HS256 secret; this service never mints them.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Token validation errors
var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
)

// TokenClaims are the claims carried by identity-provider access tokens
type TokenClaims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// Identity describes an authenticated caller
type Identity struct {
	UserID string
	Email  string
}

// Verifier validates bearer tokens against the identity provider's secret
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a token verifier. issuer is optional; when set,
// tokens with a different iss claim are rejected.
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// VerifyHeader extracts and validates a bearer token from an
// Authorization header value. An empty header yields ErrMissingToken so
// callers can distinguish absent from invalid credentials.
func (v *Verifier) VerifyHeader(header string) (*Identity, error) {
	if header == "" {
		return nil, ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, ErrInvalidToken
	}

	return v.Verify(parts[1])
}

// Verify validates a raw token string and returns the caller's identity
func (v *Verifier) Verify(raw string) (*Identity, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != "" && claims.TokenType != "access" {
		return nil, ErrInvalidToken
	}
	if v.issuer != "" && claims.Issuer != "" && claims.Issuer != v.issuer {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
