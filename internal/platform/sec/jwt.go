// Copyright (c) 2026 Agrio India. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// Security-sensitive code (bcrypt hashing, RS256 signing) lives here,
// behind the narrow TokenProvider interfaces each domain defines for
// itself. Nothing outside sec touches key material.
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the payload of an access token.
//
// # Why custom claims?
//
// UserID, Mobile, and Role ride inside the token, so the middleware
// rebuilds the caller's identity without a database lookup per request.
// Claim keys are abbreviated to keep the token short.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"uid"`
	Mobile string `json:"mob,omitempty"`
	Role   string `json:"rol"`
}

// TokenService signs and verifies access tokens with an RS256 key pair.
// Refresh tokens are opaque and live in the auth store, not here.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
}

// NewTokenService loads the RSA key pair from PEM files on disk.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	privateKey, err := loadPEM(privateKeyPath, jwt.ParseRSAPrivateKeyFromPEM)
	if err != nil {
		return nil, err
	}

	publicKey, err := loadPEM(publicKeyPath, jwt.ParseRSAPublicKeyFromPEM)
	if err != nil {
		return nil, err
	}

	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
	}, nil
}

func loadPEM[K any](path string, parse func([]byte) (K, error)) (K, error) {
	var zero K

	pemData, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("sec: failed to read key from %s: %w", path, err)
	}

	key, err := parse(pemData)
	if err != nil {
		return zero, fmt.Errorf("sec: failed to parse key %s: %w", path, err)
	}

	return key, nil
}

// GenerateAccessToken mints a signed token for the given identity.
func (service *TokenService) GenerateAccessToken(userID, mobile, role string, timeToLive time.Duration) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(timeToLive)),
		},
		UserID: userID,
		Mobile: mobile,
		Role:   role,
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken validates the signature and expiry of a token string.
// The signing method is checked explicitly so a token downgraded to
// "none" or HMAC never verifies against the RSA public key.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
