// Copyright (c) 2026 Pictufy Mirror. All rights reserved.
// Author: totmarc

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (nonce signing and
// verification) from the domain logic. The grid endpoints require a
// short-lived signed nonce, issued when a page is rendered and presented
// back on every load-more call, to keep the public ajax surface from being
// scripted against directly.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NonceClaims represents the payload embedded inside a grid nonce token.
//
// # Why an action claim?
//
// A nonce is only valid for the action it was issued for. Binding the action
// name inside the signed payload means a nonce minted for the artwork grid
// cannot be replayed against a future endpoint with different semantics.
type NonceClaims struct {
	jwt.RegisteredClaims

	// Action names the operation this nonce authorizes (e.g. "artworks").
	Action string `json:"act"`
}

// NonceService handles generation and verification of HS256 nonce tokens.
type NonceService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewNonceService creates a new NonceService keyed by the shared session secret.
func NewNonceService(secret, issuer string, ttl time.Duration) (*NonceService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: nonce secret must not be empty")
	}

	return &NonceService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// Issue creates a new signed nonce bound to the given action.
func (service *NonceService) Issue(action string) (string, error) {
	currentTime := time.Now()
	claims := NonceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		Action: action,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign nonce: %w", err)
	}

	return signed, nil
}

// Verify checks the signature, expiry, and action binding of a nonce.
func (service *NonceService) Verify(tokenString, action string) error {
	claims := &NonceClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method %v", token.Header["alg"])
			}
			return service.secret, nil
		},
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("sec: nonce verification failed: %w", err)
	}

	if claims.Action != action {
		return fmt.Errorf("sec: nonce issued for action %q, not %q", claims.Action, action)
	}

	return nil
}
