// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingClaim = errors.New("missing required claim")
)

// Claims are the identity claims carried inside an access token.
type Claims struct {
	UserID   int64
	Username string
	Role     string
}

// TokenManager mints and verifies HS256 signed access tokens.
type TokenManager struct {
	secret    []byte
	expiresIn time.Duration
}

// NewTokenManager creates a token manager with the given signing secret
// and token lifetime.
func NewTokenManager(secret []byte, expiresIn time.Duration) *TokenManager {
	return &TokenManager{secret: secret, expiresIn: expiresIn}
}

// Generate creates a signed token carrying the user's identity claims.
func (m *TokenManager) Generate(c Claims) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":      c.UserID,
		"username": c.Username,
		"role":     c.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(m.expiresIn).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates a token string and extracts its identity claims.
func (m *TokenManager) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		// Check if it's specifically an expiration error
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	uid, ok := mapClaims["uid"].(float64)
	if !ok || uid <= 0 {
		return Claims{}, fmt.Errorf("%w: uid", ErrMissingClaim)
	}

	username, ok := mapClaims["username"].(string)
	if !ok || username == "" {
		return Claims{}, fmt.Errorf("%w: username", ErrMissingClaim)
	}

	role, _ := mapClaims["role"].(string)

	return Claims{
		UserID:   int64(uid),
		Username: username,
		Role:     role,
	}, nil
}
