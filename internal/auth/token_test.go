// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"testing"
	"time"
)

func testClaims() Claims {
	return Claims{UserID: 1, Username: "admin", Role: "admin"}
}

func TestTokenManager_ValidToken(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret-key-for-jwt-signing!"), time.Hour)

	token, err := tm.Generate(testClaims())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if got.UserID != 1 {
		t.Errorf("UserID = %d, want 1", got.UserID)
	}
	if got.Username != "admin" {
		t.Errorf("Username = %q, want %q", got.Username, "admin")
	}
	if got.Role != "admin" {
		t.Errorf("Role = %q, want %q", got.Role, "admin")
	}
}

func TestTokenManager_InvalidToken(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret-key-for-jwt-signing!"), time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "garbage token",
			token: "not-a-jwt-token",
		},
		{
			name:  "malformed JWT",
			token: "header.payload.signature",
		},
		{
			name: "wrong secret",
			token: func() string {
				other := NewTokenManager([]byte("a-completely-different-secret!!!"), time.Hour)
				token, _ := other.Generate(testClaims())
				return token
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.Verify(tt.token)
			if err == nil {
				t.Error("Verify() should have returned an error")
			}
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret-key-for-jwt-signing!"), -time.Minute)

	token, err := tm.Generate(testClaims())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = tm.Verify(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}

func TestTokenManager_MissingClaims(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret-key-for-jwt-signing!"), time.Hour)

	token, err := tm.Generate(Claims{Username: "admin"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = tm.Verify(token)
	if !errors.Is(err, ErrMissingClaim) {
		t.Errorf("Verify() error = %v, want ErrMissingClaim", err)
	}
}
