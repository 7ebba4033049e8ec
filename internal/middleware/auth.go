// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and login rate limiting.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/olegiv/portfolio-go/internal/auth"
	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/store"
)

// UserResolver looks up the account behind a verified token. Lookups are
// expected to return store.ErrNotFound for deleted accounts.
type UserResolver interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// APIError represents a JSON error response for the API.
type APIError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	apiErr := APIError{}
	apiErr.Error.Code = code
	apiErr.Error.Message = message

	_ = json.NewEncoder(w).Encode(apiErr)
}

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "invalid authorization header format"
	}
	if parts[1] == "" {
		return "", "empty token"
	}
	return parts[1], ""
}

// RequireAuth creates middleware that validates the bearer token, confirms
// the account still exists and adds the verified claims to the request
// context. Username and role are taken from the stored account, so a role
// change takes effect on the next request rather than at token expiry.
func RequireAuth(tokens *auth.TokenManager, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
			if errMsg != "" {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", errMsg)
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				if errors.Is(err, auth.ErrExpiredToken) {
					WriteAPIError(w, http.StatusUnauthorized, "token_expired", "token expired")
					return
				}
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "user no longer exists")
					return
				}
				WriteAPIError(w, http.StatusInternalServerError, "internal_error", "authentication check failed")
				return
			}
			claims.Username = user.Username
			claims.Role = user.Role

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin creates middleware that requires the admin role. Must be
// used after RequireAuth.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.ClaimsFromContext(r.Context())
			if !ok {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
				return
			}

			if claims.Role != model.RoleAdmin {
				WriteAPIError(w, http.StatusForbidden, "forbidden", "admin role required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth creates middleware that attempts bearer auth but lets
// unauthenticated requests through. Invalid tokens and tokens for deleted
// accounts are treated as absent.
func OptionalAuth(tokens *auth.TokenManager, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
			if errMsg == "" {
				if claims, err := tokens.Verify(token); err == nil {
					if user, err := users.GetUserByID(r.Context(), claims.UserID); err == nil {
						claims.Username = user.Username
						claims.Role = user.Role
						r = r.WithContext(auth.WithClaims(r.Context(), claims))
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
