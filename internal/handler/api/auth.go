// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/olegiv/portfolio-go/internal/auth"
	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/store"
)

// minPasswordLength is the minimum accepted length for new passwords.
const minPasswordLength = 8

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func userToResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse contains the issued token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Login authenticates a user by username and password and issues a JWT.
// Unknown usernames and wrong passwords produce the same response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := make(map[string]string)
	if req.Username == "" {
		fieldErrors["username"] = "Username is required"
	}
	if req.Password == "" {
		fieldErrors["password"] = "Password is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.logger.Error("login lookup failed", "error", err)
		}
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	token, err := h.tokens.Generate(auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		h.logger.Error("token generation failed", "error", err)
		WriteInternalError(w, "Internal server error")
		return
	}

	h.logger.Info("user logged in", "username", user.Username)
	WriteSuccess(w, LoginResponse{Token: token, User: userToResponse(user)}, nil)
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteUnauthorized(w, "User no longer exists")
			return
		}
		h.logger.Error("user lookup failed", "error", err)
		WriteInternalError(w, "Internal server error")
		return
	}

	WriteSuccess(w, userToResponse(user), nil)
}

// ChangePasswordRequest represents the request body for changing the password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword updates the authenticated user's password after
// verifying the current one.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := make(map[string]string)
	if req.CurrentPassword == "" {
		fieldErrors["current_password"] = "Current password is required"
	}
	if len(req.NewPassword) < minPasswordLength {
		fieldErrors["new_password"] = "New password must be at least 8 characters"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		h.writeStoreError(w, err, "User not found", "")
		return
	}

	match, err := auth.CheckPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil || !match {
		WriteUnauthorized(w, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.Error("password hashing failed", "error", err)
		WriteInternalError(w, "Internal server error")
		return
	}

	if err := h.store.UpdateUserPassword(r.Context(), user.ID, hash); err != nil {
		h.writeStoreError(w, err, "User not found", "")
		return
	}

	h.logger.Info("password changed", "username", user.Username)
	WriteSuccess(w, map[string]string{"message": "Password updated"}, nil)
}

// RefreshResponse contains the re-minted token.
type RefreshResponse struct {
	Token string `json:"token"`
}

// Refresh issues a fresh token for the authenticated user without
// requiring the password again.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteUnauthorized(w, "User no longer exists")
			return
		}
		h.logger.Error("user lookup failed", "error", err)
		WriteInternalError(w, "Internal server error")
		return
	}

	token, err := h.tokens.Generate(auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		h.logger.Error("token generation failed", "error", err)
		WriteInternalError(w, "Internal server error")
		return
	}

	WriteSuccess(w, RefreshResponse{Token: token}, nil)
}
