// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/olegiv/portfolio-go/internal/auth"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/auth/login", LoginRequest{
		Username: testAdminUsername,
		Password: testAdminPassword,
	}, "")
	wantStatus(t, rec, http.StatusOK)

	var resp LoginResponse
	decodeData(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.Username != testAdminUsername {
		t.Errorf("username = %q, want %q", resp.User.Username, testAdminUsername)
	}

	claims, err := env.tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("role claim = %q, want %q", claims.Role, "admin")
	}
}

func TestLogin_BadCredentialsIndistinguishable(t *testing.T) {
	env := newTestEnv(t)

	wrongPassword := env.request(t, http.MethodPost, "/auth/login", LoginRequest{
		Username: testAdminUsername,
		Password: "wrong-password",
	}, "")
	unknownUser := env.request(t, http.MethodPost, "/auth/login", LoginRequest{
		Username: "nobody",
		Password: "wrong-password",
	}, "")

	wantStatus(t, wrongPassword, http.StatusUnauthorized)
	wantStatus(t, unknownUser, http.StatusUnauthorized)

	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Errorf("bodies differ:\nwrong password: %s\nunknown user:   %s",
			wrongPassword.Body.String(), unknownUser.Body.String())
	}
}

func TestLogin_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/auth/login", LoginRequest{}, "")
	wantStatus(t, rec, http.StatusBadRequest)

	detail := decodeError(t, rec)
	if detail.Code != "validation_error" {
		t.Errorf("code = %q, want %q", detail.Code, "validation_error")
	}
	if _, ok := detail.Details["username"]; !ok {
		t.Error("expected a username field error")
	}
	if _, ok := detail.Details["password"]; !ok {
		t.Error("expected a password field error")
	}
}

func TestLogin_RateLimited(t *testing.T) {
	env := newTestEnv(t)

	var last int
	for i := 0; i < loginRateLimitBurst+1; i++ {
		rec := env.request(t, http.MethodPost, "/auth/login", LoginRequest{}, "")
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("status after burst = %d, want %d", last, http.StatusTooManyRequests)
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.request(t, http.MethodGet, "/auth/me", nil, token)
	wantStatus(t, rec, http.StatusOK)

	var user UserResponse
	decodeData(t, rec, &user)
	if user.Username != testAdminUsername {
		t.Errorf("username = %q, want %q", user.Username, testAdminUsername)
	}
	if user.Role != "admin" {
		t.Errorf("role = %q, want %q", user.Role, "admin")
	}
}

func TestMe_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/auth/me", nil, "")
	wantStatus(t, rec, http.StatusUnauthorized)
}

func TestMe_DeletedUser(t *testing.T) {
	env := newTestEnv(t)

	// Token for a user ID that does not exist.
	token, err := env.tokens.Generate(auth.Claims{UserID: 9999, Username: "ghost", Role: "admin"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	rec := env.request(t, http.MethodGet, "/auth/me", nil, token)
	wantStatus(t, rec, http.StatusUnauthorized)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.request(t, http.MethodPost, "/auth/change-password", ChangePasswordRequest{
		CurrentPassword: testAdminPassword,
		NewPassword:     "a-new-password",
	}, token)
	wantStatus(t, rec, http.StatusOK)

	login := env.request(t, http.MethodPost, "/auth/login", LoginRequest{
		Username: testAdminUsername,
		Password: "a-new-password",
	}, "")
	wantStatus(t, login, http.StatusOK)

	oldLogin := env.request(t, http.MethodPost, "/auth/login", LoginRequest{
		Username: testAdminUsername,
		Password: testAdminPassword,
	}, "")
	wantStatus(t, oldLogin, http.StatusUnauthorized)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.request(t, http.MethodPost, "/auth/change-password", ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "a-new-password",
	}, token)
	wantStatus(t, rec, http.StatusUnauthorized)
}

func TestChangePassword_TooShort(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.request(t, http.MethodPost, "/auth/change-password", ChangePasswordRequest{
		CurrentPassword: testAdminPassword,
		NewPassword:     "short",
	}, token)
	wantStatus(t, rec, http.StatusBadRequest)

	detail := decodeError(t, rec)
	if _, ok := detail.Details["new_password"]; !ok {
		t.Error("expected a new_password field error")
	}
}

func TestRefresh(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.request(t, http.MethodPost, "/auth/refresh", nil, token)
	wantStatus(t, rec, http.StatusOK)

	var resp RefreshResponse
	decodeData(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	me := env.request(t, http.MethodGet, "/auth/me", nil, resp.Token)
	wantStatus(t, me, http.StatusOK)
}

func TestRefresh_DeletedUser(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.store.GetUserByUsername(context.Background(), testAdminUsername)
	if err != nil {
		t.Fatalf("failed to look up admin: %v", err)
	}
	token, err := env.tokens.Generate(auth.Claims{
		UserID:   user.ID + 100,
		Username: "ghost",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	rec := env.request(t, http.MethodPost, "/auth/refresh", nil, token)
	wantStatus(t, rec, http.StatusUnauthorized)
}
