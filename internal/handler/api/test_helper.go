// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/portfolio-go/internal/auth"
	"github.com/olegiv/portfolio-go/internal/service"
	"github.com/olegiv/portfolio-go/internal/store"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "admin123"
)

// testEnv bundles a handler with everything its tests need.
type testEnv struct {
	handler *Handler
	router  http.Handler
	store   *store.Store
	tokens  *auth.TokenManager
}

// newTestEnv builds a handler backed by a real store in a temp directory,
// with one admin account created.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()

	st, err := store.Open(filepath.Join(dir, "test.db"), logger)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	hash, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if _, err := st.CreateUser(context.Background(), testAdminUsername, "admin@example.com", hash, ""); err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	tokens := auth.NewTokenManager([]byte("test-secret-key-0123456789abcdef"), time.Hour)
	media := service.NewMediaService(st, filepath.Join(dir, "uploads"), 5<<20)
	h := NewHandler(st, media, tokens, logger)

	return &testEnv{
		handler: h,
		router:  h.Routes(),
		store:   st,
		tokens:  tokens,
	}
}

// adminToken issues a token for the seeded admin account.
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()

	user, err := e.store.GetUserByUsername(context.Background(), testAdminUsername)
	if err != nil {
		t.Fatalf("failed to look up admin: %v", err)
	}
	token, err := e.tokens.Generate(auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// request runs one request through the router. A non-nil body is JSON
// encoded; a non-empty token is sent as a bearer token.
func (e *testEnv) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the "data" member of a response envelope into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
		Meta *Meta           `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response envelope: %v\nbody: %s", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("failed to decode response data: %v\nbody: %s", err, rec.Body.String())
	}
}

// decodeMeta unmarshals the "meta" member of a response envelope.
func decodeMeta(t *testing.T, rec *httptest.ResponseRecorder) Meta {
	t.Helper()

	var envelope struct {
		Meta Meta `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return envelope.Meta
}

// decodeError unmarshals an error response body.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()

	var envelope ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode error response: %v\nbody: %s", err, rec.Body.String())
	}
	return envelope.Error
}

// wantStatus fails the test when the recorded status differs.
func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()

	if rec.Code != want {
		t.Fatalf("status = %d, want %d\nbody: %s", rec.Code, want, rec.Body.String())
	}
}
