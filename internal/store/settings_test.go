// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSetting_PlainString(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	got, err := s.SetSetting(ctx, "site_name", "My Portfolio")
	require.NoError(t, err)
	assert.Equal(t, "My Portfolio", got)

	got, err = s.GetSetting(ctx, "site_name")
	require.NoError(t, err)
	assert.Equal(t, "My Portfolio", got)
}

func TestSetSetting_ObjectRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	social := map[string]any{"github": "https://github.com/example", "stars": float64(10)}
	_, err := s.SetSetting(ctx, "social", social)
	require.NoError(t, err)

	got, err := s.GetSetting(ctx, "social")
	require.NoError(t, err)
	assert.Equal(t, social, got)
}

func TestSetSetting_Upsert(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.SetSetting(ctx, "email", "old@example.com")
	require.NoError(t, err)
	_, err = s.SetSetting(ctx, "email", "new@example.com")
	require.NoError(t, err)

	got, err := s.GetSetting(ctx, "email")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got)
}

func TestGetSetting_NumericStringDecodesAsNumber(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	// Values are decoded best-effort as JSON, so a numeric string comes
	// back as a number.
	_, err := s.SetSetting(ctx, "count", "42")
	require.NoError(t, err)

	got, err := s.GetSetting(ctx, "count")
	require.NoError(t, err)
	assert.Equal(t, float64(42), got)
}

func TestGetSetting_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetSetting(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetManySettings(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	all, err := s.SetManySettings(ctx, map[string]any{
		"site_name": "Portfolio",
		"email":     "me@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Portfolio", all["site_name"])
	assert.Equal(t, "me@example.com", all["email"])
}

func TestDeleteSetting(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.SetSetting(ctx, "temp", "x")
	require.NoError(t, err)

	require.NoError(t, s.DeleteSetting(ctx, "temp"))
	assert.ErrorIs(t, s.DeleteSetting(ctx, "temp"), ErrNotFound)
}

func TestSeedDefaultSettings_OnlyFillsMissing(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.SetSetting(ctx, "site_name", "Custom Name")
	require.NoError(t, err)

	require.NoError(t, s.SeedDefaultSettings(ctx, nil))

	all, err := s.GetAllSettings(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Custom Name", all["site_name"], "existing values must not be overwritten")
	assert.Contains(t, all, "cv_url")
	assert.Contains(t, all, "github_url")

	// Seeding twice is a no-op.
	require.NoError(t, s.SeedDefaultSettings(ctx, nil))
}
