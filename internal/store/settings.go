// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// DefaultSettings are seeded once at startup; existing keys are never
// overwritten.
var DefaultSettings = map[string]any{
	"site_name":        "Portfolio",
	"site_title":       "Developer",
	"site_description": "",
	"github_url":       "",
	"linkedin_url":     "",
	"email":            "",
	"cv_url":           "/cv.pdf",
}

// GetSetting returns the value for a key. Values are best-effort JSON
// decoded; a value that is not valid JSON comes back as the raw string.
// Returns ErrNotFound for an unknown key.
func (s *Store) GetSetting(ctx context.Context, key string) (any, error) {
	row, err := s.QueryOne(ctx, "SELECT value FROM settings WHERE key = ?", key)
	if err != nil {
		return nil, err
	}
	return decodeSettingValue(row.String("value")), nil
}

// SetSetting upserts a key. Maps, slices and structs are JSON serialized;
// everything else is stored as its string form. Round-tripping is
// best-effort and only exact for JSON-representable values.
func (s *Store) SetSetting(ctx context.Context, key string, value any) (any, error) {
	serialized, err := encodeSettingValue(value)
	if err != nil {
		return nil, err
	}

	_, err = s.Exec(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, serialized)
	if err != nil {
		return nil, err
	}
	return s.GetSetting(ctx, key)
}

// GetAllSettings returns every setting, values decoded the same way as
// GetSetting.
func (s *Store) GetAllSettings(ctx context.Context) (map[string]any, error) {
	rows, err := s.QueryAll(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	settings := make(map[string]any, len(rows))
	for _, row := range rows {
		settings[row.String("key")] = decodeSettingValue(row.String("value"))
	}
	return settings, nil
}

// SetManySettings upserts every entry of the map and returns the full
// settings collection.
func (s *Store) SetManySettings(ctx context.Context, values map[string]any) (map[string]any, error) {
	for key, value := range values {
		if _, err := s.SetSetting(ctx, key, value); err != nil {
			return nil, err
		}
	}
	return s.GetAllSettings(ctx)
}

// DeleteSetting removes a key. Returns ErrNotFound for an unknown key.
func (s *Store) DeleteSetting(ctx context.Context, key string) error {
	res, err := s.Exec(ctx, "DELETE FROM settings WHERE key = ?", key)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SeedDefaultSettings inserts every default key that is not already
// present, leaving existing values alone.
func (s *Store) SeedDefaultSettings(ctx context.Context, defaults map[string]any) error {
	if defaults == nil {
		defaults = DefaultSettings
	}

	rows, err := s.QueryAll(ctx, "SELECT key FROM settings")
	if err != nil {
		return err
	}
	existing := make(map[string]bool, len(rows))
	for _, row := range rows {
		existing[row.String("key")] = true
	}

	for key, value := range defaults {
		if existing[key] {
			continue
		}
		if _, err := s.SetSetting(ctx, key, value); err != nil {
			return fmt.Errorf("seeding setting %s: %w", key, err)
		}
	}
	return nil
}

func encodeSettingValue(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("serializing setting value: %w", err)
		}
		return string(data), nil
	}
}

func decodeSettingValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	return value
}
