// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Row is a single result row keyed by column name. SQLite surfaces values
// as int64, float64, string, time.Time or nil; []byte columns are converted
// to string by the query primitives.
type Row map[string]any

// String returns the named column as a string, or "" when absent or NULL.
func (r Row) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// NullString returns the named column as a sql.NullString.
func (r Row) NullString(key string) sql.NullString {
	if s, ok := r[key].(string); ok {
		return sql.NullString{String: s, Valid: true}
	}
	return sql.NullString{}
}

// Int64 returns the named column as an int64, or 0 when absent or NULL.
func (r Row) Int64(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// NullInt64 returns the named column as a sql.NullInt64.
func (r Row) NullInt64(key string) sql.NullInt64 {
	if v, ok := r[key].(int64); ok {
		return sql.NullInt64{Int64: v, Valid: true}
	}
	return sql.NullInt64{}
}

// Bool rehydrates a 0/1 column to a Go bool.
func (r Row) Bool(key string) bool {
	return r.Int64(key) != 0
}

// Time parses a timestamp column. The driver surfaces DATETIME columns as
// time.Time; bound text parameters come back as strings; both are handled.
// Zero time is returned when the column is NULL or unparseable.
func (r Row) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case string:
		return parseTime(v)
	}
	return time.Time{}
}

// NullTime parses a nullable timestamp column.
func (r Row) NullTime(key string) sql.NullTime {
	t := r.Time(key)
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// StringList decodes a JSON-encoded list column. Malformed or absent JSON
// defaults to an empty list.
func (r Row) StringList(key string) []string {
	s, ok := r[key].(string)
	if !ok || s == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

func parseTime(s string) time.Time {
	for _, layout := range []string{timeFormat, time.RFC3339, "2006-01-02 15:04:05.999999999-07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// encodeList JSON-encodes a string list for storage in a text column.
// A nil list encodes as the empty list.
func encodeList(list []string) string {
	if list == nil {
		list = []string{}
	}
	data, _ := json.Marshal(list)
	return string(data)
}

// formatTime renders a Go time in the storage timestamp layout.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}
