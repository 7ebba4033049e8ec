// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Experience represents one entry of the work history timeline.
type Experience struct {
	ID           int64          `json:"id"`
	Period       string         `json:"period"`
	Company      string         `json:"company"`
	Role         string         `json:"role"`
	Description  sql.NullString `json:"-"`
	Tech         []string       `json:"tech"`
	IsCurrent    bool           `json:"is_current"`
	IsInternship bool           `json:"is_internship"`
	SortOrder    int64          `json:"sort_order"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Project represents a showcased project. ProjectID is the externally
// visible zero-padded identifier ("001", "002", ...), distinct from the
// internal numeric ID.
type Project struct {
	ID          int64          `json:"id"`
	ProjectID   string         `json:"project_id"`
	Title       string         `json:"title"`
	Description sql.NullString `json:"-"`
	Tech        []string       `json:"tech"`
	Year        sql.NullString `json:"-"`
	Link        sql.NullString `json:"-"`
	ImageURL    sql.NullString `json:"-"`
	IsFeatured  bool           `json:"is_featured"`
	SortOrder   int64          `json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Skill is a single named skill within a category. Sort order is scoped
// per category.
type Skill struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	SortOrder int64     `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// Image is an uploaded media file record.
type Image struct {
	ID           int64         `json:"id"`
	Filename     string        `json:"filename"`
	OriginalName string        `json:"original_name"`
	MimeType     string        `json:"mime_type"`
	Size         int64         `json:"size"`
	Width        sql.NullInt64  `json:"-"`
	Height       sql.NullInt64  `json:"-"`
	AltText      sql.NullString `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Supported image MIME types.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)
