// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"fmt"
	"time"
)

// Content block types.
const (
	BlockParagraph = "paragraph"
	BlockHeading   = "heading"
	BlockImage     = "image"
	BlockCode      = "code"
	BlockQuote     = "quote"
	BlockList      = "list"
)

// Article represents a blog article. The content is an ordered list of
// typed blocks, stored as a JSON text column.
type Article struct {
	ID          int64          `json:"id"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Excerpt     sql.NullString `json:"-"`
	Content     []ContentBlock `json:"content"`
	CoverImage  sql.NullString `json:"-"`
	Tags        []string       `json:"tags"`
	IsPublished bool           `json:"is_published"`
	PublishedAt sql.NullTime   `json:"-"`
	Views       int64          `json:"views"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ContentBlock is one element of an article body. Type selects the variant;
// the other fields are populated per variant:
//
//	paragraph, quote  -> Content
//	heading           -> Content, Level
//	image             -> URL, Alt
//	code              -> Content, Language
//	list              -> Items
type ContentBlock struct {
	Type     string   `json:"type"`
	Content  string   `json:"content,omitempty"`
	Level    int      `json:"level,omitempty"`
	Language string   `json:"language,omitempty"`
	URL      string   `json:"url,omitempty"`
	Alt      string   `json:"alt,omitempty"`
	Items    []string `json:"items,omitempty"`
}

// Validate checks that the block carries the fields its variant requires.
func (b ContentBlock) Validate() error {
	switch b.Type {
	case BlockParagraph, BlockQuote:
		if b.Content == "" {
			return fmt.Errorf("%s block requires content", b.Type)
		}
	case BlockHeading:
		if b.Content == "" {
			return fmt.Errorf("heading block requires content")
		}
		if b.Level < 1 || b.Level > 6 {
			return fmt.Errorf("heading level must be between 1 and 6, got %d", b.Level)
		}
	case BlockImage:
		if b.URL == "" {
			return fmt.Errorf("image block requires a url")
		}
	case BlockCode:
		if b.Content == "" {
			return fmt.Errorf("code block requires content")
		}
	case BlockList:
		if len(b.Items) == 0 {
			return fmt.Errorf("list block requires at least one item")
		}
	default:
		return fmt.Errorf("unknown block type %q", b.Type)
	}
	return nil
}

// ValidateContent validates every block of an article body, reporting the
// index of the first invalid block.
func ValidateContent(blocks []ContentBlock) error {
	for i, b := range blocks {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("content[%d]: %w", i, err)
		}
	}
	return nil
}
