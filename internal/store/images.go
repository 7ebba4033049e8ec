// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/portfolio-go/internal/model"
)

// DefaultImagePageSize is the page size for media listings when the
// request does not specify one.
const DefaultImagePageSize = 20

// CreateImageParams holds the metadata recorded for an uploaded file.
type CreateImageParams struct {
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Width        *int64
	Height       *int64
	AltText      *string
}

// ImagePage is one page of media records plus pagination metadata.
type ImagePage struct {
	Images     []*model.Image `json:"images"`
	Pagination Pagination     `json:"pagination"`
}

// CreateImage records an uploaded image.
func (s *Store) CreateImage(ctx context.Context, p CreateImageParams) (*model.Image, error) {
	res, err := s.Exec(ctx,
		`INSERT INTO images (filename, original_name, mime_type, size, width, height, alt_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Filename, p.OriginalName, p.MimeType, p.Size,
		nullableInt(p.Width), nullableInt(p.Height), nullablePtr(p.AltText))
	if err != nil {
		return nil, err
	}
	return s.GetImageByID(ctx, res.LastInsertID)
}

// GetImageByID fetches an image record by primary key.
func (s *Store) GetImageByID(ctx context.Context, id int64) (*model.Image, error) {
	row, err := s.QueryOne(ctx, "SELECT * FROM images WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return imageFromRow(row), nil
}

// GetImageByFilename fetches an image record by its stored filename.
func (s *Store) GetImageByFilename(ctx context.Context, filename string) (*model.Image, error) {
	row, err := s.QueryOne(ctx, "SELECT * FROM images WHERE filename = ?", filename)
	if err != nil {
		return nil, err
	}
	return imageFromRow(row), nil
}

// ListImages returns a page of media records, newest first.
func (s *Store) ListImages(ctx context.Context, page, limit int64) (*ImagePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultImagePageSize
	}
	offset := (page - 1) * limit

	rows, err := s.QueryAll(ctx,
		"SELECT * FROM images ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}

	countRow, err := s.QueryOne(ctx, "SELECT COUNT(*) AS count FROM images")
	if err != nil {
		return nil, err
	}
	total := countRow.Int64("count")

	images := make([]*model.Image, 0, len(rows))
	for _, row := range rows {
		images = append(images, imageFromRow(row))
	}

	return &ImagePage{
		Images: images,
		Pagination: Pagination{
			Page:       int(page),
			Limit:      int(limit),
			Total:      total,
			TotalPages: int((total + limit - 1) / limit),
		},
	}, nil
}

// DeleteImage removes an image record by filename and returns it so the
// caller can unlink the file on disk.
func (s *Store) DeleteImage(ctx context.Context, filename string) (*model.Image, error) {
	image, err := s.GetImageByFilename(ctx, filename)
	if err != nil {
		return nil, err
	}
	if _, err := s.Exec(ctx, "DELETE FROM images WHERE id = ?", image.ID); err != nil {
		return nil, err
	}
	return image, nil
}

func imageFromRow(row Row) *model.Image {
	return &model.Image{
		ID:           row.Int64("id"),
		Filename:     row.String("filename"),
		OriginalName: row.String("original_name"),
		MimeType:     row.String("mime_type"),
		Size:         row.Int64("size"),
		Width:        row.NullInt64("width"),
		Height:       row.NullInt64("height"),
		AltText:      row.NullString("alt_text"),
		CreatedAt:    row.Time("created_at"),
	}
}
