// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service contains application services that sit between the
// HTTP handlers and the store.
package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/portfolio-go/internal/imaging"
	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/store"
)

// DefaultUploadDir is used when no uploads directory is configured.
const DefaultUploadDir = "./uploads"

// MediaService handles image upload, processing and bookkeeping.
type MediaService struct {
	store     *store.Store
	processor *imaging.Processor
	maxSize   int64
}

// NewMediaService creates a new media service writing into uploadDir.
// maxSize caps the accepted upload size in bytes.
func NewMediaService(st *store.Store, uploadDir string, maxSize int64) *MediaService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &MediaService{
		store:     st,
		processor: imaging.NewProcessor(uploadDir),
		maxSize:   maxSize,
	}
}

// Upload validates, processes and records an uploaded image. The stored
// filename is a fresh UUID with the original extension, so uploads never
// collide and never leak the client's filename into URLs.
func (s *MediaService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, altText string) (*model.Image, error) {
	if header.Size > s.maxSize {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed (%d bytes)", header.Size, s.maxSize)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = getMimeTypeFromExtension(header.Filename)
	}
	if !s.processor.IsSupportedType(mimeType) {
		return nil, fmt.Errorf("file type %s is not allowed", mimeType)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = extensionForMimeType(mimeType)
	}
	filename := uuid.New().String() + ext

	result, err := s.processor.ProcessImage(file, filename)
	if err != nil {
		return nil, fmt.Errorf("processing image: %w", err)
	}

	width := int64(result.Width)
	height := int64(result.Height)
	var alt *string
	if altText != "" {
		alt = &altText
	}

	image, err := s.store.CreateImage(ctx, store.CreateImageParams{
		Filename:     filename,
		OriginalName: filepath.Base(header.Filename),
		MimeType:     result.MimeType,
		Size:         result.Size,
		Width:        &width,
		Height:       &height,
		AltText:      alt,
	})
	if err != nil {
		// Clean up the files when the record cannot be written.
		_ = s.processor.DeleteImageFiles(filename)
		return nil, fmt.Errorf("recording image: %w", err)
	}

	return image, nil
}

// Delete removes an image record and its files. The record is the source
// of truth: file removal failures after the record is gone are ignored.
func (s *MediaService) Delete(ctx context.Context, filename string) error {
	image, err := s.store.DeleteImage(ctx, filename)
	if err != nil {
		return err
	}
	_ = s.processor.DeleteImageFiles(image.Filename)
	return nil
}

// List returns one page of uploaded images.
func (s *MediaService) List(ctx context.Context, page, limit int64) (*store.ImagePage, error) {
	return s.store.ListImages(ctx, page, limit)
}

// getMimeTypeFromExtension maps common image extensions to MIME types.
func getMimeTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return model.MimeTypeJPEG
	case ".png":
		return model.MimeTypePNG
	case ".gif":
		return model.MimeTypeGIF
	case ".webp":
		return model.MimeTypeWebP
	default:
		return ""
	}
}

// extensionForMimeType picks a file extension for a detected MIME type.
func extensionForMimeType(mimeType string) string {
	switch mimeType {
	case model.MimeTypeJPEG:
		return ".jpg"
	case model.MimeTypePNG:
		return ".png"
	case model.MimeTypeGIF:
		return ".gif"
	case model.MimeTypeWebP:
		return ".webp"
	default:
		return ""
	}
}
