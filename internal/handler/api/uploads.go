// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/store"
)

// ImageResponse represents an uploaded image in API responses.
type ImageResponse struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	Width        *int64    `json:"width,omitempty"`
	Height       *int64    `json:"height,omitempty"`
	AltText      string    `json:"alt_text"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// storeImageToResponse converts a model.Image to ImageResponse.
func storeImageToResponse(img *model.Image) ImageResponse {
	resp := ImageResponse{
		ID:           img.ID,
		Filename:     img.Filename,
		OriginalName: img.OriginalName,
		MimeType:     img.MimeType,
		Size:         img.Size,
		URL:          "/uploads/" + img.Filename,
		ThumbnailURL: "/uploads/thumbs/" + img.Filename,
		CreatedAt:    img.CreatedAt,
	}
	if img.Width.Valid {
		resp.Width = &img.Width.Int64
	}
	if img.Height.Valid {
		resp.Height = &img.Height.Int64
	}
	if img.AltText.Valid {
		resp.AltText = img.AltText.String
	}
	return resp
}

// ListUploads returns one page of uploaded images, newest first.
func (h *Handler) ListUploads(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r, store.DefaultImagePageSize)

	result, err := h.media.List(r.Context(), int64(page), int64(limit))
	if err != nil {
		h.logger.Error("listing uploads failed", "error", err)
		WriteInternalError(w, "Failed to list uploads")
		return
	}

	responses := make([]ImageResponse, 0, len(result.Images))
	for _, img := range result.Images {
		responses = append(responses, storeImageToResponse(img))
	}

	WriteSuccess(w, responses, paginationMeta(result.Pagination))
}

// Upload accepts a multipart form with an "image" file field and an
// optional "alt_text" value, stores the file with a thumbnail variant and
// records it.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		WriteBadRequest(w, "No image provided", nil)
		return
	}
	defer func() { _ = file.Close() }()

	image, err := h.media.Upload(r.Context(), file, header, r.FormValue("alt_text"))
	if err != nil {
		if errors.Is(err, store.ErrQueryFailed) || store.IsUniqueViolation(err) {
			h.logger.Error("upload failed", "error", err)
			WriteInternalError(w, "Failed to store upload")
			return
		}
		// Size, type and decoding failures are the caller's to fix.
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	h.logger.Info("image uploaded", "filename", image.Filename, "size", image.Size)
	WriteCreated(w, storeImageToResponse(image))
}

// DeleteUpload removes an uploaded image and its files.
func (h *Handler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if err := h.media.Delete(r.Context(), filename); err != nil {
		h.writeStoreError(w, err, "Image not found", "")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Image deleted"}, nil)
}
