// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
)

// multipartPNG builds a multipart body carrying a generated PNG in the
// given field, plus an optional alt_text value.
func multipartPNG(t *testing.T, field, filename, altText string) (*bytes.Buffer, string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create form part: %v", err)
	}
	if _, err := part.Write(encoded.Bytes()); err != nil {
		t.Fatalf("failed to write form part: %v", err)
	}

	if altText != "" {
		if err := writer.WriteField("alt_text", altText); err != nil {
			t.Fatalf("failed to write alt_text field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return &body, writer.FormDataContentType()
}

// uploadRequest runs a multipart request through the router.
func (e *testEnv) uploadRequest(t *testing.T, body *bytes.Buffer, contentType, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestUpload(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	body, contentType := multipartPNG(t, "image", "photo.png", "A test photo")
	rec := env.uploadRequest(t, body, contentType, token)
	wantStatus(t, rec, http.StatusCreated)

	var img ImageResponse
	decodeData(t, rec, &img)
	if img.OriginalName != "photo.png" {
		t.Errorf("original_name = %q, want %q", img.OriginalName, "photo.png")
	}
	if img.Filename == "photo.png" || !strings.HasSuffix(img.Filename, ".png") {
		t.Errorf("filename = %q, want an anonymized .png name", img.Filename)
	}
	if img.Width == nil || *img.Width != 640 {
		t.Errorf("width = %v, want 640", img.Width)
	}
	if img.AltText != "A test photo" {
		t.Errorf("alt_text = %q, want %q", img.AltText, "A test photo")
	}
	if !strings.HasPrefix(img.URL, "/uploads/") {
		t.Errorf("url = %q, want /uploads/ prefix", img.URL)
	}
	if !strings.HasPrefix(img.ThumbnailURL, "/uploads/thumbs/") {
		t.Errorf("thumbnail_url = %q, want /uploads/thumbs/ prefix", img.ThumbnailURL)
	}
}

func TestUpload_MissingFile(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	body, contentType := multipartPNG(t, "document", "photo.png", "")
	rec := env.uploadRequest(t, body, contentType, token)
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestUpload_UnsupportedType(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="doc.pdf"`)
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create form part: %v", err)
	}
	_, _ = part.Write([]byte("%PDF-1.4"))
	_ = writer.Close()

	rec := env.uploadRequest(t, &body, writer.FormDataContentType(), token)
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestUpload_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartPNG(t, "image", "photo.png", "")
	rec := env.uploadRequest(t, body, contentType, "")
	wantStatus(t, rec, http.StatusUnauthorized)
}

func TestListUploads(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	for i := 0; i < 3; i++ {
		body, contentType := multipartPNG(t, "image", fmt.Sprintf("photo%d.png", i), "")
		wantStatus(t, env.uploadRequest(t, body, contentType, token), http.StatusCreated)
	}

	rec := env.request(t, http.MethodGet, "/uploads?page=1&limit=2", nil, token)
	wantStatus(t, rec, http.StatusOK)

	var list []ImageResponse
	decodeData(t, rec, &list)
	if len(list) != 2 {
		t.Fatalf("page 1 = %d images, want 2", len(list))
	}

	meta := decodeMeta(t, rec)
	if meta.Total != 3 {
		t.Errorf("total = %d, want 3", meta.Total)
	}
	if meta.Pages != 2 {
		t.Errorf("pages = %d, want 2", meta.Pages)
	}
}

func TestDeleteUpload(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	body, contentType := multipartPNG(t, "image", "photo.png", "")
	rec := env.uploadRequest(t, body, contentType, token)
	wantStatus(t, rec, http.StatusCreated)

	var img ImageResponse
	decodeData(t, rec, &img)

	del := env.request(t, http.MethodDelete, "/uploads/"+img.Filename, nil, token)
	wantStatus(t, del, http.StatusOK)

	again := env.request(t, http.MethodDelete, "/uploads/"+img.Filename, nil, token)
	wantStatus(t, again, http.StatusNotFound)
}
