// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/store"
)

func setupMediaService(t *testing.T) *MediaService {
	t.Helper()
	dir := t.TempDir()

	st, err := store.Open(filepath.Join(dir, "portfolio.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return NewMediaService(st, filepath.Join(dir, "uploads"), 5*1024*1024)
}

// pngUpload builds a multipart file pair around an in-memory PNG.
func pngUpload(t *testing.T, name string, width, height int) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	header := &multipart.FileHeader{
		Filename: name,
		Size:     int64(buf.Len()),
		Header:   textproto.MIMEHeader{"Content-Type": []string{model.MimeTypePNG}},
	}
	return sectionFile{bytes.NewReader(buf.Bytes())}, header
}

// sectionFile adapts a bytes.Reader to multipart.File.
type sectionFile struct {
	*bytes.Reader
}

func (sectionFile) Close() error { return nil }

func TestMediaService_Upload(t *testing.T) {
	svc := setupMediaService(t)
	ctx := context.Background()

	file, header := pngUpload(t, "photo.png", 640, 480)
	img, err := svc.Upload(ctx, file, header, "a test photo")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(img.Filename, ".png"))
	assert.NotEqual(t, "photo.png", img.Filename, "stored filename must be anonymized")
	assert.Equal(t, "photo.png", img.OriginalName)
	assert.Equal(t, model.MimeTypePNG, img.MimeType)
	assert.Equal(t, int64(640), img.Width.Int64)
	assert.Equal(t, int64(480), img.Height.Int64)
	assert.Equal(t, "a test photo", img.AltText.String)
}

func TestMediaService_Upload_RejectsOversized(t *testing.T) {
	svc := setupMediaService(t)

	file, header := pngUpload(t, "big.png", 64, 64)
	header.Size = 100 * 1024 * 1024

	_, err := svc.Upload(context.Background(), file, header, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestMediaService_Upload_RejectsUnsupportedType(t *testing.T) {
	svc := setupMediaService(t)

	file, header := pngUpload(t, "doc.pdf", 64, 64)
	header.Header.Set("Content-Type", "application/pdf")

	_, err := svc.Upload(context.Background(), file, header, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestMediaService_DeleteAndList(t *testing.T) {
	svc := setupMediaService(t)
	ctx := context.Background()

	file, header := pngUpload(t, "photo.png", 64, 64)
	img, err := svc.Upload(ctx, file, header, "")
	require.NoError(t, err)

	page, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Images, 1)
	assert.Equal(t, int64(1), page.Pagination.Total)

	require.NoError(t, svc.Delete(ctx, img.Filename))

	page, err = svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Images)

	assert.ErrorIs(t, svc.Delete(ctx, img.Filename), store.ErrNotFound)
}
