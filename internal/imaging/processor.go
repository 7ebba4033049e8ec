// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging decodes, orients and resizes uploaded images using
// pure Go codecs.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/util"
)

// ThumbDir is the subdirectory of the uploads dir holding thumbnails.
const ThumbDir = "thumbs"

// Thumbnail bounds. Thumbnails fit within this box keeping aspect ratio.
const (
	thumbWidth  = 400
	thumbHeight = 400
)

// jpegQuality is the encode quality for re-encoded originals and thumbnails.
const jpegQuality = 90

// ProcessResult contains the result of processing an uploaded image.
type ProcessResult struct {
	Width    int
	Height   int
	MimeType string
	Size     int64
	FilePath string
}

// Processor handles image processing for the uploads directory. Originals
// are stored flat under the uploads dir, thumbnails under ThumbDir.
type Processor struct {
	uploadDir string
}

// NewProcessor creates a new image processor rooted at uploadDir.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{
		uploadDir: uploadDir,
	}
}

// ProcessImage decodes an uploaded image, applies EXIF orientation,
// re-encodes it without metadata and saves both the original and a
// thumbnail under the uploads directory.
func (p *Processor) ProcessImage(reader io.Reader, filename string) (*ProcessResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	// Read EXIF orientation and auto-rotate
	orientation := readExifOrientation(bytes.NewReader(data))
	img = applyOrientation(img, orientation)

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Re-encode without EXIF (pure Go encoders don't preserve metadata)
	processed, err := encodeImage(img, format, jpegQuality)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	filePath, err := p.saveImageFile("", filename, processed)
	if err != nil {
		return nil, fmt.Errorf("saving original image: %w", err)
	}

	if err := p.createThumbnail(img, format, filename); err != nil {
		return nil, fmt.Errorf("creating thumbnail: %w", err)
	}

	return &ProcessResult{
		Width:    width,
		Height:   height,
		MimeType: formatToMimeType(format),
		Size:     int64(len(processed)),
		FilePath: filePath,
	}, nil
}

// createThumbnail writes a variant fitting within the thumbnail bounds.
// Images already smaller than the bounds are saved as-is.
func (p *Processor) createThumbnail(img image.Image, format, filename string) error {
	bounds := img.Bounds()
	if bounds.Dx() > thumbWidth || bounds.Dy() > thumbHeight {
		img = imaging.Fit(img, thumbWidth, thumbHeight, imaging.Lanczos)
	}

	data, err := encodeImage(img, format, jpegQuality)
	if err != nil {
		return err
	}

	_, err = p.saveImageFile(ThumbDir, filename, data)
	return err
}

// GetImageDimensions returns the dimensions of an image file.
func (p *Processor) GetImageDimensions(path string) (width, height int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening image: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Decode config only for efficiency (doesn't decode full image)
	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("reading image config: %w", err)
	}

	return config.Width, config.Height, nil
}

// IsSupportedType checks if a MIME type is supported for upload.
func (p *Processor) IsSupportedType(mimeType string) bool {
	switch mimeType {
	case model.MimeTypeJPEG, model.MimeTypePNG, model.MimeTypeGIF, model.MimeTypeWebP:
		return true
	default:
		return false
	}
}

// DetectMimeType detects the MIME type of image data.
func (p *Processor) DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	// http.DetectContentType returns types like "image/jpeg; charset=utf-8"
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}

// DeleteImageFiles removes the original and thumbnail for a filename.
func (p *Processor) DeleteImageFiles(filename string) error {
	safe, err := util.SanitizeFilename(filename)
	if err != nil {
		return err
	}

	original := filepath.Join(p.uploadDir, safe)
	if err := os.Remove(original); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting original: %w", err)
	}

	thumb := filepath.Join(p.uploadDir, ThumbDir, safe)
	if err := os.Remove(thumb); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting thumbnail: %w", err)
	}

	return nil
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation applies EXIF orientation transformation to an image.
// Orientation values:
// 1: Normal
// 2: Flip horizontal
// 3: Rotate 180
// 4: Flip vertical
// 5: Rotate 90 CW + flip horizontal
// 6: Rotate 90 CW
// 7: Rotate 90 CCW + flip horizontal
// 8: Rotate 90 CCW
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage encodes an image to bytes with the specified format and quality.
func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	case "webp":
		// WebP decoding is supported but encoding is not in pure Go.
		// Convert to JPEG for output.
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// formatToMimeType converts format string to MIME type.
func formatToMimeType(format string) string {
	switch format {
	case "jpeg", "jpg":
		return model.MimeTypeJPEG
	case "png":
		return model.MimeTypePNG
	case "gif":
		return model.MimeTypeGIF
	case "webp":
		return model.MimeTypeWebP
	default:
		return "application/octet-stream"
	}
}

// saveImageFile creates the directory if needed and saves image data to a file.
// The filename is sanitized and the target directory is validated to be within uploadDir.
func (p *Processor) saveImageFile(subDir, filename string, data []byte) (string, error) {
	safeFilename, err := util.SanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	absBase, err := filepath.Abs(p.uploadDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}

	absTarget, err := util.SafeJoinPath(absBase, subDir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(absTarget, 0755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}

	filePath := filepath.Join(absTarget, safeFilename)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}
	return filePath, nil
}
