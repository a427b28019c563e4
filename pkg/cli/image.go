package cli

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	// register the WebP decoder with image.Decode
	_ "golang.org/x/image/webp"
)

// LoadImage decodes the file at path, applying the EXIF orientation when the
// file carries one. PNG, JPEG, GIF, BMP, TIFF and WebP are accepted.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return img, nil
}

// CheckOutputPath reports whether SaveImage can encode to path, so a long
// run is not wasted on an unsupported extension.
func CheckOutputPath(path string) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("cannot write %s (use .png, .jpg, .gif, .bmp or .tif): %w", path, err)
	}
	return nil
}

// SaveImage encodes img with the format inferred from the filename extension.
func SaveImage(path string, img image.Image) error {
	if err := CheckOutputPath(path); err != nil {
		return err
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(92)); err != nil {
		return fmt.Errorf("failed to write image %s: %w", path, err)
	}
	return nil
}

// imageInfo returns a short description such as "photo.jpg: JPEG 640x480".
func imageInfo(path string, img image.Image) string {
	b := img.Bounds()
	format := strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		format = "unknown"
	}
	return fmt.Sprintf("%s: %s %dx%d", filepath.Base(path), format, b.Dx(), b.Dy())
}
