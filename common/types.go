// package common contains common types that are used throughout this module. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// ImageSource points at a single raster image, either embedded bytes or a file on disk.
// Gallery thumbnails and the lightbox image are described with it.
type ImageSource struct {
	// Name is an identifier for this image (e.g., the gallery item id).
	Name string

	// Path is the file path for images on disk (empty for embedded).
	Path string

	// Data contains raw encoded image bytes (PNG/JPEG) for embedded images.
	Data []byte

	// Width is the image width in pixels (populated after Decode).
	Width int

	// Height is the image height in pixels (populated after Decode).
	Height int
}

// Decode decodes the image to raw RGBA pixel data.
// Uses either embedded Data bytes or loads from Path on disk.
// Supports PNG and JPEG formats.
// Reference: https://pkg.go.dev/image
//
// Returns:
//   - []byte: raw RGBA pixel data (4 bytes per pixel, row-major order)
//   - uint32: image width in pixels
//   - uint32: image height in pixels
//   - error: error if decoding fails
func (s *ImageSource) Decode() ([]byte, uint32, uint32, error) {
	if s == nil {
		return nil, 0, 0, fmt.Errorf("image source is nil")
	}

	var img image.Image
	var err error

	if len(s.Data) > 0 {
		img, _, err = image.Decode(bytes.NewReader(s.Data))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode embedded image %q: %w", s.Name, err)
		}
	} else if s.Path != "" {
		file, fileErr := os.Open(s.Path)
		if fileErr != nil {
			return nil, 0, 0, fmt.Errorf("failed to open image file %s: %w", s.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode image file %s: %w", s.Path, err)
		}
	} else {
		return nil, 0, 0, fmt.Errorf("image %q has neither data nor path", s.Name)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	s.Width = width
	s.Height = height

	return rgba.Pix, uint32(width), uint32(height), nil
}
