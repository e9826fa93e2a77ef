// Package imaging turns inbound image payloads into canonical RGB rasters.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrDecode marks payloads that cannot be parsed as an image.
var ErrDecode = errors.New("image decode failed")

// Raster is an immutable 8-bit RGB image produced by the decoder.
// Alpha is discarded and all source color modes are normalized to RGB.
type Raster struct {
	img *image.RGBA
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int {
	return r.img.Bounds().Dx()
}

// Height returns the raster height in pixels.
func (r *Raster) Height() int {
	return r.img.Bounds().Dy()
}

// Image returns the underlying image for encoding. Callers must not mutate it.
func (r *Raster) Image() image.Image {
	return r.img
}

// Decode parses raw image bytes (JPEG, PNG, GIF, BMP, WebP) into an RGB raster.
func Decode(data []byte) (*Raster, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrDecode)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &Raster{img: toRGB(img)}, nil
}

// DecodeString parses a base64 string or data URI into an RGB raster.
// If the text contains a comma, everything up to the first comma is treated
// as a URI prefix and only the remainder is decoded. Binary data cannot
// produce a raw comma in base64 text, so this split never truncates payloads.
func DecodeString(s string) (*Raster, error) {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrDecode)
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// Some clients strip the padding; retry without it.
		raw, err = base64.RawStdEncoding.DecodeString(s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", ErrDecode, err)
	}

	return Decode(raw)
}

// EncodeJPEG re-encodes a raster as JPEG for transport to the recognition backend.
func EncodeJPEG(r *Raster) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, r.img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// toRGB normalizes any decoded image to opaque 8-bit RGB.
func toRGB(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)

	// Drop the alpha channel.
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xFF
	}
	return dst
}
