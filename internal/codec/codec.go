// Package codec wraps image decoding and AVIF encoding behind a narrow
// interface so the conversion pipeline can be tested without touching a real
// encoder.
package codec

import (
	"image"
	"path/filepath"
	"strings"
)

// SourceFormat identifies the container of the input bytes. The format is
// resolved from the file extension rather than sniffed at runtime.
type SourceFormat int

const (
	FormatPNG SourceFormat = iota
	FormatJPEG
)

func (f SourceFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	}
	return "unknown"
}

// FormatForPath maps a file extension (case-insensitive) to its source
// format. The second return is false for unsupported extensions.
func FormatForPath(path string) (SourceFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, true
	case ".jpg", ".jpeg":
		return FormatJPEG, true
	}
	return 0, false
}

// DecodedImage is a decoded source image plus the metadata the encoder needs
// to preserve.
type DecodedImage struct {
	Pixels     image.Image
	HasAlpha   bool
	ICCProfile []byte // nil when the source carries no profile
}

// EncodeOptions carries the per-task encode parameters.
type EncodeOptions struct {
	Quality         int // 0-100
	PreserveAlpha   bool
	PreserveProfile bool
}

// Codec decodes PNG/JPEG bytes and encodes AVIF bytes. Both calls are
// fallible; neither mutates shared state, so one Codec may serve any number
// of concurrent workers.
type Codec interface {
	Decode(data []byte, format SourceFormat) (*DecodedImage, error)
	Encode(img *DecodedImage, opts EncodeOptions) ([]byte, error)
}
