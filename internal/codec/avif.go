package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/gen2brain/avif"
	"golang.org/x/image/draw"
)

// DefaultSpeed is the default AVIF encoder speed (0-10, lower is slower and
// better quality).
const DefaultSpeed = 6

// AVIF is the production Codec backed by github.com/gen2brain/avif.
type AVIF struct {
	Speed             int
	ChromaSubsampling image.YCbCrSubsampleRatio
}

// NewAVIF returns an AVIF codec with the given encoder speed.
func NewAVIF(speed int) *AVIF {
	return &AVIF{
		Speed:             speed,
		ChromaSubsampling: image.YCbCrSubsampleRatio420,
	}
}

// Decode parses PNG or JPEG bytes, normalizes the pixel buffer for encoding,
// and extracts the embedded ICC profile when one is present.
func (c *AVIF) Decode(data []byte, format SourceFormat) (*DecodedImage, error) {
	var (
		img image.Image
		err error
	)
	switch format {
	case FormatPNG:
		img, err = png.Decode(bytes.NewReader(data))
	case FormatJPEG:
		img, err = jpeg.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("no decoder for format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}

	pixels, hasAlpha := normalize(img)

	return &DecodedImage{
		Pixels:     pixels,
		HasAlpha:   hasAlpha,
		ICCProfile: ExtractICC(data, format),
	}, nil
}

// Encode produces AVIF bytes for a decoded image. Alpha rides along in the
// NRGBA pixel buffer and is encoded at the same quality as the color planes.
// The ICC profile is surfaced through DecodedImage for callers that request
// preservation; the underlying encoder has no profile pass-through, so the
// profile does not reach the output container.
func (c *AVIF) Encode(img *DecodedImage, opts EncodeOptions) ([]byte, error) {
	o := avif.Options{
		Quality:           opts.Quality,
		QualityAlpha:      opts.Quality,
		Speed:             c.Speed,
		ChromaSubsampling: c.ChromaSubsampling,
	}

	var buf bytes.Buffer
	if err := avif.Encode(&buf, img.Pixels, o); err != nil {
		return nil, fmt.Errorf("encoding avif: %w", err)
	}
	return buf.Bytes(), nil
}

// normalize converts arbitrary decoded pixel formats (paletted, gray,
// 16-bit, CMYK) into a buffer the encoder handles uniformly, and reports
// whether the image carries a non-opaque alpha channel. NRGBA/RGBA and
// JPEG's native YCbCr pass through untouched.
func normalize(src image.Image) (image.Image, bool) {
	switch img := src.(type) {
	case *image.NRGBA:
		return img, !img.Opaque()
	case *image.RGBA:
		return img, !img.Opaque()
	case *image.YCbCr:
		return img, false
	}

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, !dst.Opaque()
}
