package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/gen2brain/avif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func transparentNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{}) // fully transparent corner
	return img
}

func opaqueNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	return img
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path   string
		want   SourceFormat
		wantOK bool
	}{
		{"a.png", FormatPNG, true},
		{"a.PNG", FormatPNG, true},
		{"a.jpg", FormatJPEG, true},
		{"a.JPEG", FormatJPEG, true},
		{"dir/b.jpeg", FormatJPEG, true},
		{"a.webp", 0, false},
		{"a.avif", 0, false},
		{"a", 0, false},
	}
	for _, tt := range tests {
		got, ok := FormatForPath(tt.path)
		require.Equal(t, tt.wantOK, ok, tt.path)
		if ok {
			assert.Equal(t, tt.want, got, tt.path)
		}
	}
}

func TestDecodePNGReportsAlpha(t *testing.T) {
	c := NewAVIF(DefaultSpeed)

	img, err := c.Decode(encodePNG(t, transparentNRGBA()), FormatPNG)
	require.NoError(t, err)

	assert.True(t, img.HasAlpha)
	assert.Nil(t, img.ICCProfile)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Pixels.Bounds())
}

func TestDecodeOpaquePNGHasNoAlpha(t *testing.T) {
	c := NewAVIF(DefaultSpeed)

	img, err := c.Decode(encodePNG(t, opaqueNRGBA()), FormatPNG)
	require.NoError(t, err)

	assert.False(t, img.HasAlpha)
}

func TestDecodeJPEGHasNoAlpha(t *testing.T) {
	c := NewAVIF(DefaultSpeed)

	img, err := c.Decode(encodeJPEG(t, opaqueNRGBA()), FormatJPEG)
	require.NoError(t, err)

	assert.False(t, img.HasAlpha)
}

func TestDecodeCorruptInput(t *testing.T) {
	c := NewAVIF(DefaultSpeed)

	_, err := c.Decode([]byte("definitely not an image"), FormatPNG)
	require.Error(t, err)

	_, err = c.Decode([]byte{0xff, 0xd8, 0x00}, FormatJPEG)
	require.Error(t, err)
}

func TestDecodeWrongFormatForBytes(t *testing.T) {
	c := NewAVIF(DefaultSpeed)

	// PNG bytes declared as JPEG must fail decode, not be sniffed.
	_, err := c.Decode(encodePNG(t, opaqueNRGBA()), FormatJPEG)
	require.Error(t, err)
}

func TestNormalizePaletted(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 3, 3), color.Palette{
		color.NRGBA{R: 255, A: 255},
		color.NRGBA{G: 255, A: 255},
	})
	pal.SetColorIndex(1, 1, 1)

	got, hasAlpha := normalize(pal)

	assert.IsType(t, &image.NRGBA{}, got)
	assert.False(t, hasAlpha)
	assert.Equal(t, pal.Bounds(), got.Bounds())
}

func TestNormalizeGray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))

	got, hasAlpha := normalize(gray)

	assert.IsType(t, &image.NRGBA{}, got)
	assert.False(t, hasAlpha)
}

func TestNormalizePassthrough(t *testing.T) {
	src := transparentNRGBA()

	got, hasAlpha := normalize(src)

	assert.Same(t, src, got.(*image.NRGBA))
	assert.True(t, hasAlpha)
}

func TestEncodeRoundTrip(t *testing.T) {
	c := NewAVIF(10) // fastest speed, this is a correctness test

	src := &DecodedImage{Pixels: opaqueNRGBA()}
	out, err := c.Encode(src, EncodeOptions{Quality: 60})
	require.NoError(t, err)
	require.NotEmpty(t, out)

	decoded, err := avif.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), decoded.Bounds())
}

func TestEncodeWithAlpha(t *testing.T) {
	c := NewAVIF(10)

	src := &DecodedImage{Pixels: transparentNRGBA(), HasAlpha: true}
	out, err := c.Encode(src, EncodeOptions{Quality: 60, PreserveAlpha: true})
	require.NoError(t, err)

	decoded, err := avif.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	// The transparent corner must survive the round trip.
	_, _, _, a := decoded.At(0, 0).RGBA()
	assert.Less(t, a, uint32(0x8000))
}
