package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"avifbatch/internal/codec"
)

// Converter turns one Task into one Outcome. Its only side effect is the
// destination file write, so a single Converter is safe to share across
// workers.
type Converter struct {
	Codec codec.Codec
}

// NewConverter returns a Converter backed by the given codec.
func NewConverter(c codec.Codec) *Converter {
	return &Converter{Codec: c}
}

// Convert runs one conversion end to end. Every failure is captured in the
// returned Outcome; the call never propagates an error to the caller.
func (c *Converter) Convert(task Task) Outcome {
	format, ok := codec.FormatForPath(task.Source)
	if !ok {
		return Failed(task.Source, KindUnsupportedFormat,
			fmt.Sprintf("unsupported format: %s", filepath.Ext(task.Source)))
	}

	if !task.Overwrite {
		if _, err := os.Stat(task.Dest); err == nil {
			return Failed(task.Source, KindAlreadyExists,
				fmt.Sprintf("output exists (use --overwrite): %s", task.Dest))
		}
	}

	data, err := os.ReadFile(task.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return Failed(task.Source, KindNotFound, fmt.Sprintf("file not found: %s", task.Source))
		}
		return Failed(task.Source, KindIOError, err.Error())
	}

	img, err := c.Codec.Decode(data, format)
	if err != nil {
		return Failed(task.Source, KindDecodeError, err.Error())
	}

	encoded, err := c.Codec.Encode(img, codec.EncodeOptions{
		Quality:         task.Quality,
		PreserveAlpha:   img.HasAlpha,
		PreserveProfile: len(img.ICCProfile) > 0,
	})
	if err != nil {
		return Failed(task.Source, KindEncodeError, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(task.Dest), 0o755); err != nil {
		return Failed(task.Source, KindIOError, err.Error())
	}
	if err := os.WriteFile(task.Dest, encoded, 0o644); err != nil {
		return Failed(task.Source, KindIOError, err.Error())
	}

	return Succeeded(task.Source, task.Dest, int64(len(encoded)), int64(len(data)))
}
