// Package convert implements the per-file conversion step: one source image
// in, one AVIF file out, with the result captured as data rather than a
// propagating error.
package convert

import (
	"path/filepath"
	"strings"
)

// ErrorKind classifies why a single conversion failed.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"          // Input path does not exist.
	KindUnsupportedFormat ErrorKind = "unsupported_format" // Extension is not .png/.jpg/.jpeg.
	KindDecodeError       ErrorKind = "decode_error"       // Source bytes could not be parsed.
	KindEncodeError       ErrorKind = "encode_error"       // AVIF encoding failed.
	KindAlreadyExists     ErrorKind = "already_exists"     // Destination present, overwrite disabled.
	KindIOError           ErrorKind = "io_error"           // Filesystem read/write fault.
)

// Task describes one pending conversion. It is immutable once built and is
// consumed by exactly one worker.
type Task struct {
	Source    string
	Dest      string
	Quality   int
	Overwrite bool
}

// Outcome is the terminal result of processing one task. Exactly one of the
// success and failure halves is meaningful, selected by OK.
type Outcome struct {
	Source string
	Dest   string

	// Success fields.
	OK           bool
	BytesWritten int64
	SourceBytes  int64

	// Failure fields.
	Kind    ErrorKind
	Message string
}

// Filename returns the base name of the source file.
func (o Outcome) Filename() string {
	return filepath.Base(o.Source)
}

// Succeeded builds a success outcome for source converted to dest.
func Succeeded(source, dest string, bytesWritten, sourceBytes int64) Outcome {
	return Outcome{
		Source:       source,
		Dest:         dest,
		OK:           true,
		BytesWritten: bytesWritten,
		SourceBytes:  sourceBytes,
	}
}

// Failed builds a failure outcome for source with the given kind and message.
func Failed(source string, kind ErrorKind, message string) Outcome {
	return Outcome{
		Source:  source,
		Kind:    kind,
		Message: message,
	}
}

// OutputPath computes the destination for a source file: the source stem with
// an .avif extension, placed in outputDir when set or alongside the source
// otherwise.
func OutputPath(source, outputDir string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(source)
	}
	return filepath.Join(dir, stem+".avif")
}
