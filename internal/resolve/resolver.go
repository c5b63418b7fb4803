// Package resolve expands user-supplied file and directory arguments into a
// deterministic list of candidate image files.
package resolve

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"avifbatch/internal/convert"
)

// Supported input extensions (lowercase, with leading dot).
var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Supported reports whether path has a supported input extension
// (case-insensitive).
func Supported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Extensions returns the supported input extensions sorted lexicographically.
func Extensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Resolver expands input arguments into candidate files.
type Resolver struct {
	Recursive bool
}

// Resolve walks the given inputs and returns the deduplicated, sorted list
// of image files plus one failure outcome per input that could not be
// resolved. A file argument is included directly after the extension check;
// a directory is enumerated recursively or one level deep depending on
// Recursive; a missing path becomes a NotFound failure rather than aborting
// the run.
func (r *Resolver) Resolve(inputs []string) ([]string, []convert.Outcome) {
	var files []string
	var failures []convert.Outcome

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			if os.IsNotExist(err) {
				failures = append(failures, convert.Failed(input, convert.KindNotFound,
					fmt.Sprintf("path not found: %s", input)))
			} else {
				failures = append(failures, convert.Failed(input, convert.KindIOError, err.Error()))
			}
			continue
		}

		if !info.IsDir() {
			if !Supported(input) {
				failures = append(failures, convert.Failed(input, convert.KindUnsupportedFormat,
					fmt.Sprintf("unsupported format: %s", filepath.Ext(input))))
				continue
			}
			files = append(files, input)
			continue
		}

		found, err := r.collect(input)
		if err != nil {
			failures = append(failures, convert.Failed(input, convert.KindIOError, err.Error()))
			continue
		}
		files = append(files, found...)
	}

	return dedupe(files), failures
}

// collect enumerates supported files under dir.
func (r *Resolver) collect(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !r.Recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if Supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// dedupe removes duplicate entries (compared by absolute path) and sorts the
// result so repeated runs over the same tree produce the same task order.
func dedupe(files []string) []string {
	seen := make(map[string]bool, len(files))
	unique := files[:0:0]
	for _, f := range files {
		key := f
		if abs, err := filepath.Abs(f); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, f)
	}
	sort.Strings(unique)
	return unique
}
