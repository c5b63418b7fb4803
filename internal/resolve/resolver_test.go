package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"avifbatch/internal/convert"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

// fixtureTree builds:
//
//	root/a.png
//	root/B.JPG
//	root/notes.txt
//	root/sub/c.jpeg
//	root/sub/deep/d.png
func fixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.png"))
	touch(t, filepath.Join(root, "B.JPG"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "sub", "c.jpeg"))
	touch(t, filepath.Join(root, "sub", "deep", "d.png"))
	return root
}

func TestResolveRecursive(t *testing.T) {
	root := fixtureTree(t)
	r := &Resolver{Recursive: true}

	files, failures := r.Resolve([]string{root})

	require.Empty(t, failures)
	assert.Equal(t, []string{
		filepath.Join(root, "B.JPG"),
		filepath.Join(root, "a.png"),
		filepath.Join(root, "sub", "c.jpeg"),
		filepath.Join(root, "sub", "deep", "d.png"),
	}, files)
}

func TestResolveNonRecursive(t *testing.T) {
	root := fixtureTree(t)
	r := &Resolver{Recursive: false}

	files, failures := r.Resolve([]string{root})

	require.Empty(t, failures)
	assert.Equal(t, []string{
		filepath.Join(root, "B.JPG"),
		filepath.Join(root, "a.png"),
	}, files)
}

func TestResolveDirectFileSkipsRecursiveFlag(t *testing.T) {
	root := fixtureTree(t)
	r := &Resolver{Recursive: false}

	// A file argument is always included, even below a directory that the
	// non-recursive walk would not reach.
	deep := filepath.Join(root, "sub", "deep", "d.png")
	files, failures := r.Resolve([]string{deep})

	require.Empty(t, failures)
	assert.Equal(t, []string{deep}, files)
}

func TestResolveMissingPath(t *testing.T) {
	r := &Resolver{Recursive: true}

	files, failures := r.Resolve([]string{filepath.Join(t.TempDir(), "nope.png")})

	assert.Empty(t, files)
	require.Len(t, failures, 1)
	assert.Equal(t, convert.KindNotFound, failures[0].Kind)
}

func TestResolveUnsupportedFile(t *testing.T) {
	root := fixtureTree(t)
	r := &Resolver{Recursive: true}

	files, failures := r.Resolve([]string{filepath.Join(root, "notes.txt")})

	assert.Empty(t, files)
	require.Len(t, failures, 1)
	assert.Equal(t, convert.KindUnsupportedFormat, failures[0].Kind)
}

func TestResolveMixedInputs(t *testing.T) {
	root := fixtureTree(t)
	r := &Resolver{Recursive: true}

	files, failures := r.Resolve([]string{
		filepath.Join(root, "a.png"),
		filepath.Join(root, "sub"),
		filepath.Join(root, "missing.jpg"),
	})

	assert.Equal(t, []string{
		filepath.Join(root, "a.png"),
		filepath.Join(root, "sub", "c.jpeg"),
		filepath.Join(root, "sub", "deep", "d.png"),
	}, files)
	require.Len(t, failures, 1)
	assert.Equal(t, convert.KindNotFound, failures[0].Kind)
}

func TestResolveDeduplicates(t *testing.T) {
	root := fixtureTree(t)
	r := &Resolver{Recursive: true}

	a := filepath.Join(root, "a.png")
	files, failures := r.Resolve([]string{a, a, root})

	require.Empty(t, failures)
	count := 0
	for _, f := range files {
		if f == a {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Len(t, files, 4)
}

func TestResolveEmptyDirectory(t *testing.T) {
	r := &Resolver{Recursive: true}

	files, failures := r.Resolve([]string{t.TempDir()})

	assert.Empty(t, files)
	assert.Empty(t, failures)
}

func TestResolveDeterministicOrder(t *testing.T) {
	root := fixtureTree(t)
	r := &Resolver{Recursive: true}

	first, _ := r.Resolve([]string{root})
	for i := 0; i < 5; i++ {
		again, _ := r.Resolve([]string{root})
		require.Equal(t, first, again)
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.png", true},
		{"a.PNG", true},
		{"a.jpg", true},
		{"a.JPEG", true},
		{"a.webp", false},
		{"a.gif", false},
		{"a.avif", false},
		{"noext", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Supported(tt.path), tt.path)
	}
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".jpeg", ".jpg", ".png"}, Extensions())
}
