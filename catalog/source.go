package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Source provides the raw bytes of a catalog document. The core reads the
// catalog wholesale on every startup; it never streams or patches it.
// Implementations must be safe for concurrent use.
type Source interface {
	// ReadAll returns the complete raw bytes of the catalog document.
	// Returns ErrNotFound if no catalog exists in the source.
	ReadAll(ctx context.Context) ([]byte, error)
}

// FileSource reads the catalog from a file on disk.
type FileSource struct {
	path string
}

var _ Source = (*FileSource)(nil)

// NewFileSource creates a source backed by the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// ReadAll reads the whole catalog file.
func (s *FileSource) ReadAll(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, err
	}
	return raw, nil
}
