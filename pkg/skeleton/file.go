package skeleton

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads a structure description from the local filesystem
type FileSource struct {
	Path string
}

// NewFileSource creates a file-backed source
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch reads the file, mapping a missing file to ErrNotFound
func (f *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, f.Path)
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Location returns the file path
func (f *FileSource) Location() string {
	return f.Path
}
