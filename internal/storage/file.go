package storage

import (
	"io"
	"os"
	"path/filepath"
)

// File keeps the task snapshot as a JSON document on disk.
type File struct {
	Path string
}

// NewFile returns a file target for path.
func NewFile(path string) File {
	return File{Path: path}
}

func (f File) OpenReader() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// OpenWriter truncates the file, creating its directory if needed.
func (f File) OpenWriter() (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(f.Path)
}
