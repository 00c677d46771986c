package graph

import (
	"io"
	"os"
	"path/filepath"
)

// FileUpload is a named byte source attached to a multipart request. It can
// wrap an already open stream or a filesystem path that is opened lazily when
// the request is sent. The stream is consumed and closed exactly once per
// exchange, whether the exchange succeeds or fails.
type FileUpload struct {
	// Name is the file name reported in the multipart part.
	Name string
	// Reader is the byte source. Leave nil to have Path opened instead.
	Reader io.ReadCloser
	// Path is a filesystem path resolved into a stream when Reader is nil.
	Path string
}

// NewFileUpload wraps an open stream.
func NewFileUpload(name string, r io.ReadCloser) *FileUpload {
	return &FileUpload{Name: name, Reader: r}
}

// NewFileUploadFromPath defers opening the file until the request is sent.
func NewFileUploadFromPath(path string) *FileUpload {
	return &FileUpload{Path: path}
}

// open resolves the upload into a ready stream. When the upload was built
// from a path the file is opened here and its base name fills in Name.
func (f *FileUpload) open() (io.ReadCloser, error) {
	if f.Reader != nil {
		return f.Reader, nil
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	if f.Name == "" {
		f.Name = filepath.Base(f.Path)
	}
	return file, nil
}
