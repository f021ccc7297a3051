package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidPath = errors.New("invalid file path")

type FileStorage interface {
	// Upload stores file under path and returns the stored key
	Upload(ctx context.Context, file io.Reader, path string) (string, error)

	// Delete removes a file; missing files are not an error
	Delete(ctx context.Context, path string) error

	// GetURL returns a URL the frontend can fetch the file from
	GetURL(ctx context.Context, path string) (string, error)
}
