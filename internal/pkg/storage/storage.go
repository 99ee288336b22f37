// Package storage abstracts where uploaded facility media lives. The booking
// service only ships with a local-disk backend, but services depend on the
// interface so an object store can slot in later.
package storage

import (
	"context"
	"io"
)

// Storage reads and writes files addressed by a relative path.
type Storage interface {
	Save(ctx context.Context, path string, content io.Reader) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}
