// Package storage holds the blob stores that back uploaded images.
package storage

import (
	"context"
	"io"
	"path"
)

// BlobStore persists uploaded files. Put returns the public path recorded on
// the image row; Delete accepts that same path.
type BlobStore interface {
	Put(ctx context.Context, name, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, publicPath string) error
}

// nameFromPath recovers the stored file name from a public path or URL.
func nameFromPath(publicPath string) string {
	return path.Base(publicPath)
}
