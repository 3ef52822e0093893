// Package storage puts uploaded objects somewhere durable.
package storage

import (
	"context"
	"io"
)

const BucketImages = "images"

// Object describes where an upload ended up.
type Object struct {
	BucketName string
	Path       string
	Size       int64
	Mimetype   string
}

type ObjectStorage interface {
	Put(ctx context.Context, r io.Reader, bucket, path string, size int64, mimetype string) (*Object, error)
	// Delete removes an object by the bucket and path Put returned. A missing
	// object is not an error.
	Delete(ctx context.Context, bucket, path string) error
}
