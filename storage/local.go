package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local stores objects under <dir>/<bucket>/<path>.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Put(ctx context.Context, r io.Reader, bucket, path string, size int64, mimetype string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, clean, err := l.locate(bucket, path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, err
	}

	f, err := os.Create(target)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		os.Remove(target)
		return nil, err
	}

	return &Object{
		BucketName: bucket,
		Path:       strings.TrimPrefix(filepath.ToSlash(clean), "/"),
		Size:       written,
		Mimetype:   mimetype,
	}, nil
}

func (l *Local) Delete(ctx context.Context, bucket, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, _, err := l.locate(bucket, path)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// locate keeps every object inside its bucket directory.
func (l *Local) locate(bucket, path string) (target, clean string, err error) {
	clean = filepath.Clean("/" + path)
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || clean == "/" {
		return "", "", fmt.Errorf("invalid object location %q/%q", bucket, path)
	}
	return filepath.Join(l.dir, bucket, clean), clean, nil
}
