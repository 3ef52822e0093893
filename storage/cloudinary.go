package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary maps buckets to folders and paths to public ids.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(url string) (*Cloudinary, error) {
	if url == "" {
		return nil, errors.New("CLOUDINARY_URL is required for the cloudinary storage driver")
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary configuration error: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Put(ctx context.Context, r io.Reader, bucket, objectPath string, size int64, mimetype string) (*Object, error) {
	publicID := strings.TrimSuffix(objectPath, path.Ext(objectPath))

	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   bucket,
		PublicID: publicID,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}

	stored := size
	if res.Bytes > 0 {
		stored = int64(res.Bytes)
	}

	return &Object{
		BucketName: bucket,
		Path:       res.SecureURL,
		Size:       stored,
		Mimetype:   mimetype,
	}, nil
}

// Delete destroys the asset behind a delivery URL returned by Put.
func (c *Cloudinary) Delete(ctx context.Context, bucket, objectPath string) error {
	name := path.Base(objectPath)
	publicID := bucket + "/" + strings.TrimSuffix(name, path.Ext(name))

	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	return nil
}
