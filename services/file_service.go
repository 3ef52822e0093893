package services

import (
	"context"
	"io"
	"strings"

	"blog-api/ability"
	"blog-api/logger"
	"blog-api/models"
	"blog-api/repositories"
	"blog-api/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type FileService interface {
	UploadImage(ctx context.Context, r io.ReadSeeker, size int64, user *models.User) (*models.File, error)
}

type fileService struct {
	fileRepo repositories.FileRepository
	store    storage.ObjectStorage
	maxSize  int64
}

func NewFileService(fileRepo repositories.FileRepository, store storage.ObjectStorage, maxSize int64) FileService {
	return &fileService{
		fileRepo: fileRepo,
		store:    store,
		maxSize:  maxSize,
	}
}

func (s *fileService) UploadImage(ctx context.Context, r io.ReadSeeker, size int64, user *models.User) (*models.File, error) {
	if user == nil {
		return nil, models.ErrorUnauthorized{Message: "Unauthorized"}
	}
	// uploads feed post covers, so they share the post create permission
	if err := authorize(user, ability.Create, ability.Post, nil); err != nil {
		return nil, err
	}

	if size <= 0 {
		return nil, models.BadRequestf("image is empty")
	}
	if s.maxSize > 0 && size > s.maxSize {
		return nil, models.BadRequestf("image exceeds the maximum size of %d bytes", s.maxSize)
	}

	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return nil, models.BadRequestf("unable to detect file type")
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, models.BadRequestf("file of type %s is not an image", mtype.String())
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, internal(ctx, "rewind upload failed", err)
	}

	name := uuid.NewString() + mtype.Extension()
	obj, err := s.store.Put(ctx, r, storage.BucketImages, name, size, mtype.String())
	if err != nil {
		return nil, internal(ctx, "store upload failed", err, "path", name, "user_id", user.ID)
	}

	file := &models.File{
		BucketName: obj.BucketName,
		Path:       obj.Path,
		SizeInByte: obj.Size,
		Mimetype:   obj.Mimetype,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		if derr := s.store.Delete(ctx, obj.BucketName, obj.Path); derr != nil {
			logger.FromContext(ctx).Error("orphaned upload",
				"bucket", obj.BucketName,
				"path", obj.Path,
				"error", derr.Error(),
			)
		}
		return nil, internal(ctx, "save file failed", err, "path", obj.Path)
	}

	return file, nil
}
