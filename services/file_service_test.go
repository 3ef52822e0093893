package services

import (
	"bytes"
	"errors"
	"strings"

	"blog-api/logger"
	"blog-api/models"
)

// smallest valid PNG header plus padding
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00"), make([]byte, 32)...)

func (s *ServiceTestSuite) TestUploadImage() {
	user := s.signUp("uploader@example.com")

	file, err := s.files.UploadImage(s.ctx, bytes.NewReader(pngBytes), int64(len(pngBytes)), user)
	s.Require().NoError(err)

	s.Equal("images", file.BucketName)
	s.Equal("image/png", file.Mimetype)
	s.True(strings.HasSuffix(file.Path, ".png"))
	s.EqualValues(len(pngBytes), file.SizeInByte)
	s.Equal(pngBytes, s.store.objects["images/"+file.Path])

	post := s.postRequest("With cover")
	post.CoverImageFileID = &file.ID
	created, err := s.posts.CreatePost(s.ctx, post, user)
	s.Require().NoError(err)
	s.Require().NotNil(created.CoverImageFile)
	s.Equal(file.Path, created.CoverImageFile.Path)
}

func (s *ServiceTestSuite) TestUploadImage_Rejects() {
	user := s.signUp("uploader@example.com")

	text := []byte("just some plain text, definitely not an image")
	_, err := s.files.UploadImage(s.ctx, bytes.NewReader(text), int64(len(text)), user)
	s.IsType(models.ErrorBadRequest{}, err)

	big := append(append([]byte{}, pngBytes...), make([]byte, 2048)...)
	_, err = s.files.UploadImage(s.ctx, bytes.NewReader(big), int64(len(big)), user)
	s.IsType(models.ErrorBadRequest{}, err)

	_, err = s.files.UploadImage(s.ctx, bytes.NewReader(pngBytes), int64(len(pngBytes)), nil)
	s.IsType(models.ErrorUnauthorized{}, err)

	s.Empty(s.store.objects)
}

func (s *ServiceTestSuite) TestUploadImage_RemovesObjectWhenRecordFails() {
	user := s.signUp("uploader@example.com")
	s.Require().NoError(s.db.Migrator().DropTable(&models.File{}))

	_, err := s.files.UploadImage(s.ctx, bytes.NewReader(pngBytes), int64(len(pngBytes)), user)
	s.IsType(models.ErrorInternalServer{}, err)
	s.Empty(s.store.objects)
}

func (s *ServiceTestSuite) TestUploadImage_LogsOrphanWhenCleanupFails() {
	user := s.signUp("uploader@example.com")
	s.Require().NoError(s.db.Migrator().DropTable(&models.File{}))
	s.store.deleteErr = errors.New("bucket unavailable")

	var buf bytes.Buffer
	ctx := logger.WithContext(s.ctx, logger.New(&buf, "info"))

	_, err := s.files.UploadImage(ctx, bytes.NewReader(pngBytes), int64(len(pngBytes)), user)
	s.IsType(models.ErrorInternalServer{}, err)
	s.Len(s.store.objects, 1)

	for key := range s.store.objects {
		s.Contains(buf.String(), "orphaned upload")
		s.Contains(buf.String(), strings.TrimPrefix(key, "images/"))
		s.Contains(buf.String(), "bucket unavailable")
	}
}

func (s *ServiceTestSuite) TestUpdatePost_CoverImage() {
	user := s.signUp("uploader@example.com")

	file, err := s.files.UploadImage(s.ctx, bytes.NewReader(pngBytes), int64(len(pngBytes)), user)
	s.Require().NoError(err)

	post := s.post(user, "Cover swap")
	s.Nil(post.CoverImageFileID)

	updated, err := s.posts.UpdatePost(s.ctx, models.UpdatePostRequest{ID: post.ID, CoverImageFileID: models.Some(file.ID)}, user)
	s.Require().NoError(err)
	s.Require().NotNil(updated.CoverImageFileID)
	s.Equal(file.ID, *updated.CoverImageFileID)

	renamed, err := s.posts.UpdatePost(s.ctx, models.UpdatePostRequest{ID: post.ID, Name: ptr("Cover kept")}, user)
	s.Require().NoError(err)
	s.NotNil(renamed.CoverImageFileID, "an absent field leaves the cover alone")

	cleared, err := s.posts.UpdatePost(s.ctx, models.UpdatePostRequest{ID: post.ID, CoverImageFileID: models.Null[uint]()}, user)
	s.Require().NoError(err)
	s.Nil(cleared.CoverImageFileID)
	s.Nil(cleared.CoverImageFile)

	_, err = s.posts.UpdatePost(s.ctx, models.UpdatePostRequest{ID: post.ID, CoverImageFileID: models.Some(uint(77))}, user)
	s.Equal("File with id 77 not found", err.Error())
}
