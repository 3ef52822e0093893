// services/tag_service.go
package services

import (
	"context"

	"blog-api/ability"
	"blog-api/models"
	"blog-api/repositories"
)

type TagService interface {
	CreateTag(ctx context.Context, req models.CreateTagRequest, user *models.User) (*models.Tag, error)
	UpdateTag(ctx context.Context, req models.UpdateTagRequest, user *models.User) (*models.Tag, error)
	DeleteTag(ctx context.Context, id uint, user *models.User) error
	SearchTags(ctx context.Context, name string) ([]models.Tag, error)
	GetTagsByID(ctx context.Context, ids []uint) ([]models.Tag, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) CreateTag(ctx context.Context, req models.CreateTagRequest, user *models.User) (*models.Tag, error) {
	if err := authorize(user, ability.Create, ability.Tag, nil); err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: req.Name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.ErrorConflict{Message: "Tag " + req.Name + " already exists"}
		}
		return nil, internal(ctx, "create tag failed", err)
	}

	return tag, nil
}

func (s *tagService) UpdateTag(ctx context.Context, req models.UpdateTagRequest, user *models.User) (*models.Tag, error) {
	tag, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := authorize(user, ability.Update, ability.Tag, *tag); err != nil {
		return nil, err
	}

	tag.Name = req.Name
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.ErrorConflict{Message: "Tag " + req.Name + " already exists"}
		}
		return nil, internal(ctx, "update tag failed", err, "tag_id", tag.ID)
	}

	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, id uint, user *models.User) error {
	tag, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := authorize(user, ability.Delete, ability.Tag, *tag); err != nil {
		return err
	}

	if err := s.tagRepo.Delete(ctx, tag.ID); err != nil {
		return internal(ctx, "delete tag failed", err, "tag_id", tag.ID)
	}
	return nil
}

func (s *tagService) SearchTags(ctx context.Context, name string) ([]models.Tag, error) {
	tags, err := s.tagRepo.SearchByName(ctx, name)
	if err != nil {
		return nil, internal(ctx, "search tags failed", err)
	}
	return tags, nil
}

func (s *tagService) GetTagsByID(ctx context.Context, ids []uint) ([]models.Tag, error) {
	tags, err := s.tagRepo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, internal(ctx, "load tags failed", err)
	}
	return tags, nil
}

func (s *tagService) load(ctx context.Context, id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NotFoundf("Tag not found")
		}
		return nil, internal(ctx, "load tag failed", err, "tag_id", id)
	}
	return tag, nil
}
