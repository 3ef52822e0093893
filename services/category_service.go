package services

import (
	"context"

	"blog-api/ability"
	"blog-api/models"
	"blog-api/repositories"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req models.CreateCategoryRequest, user *models.User) (*models.Category, error)
	UpdateCategory(ctx context.Context, req models.UpdateCategoryRequest, user *models.User) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint, user *models.User) error
	SearchCategories(ctx context.Context, name string) ([]models.Category, error)
	GetCategoriesByID(ctx context.Context, ids []uint) ([]models.Category, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req models.CreateCategoryRequest, user *models.User) (*models.Category, error) {
	if err := authorize(user, ability.Create, ability.Category, nil); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.loadParent(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{Name: req.Name, ParentID: req.ParentID}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.ErrorConflict{Message: "Category " + req.Name + " already exists"}
		}
		return nil, internal(ctx, "create category failed", err)
	}

	return s.load(ctx, category.ID)
}

func (s *categoryService) UpdateCategory(ctx context.Context, req models.UpdateCategoryRequest, user *models.User) (*models.Category, error) {
	category, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := authorize(user, ability.Update, ability.Category, *category); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.ParentID.IsNull() {
		fields["parent_id"] = nil
	} else if req.ParentID.Set {
		if err := s.checkNoCycle(ctx, category.ID, *req.ParentID.Value); err != nil {
			return nil, err
		}
		fields["parent_id"] = *req.ParentID.Value
	}

	if err := s.categoryRepo.Update(ctx, category.ID, fields); err != nil {
		if repositories.IsUniqueViolation(err) && req.Name != nil {
			return nil, models.ErrorConflict{Message: "Category " + *req.Name + " already exists"}
		}
		return nil, internal(ctx, "update category failed", err, "category_id", category.ID)
	}

	return s.load(ctx, category.ID)
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uint, user *models.User) error {
	category, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := authorize(user, ability.Delete, ability.Category, *category); err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
		return internal(ctx, "delete category failed", err, "category_id", category.ID)
	}
	return nil
}

func (s *categoryService) SearchCategories(ctx context.Context, name string) ([]models.Category, error) {
	categories, err := s.categoryRepo.SearchByName(ctx, name)
	if err != nil {
		return nil, internal(ctx, "search categories failed", err)
	}
	return categories, nil
}

func (s *categoryService) GetCategoriesByID(ctx context.Context, ids []uint) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, internal(ctx, "load categories failed", err)
	}
	return categories, nil
}

// checkNoCycle walks up from the new parent and fails if it reaches the category
// itself.
func (s *categoryService) checkNoCycle(ctx context.Context, id, parentID uint) error {
	if parentID == id {
		return models.BadRequestf("A category cannot be its own parent")
	}

	seen := map[uint]bool{}
	next := &parentID
	for next != nil {
		if *next == id {
			return models.BadRequestf("Category with id %d is a descendant of category %d", parentID, id)
		}
		if seen[*next] {
			break
		}
		seen[*next] = true

		parent, err := s.loadParent(ctx, *next)
		if err != nil {
			return err
		}
		next = parent.ParentID
	}
	return nil
}

func (s *categoryService) loadParent(ctx context.Context, id uint) (*models.Category, error) {
	parent, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, notFoundWithID("Category", id)
		}
		return nil, internal(ctx, "load category failed", err, "category_id", id)
	}
	return parent, nil
}

func (s *categoryService) load(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NotFoundf("Category not found")
		}
		return nil, internal(ctx, "load category failed", err, "category_id", id)
	}
	return category, nil
}
