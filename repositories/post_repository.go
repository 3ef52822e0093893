package repositories

import (
	"context"

	"blog-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	GetList(ctx context.Context, params models.PostListParams) ([]models.Post, int64, error)
	Update(ctx context.Context, id uint, changes PostChanges) error
	Delete(ctx context.Context, post *models.Post) error
	Exists(ctx context.Context, id uint) (bool, error)
}

// PostChanges describes a partial update. Nil Categories or Tags leave the
// association untouched.
type PostChanges struct {
	Fields     map[string]any
	Categories []models.Category
	Tags       []models.Tag
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("CoverImageFile").
		Preload("Categories").
		Preload("Tags")
}

// Create inserts the post and its join rows; the referenced categories and tags
// must already exist.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit("Categories.*", "Tags.*").Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withRelations(ctx).First(&post, id).Error
	return &post, err
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.withRelations(ctx).Where("slug = ?", slug).First(&post).Error
	return &post, err
}

func (r *postRepository) GetList(ctx context.Context, params models.PostListParams) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Post{})

	if params.AuthorID > 0 {
		query = query.Where("posts.author_id = ?", params.AuthorID)
	}
	if params.IsPublished != nil {
		query = query.Where("posts.is_published = ?", *params.IsPublished)
	}
	if params.TagID > 0 {
		query = query.Where("posts.id IN (?)",
			r.db.Table("post_tags").Select("post_id").Where("tag_id = ?", params.TagID))
	}
	if params.CategoryID > 0 {
		query = query.Where("posts.id IN (?)",
			r.db.Table("post_categories").Select("post_id").Where("category_id = ?", params.CategoryID))
	}

	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.Limit
	err := query.Session(&gorm.Session{}).
		Preload("Author").
		Preload("CoverImageFile").
		Preload("Categories").
		Preload("Tags").
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Table: "posts", Name: "created_at"}, Desc: true},
			{Column: clause.Column{Table: "posts", Name: "id"}, Desc: true},
		}}).
		Offset(offset).
		Limit(params.Limit).
		Find(&posts).Error

	return posts, total, err
}

// Update writes the scalar fields and replaces the associations in one
// transaction.
func (r *postRepository) Update(ctx context.Context, id uint, changes PostChanges) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post := &models.Post{ID: id}

		if len(changes.Fields) > 0 {
			if err := tx.Model(post).Updates(changes.Fields).Error; err != nil {
				return err
			}
		}
		if changes.Categories != nil {
			if err := tx.Model(post).Association("Categories").Replace(changes.Categories); err != nil {
				return err
			}
		}
		if changes.Tags != nil {
			if err := tx.Model(post).Association("Tags").Replace(changes.Tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the post together with its comments and join rows.
func (r *postRepository) Delete(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Select("Categories", "Tags").Delete(&models.Post{ID: post.ID}).Error
	})
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
