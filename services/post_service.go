package services

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"blog-api/ability"
	"blog-api/models"
	"blog-api/repositories"

	"github.com/gosimple/slug"
	"gorm.io/datatypes"
)

type PostService interface {
	CreatePost(ctx context.Context, req models.CreatePostRequest, user *models.User) (*models.Post, error)
	UpdatePost(ctx context.Context, req models.UpdatePostRequest, user *models.User) (*models.Post, error)
	GetPostBySlug(ctx context.Context, postSlug string) (*models.Post, error)
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetAllPosts(ctx context.Context, params models.PostListParams) ([]models.Post, int64, error)
	DeletePost(ctx context.Context, id uint, user *models.User) error
}

type postService struct {
	postRepo     repositories.PostRepository
	tagRepo      repositories.TagRepository
	categoryRepo repositories.CategoryRepository
	fileRepo     repositories.FileRepository
	now          func() time.Time
}

func NewPostService(
	postRepo repositories.PostRepository,
	tagRepo repositories.TagRepository,
	categoryRepo repositories.CategoryRepository,
	fileRepo repositories.FileRepository,
) PostService {
	return &postService{
		postRepo:     postRepo,
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
		fileRepo:     fileRepo,
		now:          time.Now,
	}
}

// makeSlug derives a unique slug from the name and the current time.
func (s *postService) makeSlug(name string) string {
	base := slug.Make(name)
	if base == "" {
		base = "post"
	}
	return base + "-" + strconv.FormatInt(s.now().UnixMilli(), 10)
}

func (s *postService) CreatePost(ctx context.Context, req models.CreatePostRequest, user *models.User) (*models.Post, error) {
	if err := authorize(user, ability.Create, ability.Post, nil); err != nil {
		return nil, err
	}

	body, err := parseBody(req.Body)
	if err != nil {
		return nil, err
	}

	categories, err := s.resolveCategories(ctx, req.Categories)
	if err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	if err := s.checkCoverImage(ctx, req.CoverImageFileID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Name:             req.Name,
		Slug:             s.makeSlug(req.Name),
		Summary:          req.Summary,
		Body:             body,
		CoverImageFileID: req.CoverImageFileID,
		AuthorID:         user.ID,
		Categories:       categories,
		Tags:             tags,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.ErrorConflict{Message: "A post with this slug already exists"}
		}
		return nil, internal(ctx, "create post failed", err, "user_id", user.ID)
	}

	return s.GetPostByID(ctx, post.ID)
}

func (s *postService) UpdatePost(ctx context.Context, req models.UpdatePostRequest, user *models.User) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NotFoundf("Post not found")
		}
		return nil, internal(ctx, "load post failed", err, "post_id", req.ID)
	}

	if err := authorize(user, ability.Update, ability.Post, *post); err != nil {
		return nil, err
	}

	changes := repositories.PostChanges{Fields: map[string]any{}}

	if req.Name != nil {
		changes.Fields["name"] = *req.Name
		changes.Fields["slug"] = s.makeSlug(*req.Name)
	}
	if req.Summary != nil {
		changes.Fields["summary"] = *req.Summary
	}
	if len(req.Body) > 0 {
		body, err := parseBody(req.Body)
		if err != nil {
			return nil, err
		}
		changes.Fields["body"] = body
	}
	if req.CoverImageFileID.IsNull() {
		changes.Fields["cover_image_file_id"] = nil
	} else if req.CoverImageFileID.Set {
		if err := s.checkCoverImage(ctx, req.CoverImageFileID.Value); err != nil {
			return nil, err
		}
		changes.Fields["cover_image_file_id"] = *req.CoverImageFileID.Value
	}
	if req.IsPublished != nil {
		changes.Fields["is_published"] = *req.IsPublished
	}
	if req.Categories != nil {
		if changes.Categories, err = s.resolveCategories(ctx, req.Categories); err != nil {
			return nil, err
		}
	}
	if req.Tags != nil {
		if changes.Tags, err = s.resolveTags(ctx, req.Tags); err != nil {
			return nil, err
		}
	}

	if err := s.postRepo.Update(ctx, post.ID, changes); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.ErrorConflict{Message: "A post with this slug already exists"}
		}
		return nil, internal(ctx, "update post failed", err, "post_id", post.ID, "user_id", user.ID)
	}

	return s.GetPostByID(ctx, post.ID)
}

func (s *postService) GetPostBySlug(ctx context.Context, postSlug string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, postSlug)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NotFoundf("Post not found")
		}
		return nil, internal(ctx, "load post failed", err, "slug", postSlug)
	}
	post.Author.Sanitize()
	return post, nil
}

func (s *postService) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NotFoundf("Post not found")
		}
		return nil, internal(ctx, "load post failed", err, "post_id", id)
	}
	post.Author.Sanitize()
	return post, nil
}

func (s *postService) GetAllPosts(ctx context.Context, params models.PostListParams) ([]models.Post, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 10
	}

	posts, total, err := s.postRepo.GetList(ctx, params)
	if err != nil {
		return nil, 0, internal(ctx, "list posts failed", err)
	}
	for i := range posts {
		posts[i].Author.Sanitize()
	}
	return posts, total, nil
}

func (s *postService) DeletePost(ctx context.Context, id uint, user *models.User) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.NotFoundf("Post not found")
		}
		return internal(ctx, "load post failed", err, "post_id", id)
	}

	if err := authorize(user, ability.Delete, ability.Post, *post); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, post); err != nil {
		return internal(ctx, "delete post failed", err, "post_id", id, "user_id", user.ID)
	}
	return nil
}

func (s *postService) resolveCategories(ctx context.Context, ids []uint) ([]models.Category, error) {
	ids = uniqueIDs(ids)
	categories, err := s.categoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, internal(ctx, "load categories failed", err)
	}
	found := make([]uint, len(categories))
	for i, c := range categories {
		found[i] = c.ID
	}
	if id, missing := firstMissing(ids, found); missing {
		return nil, notFoundWithID("Category", id)
	}
	return categories, nil
}

func (s *postService) resolveTags(ctx context.Context, ids []uint) ([]models.Tag, error) {
	ids = uniqueIDs(ids)
	tags, err := s.tagRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, internal(ctx, "load tags failed", err)
	}
	found := make([]uint, len(tags))
	for i, t := range tags {
		found[i] = t.ID
	}
	if id, missing := firstMissing(ids, found); missing {
		return nil, notFoundWithID("Tag", id)
	}
	return tags, nil
}

func (s *postService) checkCoverImage(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.fileRepo.GetByID(ctx, *id); err != nil {
		if repositories.IsNotFound(err) {
			return notFoundWithID("File", *id)
		}
		return internal(ctx, "load file failed", err, "file_id", *id)
	}
	return nil
}

// parseBody accepts a JSON object, or a string holding one, and rejects empty
// objects.
func parseBody(raw json.RawMessage) (datatypes.JSON, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, models.BadRequestf("body must be a JSON object")
		}
		raw = bytes.TrimSpace([]byte(inner))
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, models.BadRequestf("body must be a JSON object")
	}
	if len(obj) == 0 {
		return nil, models.BadRequestf("body must not be an empty object")
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return nil, models.BadRequestf("body must be a JSON object")
	}
	return datatypes.JSON(compact.Bytes()), nil
}
