package models

import "encoding/json"

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type SignInResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,min=3,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,min=3,max=50"`
}

type CreatePostRequest struct {
	Name             string          `json:"name" validate:"required,min=3,max=200"`
	Summary          string          `json:"summary" validate:"required,min=30,max=2000"`
	Body             json.RawMessage `json:"body" validate:"required"`
	CoverImageFileID *uint           `json:"cover_image_file_id"`
	Categories       []uint          `json:"categories" validate:"required,min=1"`
	Tags             []uint          `json:"tags" validate:"required,min=1"`
}

// UpdatePostRequest is a partial update: nil fields are left untouched and non-nil
// Categories/Tags replace the current associations. An explicit null
// cover_image_file_id removes the cover.
type UpdatePostRequest struct {
	ID               uint            `json:"id" validate:"required"`
	Name             *string         `json:"name" validate:"omitempty,min=3,max=200"`
	Summary          *string         `json:"summary" validate:"omitempty,min=30,max=2000"`
	Body             json.RawMessage `json:"body"`
	CoverImageFileID Nullable[uint]  `json:"cover_image_file_id"`
	IsPublished      *bool           `json:"is_published"`
	Categories       []uint          `json:"categories" validate:"omitempty,min=1"`
	Tags             []uint          `json:"tags" validate:"omitempty,min=1"`
}

type PostListParams struct {
	AuthorID    uint  `form:"author_id"`
	TagID       uint  `form:"tag_id"`
	CategoryID  uint  `form:"category_id"`
	IsPublished *bool `form:"is_published"`
	Page        int   `form:"page,default=1"`
	Limit       int   `form:"limit,default=10"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=3,max=500"`
	PostID  uint   `json:"post_id" validate:"required"`
	ReplyTo *uint  `json:"reply_to"`
}

type UpdateCommentRequest struct {
	ID      uint   `json:"id" validate:"required"`
	Content string `json:"content" validate:"required,min=3,max=500"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateTagRequest struct {
	ID   uint   `json:"id" validate:"required"`
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	ParentID *uint  `json:"parent_id"`
}

// UpdateCategoryRequest moves the category to the root when parent_id is null.
type UpdateCategoryRequest struct {
	ID       uint    `json:"id" validate:"required"`
	Name     *string        `json:"name" validate:"omitempty,min=3,max=50"`
	ParentID Nullable[uint] `json:"parent_id"`
}

type IDsRequest struct {
	IDs []uint `json:"ids" validate:"required"`
}
