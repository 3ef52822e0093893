package handlers

import (
	"blog-api/helper"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewPostHandler(postService services.PostService, h *helper.HTTPHelper) *PostHandler {
	return &PostHandler{postService: postService, Helper: h}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), req, helper.CurrentUser(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Post created successfully", post)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req models.UpdatePostRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), req, helper.CurrentUser(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post updated successfully", post)
}

func (h *PostHandler) GetPosts(c *gin.Context) {
	var params models.PostListParams
	if !h.Helper.BindQuery(c, &params) {
		return
	}

	posts, total, err := h.postService.GetAllPosts(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	page, limit := params.Page, params.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	h.Helper.SendSuccess(c, "Success", map[string]interface{}{
		"posts":      posts,
		"pagination": h.Helper.GeneratePaging(c, limit, page, int(total)),
	})
}

func (h *PostHandler) GetPostBySlug(c *gin.Context) {
	slug := c.Query("slug")
	if slug == "" {
		h.Helper.SendBadRequest(c, "slug is required", h.Helper.EmptyJsonMap())
		return
	}

	post, err := h.postService.GetPostBySlug(c.Request.Context(), slug)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", post)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.GetPostByID(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), id, helper.CurrentUser(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post deleted successfully", h.Helper.EmptyJsonMap())
}
