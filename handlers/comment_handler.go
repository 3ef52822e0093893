package handlers

import (
	"blog-api/helper"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService services.CommentService
	Helper         *helper.HTTPHelper
}

func NewCommentHandler(commentService services.CommentService, h *helper.HTTPHelper) *CommentHandler {
	return &CommentHandler{commentService: commentService, Helper: h}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req models.CreateCommentRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), req, helper.CurrentUser(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Comment created successfully", comment)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var req models.UpdateCommentRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), req, helper.CurrentUser(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment updated successfully", comment)
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	comments, err := h.commentService.GetAllComments(c.Request.Context())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", comments)
}

func (h *CommentHandler) GetCommentsOfPost(c *gin.Context) {
	postID, ok := h.Helper.ParseID(c, "post_id")
	if !ok {
		return
	}

	comments, err := h.commentService.GetAllCommentsOfPost(c.Request.Context(), postID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", comments)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), id, helper.CurrentUser(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment deleted successfully", h.Helper.EmptyJsonMap())
}
