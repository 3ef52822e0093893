package handlers

import (
	"blog-api/helper"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

const uploadField = "image"

type FileHandler struct {
	fileService services.FileService
	Helper      *helper.HTTPHelper
}

func NewFileHandler(fileService services.FileService, h *helper.HTTPHelper) *FileHandler {
	return &FileHandler{fileService: fileService, Helper: h}
}

func (h *FileHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		h.Helper.SendBadRequest(c, "image file is required", h.Helper.EmptyJsonMap())
		return
	}

	f, err := header.Open()
	if err != nil {
		h.Helper.SendBadRequest(c, "unable to read image", h.Helper.EmptyJsonMap())
		return
	}
	defer f.Close()

	file, err := h.fileService.UploadImage(c.Request.Context(), f, header.Size, helper.CurrentUser(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Image uploaded successfully", file)
}
