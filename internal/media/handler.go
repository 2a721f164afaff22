package media

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmssspace/na-predele--crm-sub000/internal/api"
	"github.com/dmssspace/na-predele--crm-sub000/internal/logger"
)

// 10 MB is plenty for post covers and trainer photos.
const maxUploadSize = 10 << 20

const defaultFolder = "napredele"

type Handler struct {
	uploader Uploader
}

func NewHandler(uploader Uploader) *Handler {
	return &Handler{uploader: uploader}
}

// Upload godoc
// @Summary      Upload an image
// @Description  Stores the file in Cloudinary and returns its secure URL.
// @Tags         media
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true   "Image file"
// @Param        folder  formData  string  false  "Target folder"
// @Success      201     {object}  api.Response
// @Failure      400     {object}  api.Response
// @Router       /media [post]
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "file is required")
		return
	}
	if fileHeader.Size > maxUploadSize {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "file is too large")
		return
	}

	folder := c.DefaultPostForm("folder", defaultFolder)

	file, err := fileHeader.Open()
	if err != nil {
		api.FailInternal(c, "Failed to read file")
		return
	}
	defer file.Close()

	asset, err := h.uploader.Upload(c.Request.Context(), file, folder)
	if err != nil {
		logger.Error("media upload failed", "file", fileHeader.Filename, "error", err)
		api.FailInternal(c, "Failed to upload file")
		return
	}

	api.Created(c, asset)
}

// Delete godoc
// @Summary      Delete an uploaded image
// @Tags         media
// @Security     BearerAuth
// @Produce      json
// @Param        publicID  path      string  true  "Cloudinary public ID"
// @Success      200       {object}  api.Response
// @Router       /media/{publicID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	publicID := strings.TrimPrefix(c.Param("publicID"), "/")
	if publicID == "" {
		api.Fail(c, http.StatusBadRequest, api.CodeBadRequest, "publicID is required")
		return
	}

	if err := h.uploader.Destroy(c.Request.Context(), publicID); err != nil {
		api.FailInternal(c, "Failed to delete file")
		return
	}

	api.OK(c, gin.H{"deleted": true})
}
