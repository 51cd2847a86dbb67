package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sweetcrumb/cakeshop-backend/internal/errors"
	"github.com/sweetcrumb/cakeshop-backend/internal/middleware"
	"github.com/sweetcrumb/cakeshop-backend/internal/storage"
)

type UploadController struct {
	storage *storage.ImageStorage
}

func NewUploadController(storage *storage.ImageStorage) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

type PresignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size"`
	Folder      string `json:"folder"`
}

// PresignUpload hands out a presigned S3 PUT URL for a cake photo
// POST /api/v1/manage/uploads/presign
func (ctrl *UploadController) PresignUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presign upload request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.storage.ValidateImageType(req.ContentType); err != nil {
		log.Warn("Rejected upload: invalid content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		errors.BadRequest(c, errors.UploadInvalidFileType, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
		return
	}

	if req.Size > 0 {
		if err := ctrl.storage.ValidateSize(req.Size); err != nil {
			log.Warn("Rejected upload: file too large", map[string]interface{}{
				"size": req.Size,
			})
			errors.BadRequest(c, errors.UploadFileTooLarge, "File exceeds the maximum upload size")
			return
		}
	}

	folder := req.Folder
	if folder == "" {
		folder = "products"
	}

	upload, err := ctrl.storage.PresignUpload(req.Filename, req.ContentType, folder)
	if err != nil {
		log.Error("Failed to presign upload", err, map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
			"folder":       folder,
		})
		errors.InternalError(c, "Failed to generate upload URL")
		return
	}

	log.Info("Upload URL generated successfully", map[string]interface{}{
		"filename": req.Filename,
		"folder":   folder,
		"key":      upload.Key,
	})

	c.JSON(http.StatusOK, gin.H{
		"upload_url": upload.UploadURL,
		"file_url":   upload.FileURL,
		"key":        upload.Key,
	})
}
