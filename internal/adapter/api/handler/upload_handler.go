package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"gamerverse/internal/domain/service"
	"gamerverse/pkg/errors"
	"gamerverse/pkg/logger"
	"gamerverse/pkg/response"
)

const maxUploadSize = 5 << 20

var uploadFolders = map[string]bool{
	"qr":    true,
	"games": true,
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type UploadHandler struct {
	images service.ImageStore
}

var uploadHandler *UploadHandler

func NewUploadHandler(images service.ImageStore) *UploadHandler {
	return &UploadHandler{
		images: images,
	}
}

func SetupUploadHandler(images service.ImageStore) {
	uploadHandler = NewUploadHandler(images)
}

func GetUploadHandler() *UploadHandler {
	return uploadHandler
}

// UploadImage stores a payment QR or game artwork and returns its public URL.
func (h *UploadHandler) UploadImage(c echo.Context) error {
	if h.images == nil {
		return response.Error(c, errors.Transient("Image storage is not configured", nil))
	}

	folder := c.FormValue("folder")
	if !uploadFolders[folder] {
		return response.Error(c, errors.BadRequest("folder must be one of: qr, games", nil))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("No file uploaded", err))
	}
	if fileHeader.Size > maxUploadSize {
		return response.Error(c, errors.BadRequest("File size exceeds the 5MB limit", nil))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	if len(data) > maxUploadSize {
		return response.Error(c, errors.BadRequest("File size exceeds the 5MB limit", nil))
	}

	contentType := http.DetectContentType(data)
	if !allowedImageTypes[contentType] {
		return response.Error(c, errors.BadRequest("Only JPEG, PNG, WEBP and GIF images are allowed", nil))
	}

	url, err := h.images.UploadImage(c.Request().Context(), bytes.NewReader(data), contentType, folder)
	if err != nil {
		logger.Error("Image upload to %s failed: %v", folder, err)
		return response.Error(c, errors.Internal("Failed to upload image", err))
	}

	return response.Created(c, map[string]string{
		"url":          url,
		"folder":       folder,
		"content_type": contentType,
	})
}

type deleteImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// DeleteImage removes an image uploaded earlier, such as a replaced QR code.
func (h *UploadHandler) DeleteImage(c echo.Context) error {
	if h.images == nil {
		return response.Error(c, errors.Transient("Image storage is not configured", nil))
	}

	var req deleteImageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.images.DeleteImage(c.Request().Context(), req.URL); err != nil {
		return response.Error(c, errors.BadRequest("Image could not be deleted", err))
	}
	return response.Success(c, map[string]string{"message": "Image deleted successfully"})
}
