package handler

import (
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/internal/service"
	"github.com/tunestory/api/pkg/response"
)

const maxImageUploadSize = 10 * 1024 * 1024 // 10MB

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type AnalysisHandler struct {
	photos    *service.AnalysisService
	music     *service.MusicAnalysisService
	validator *validator.Validate
}

func NewAnalysisHandler(photos *service.AnalysisService, music *service.MusicAnalysisService, v *validator.Validate) *AnalysisHandler {
	return &AnalysisHandler{
		photos:    photos,
		music:     music,
		validator: v,
	}
}

// Photo handles POST /api/analyze/photo. It accepts a JSON body with a data
// URL or base64 image, or a multipart upload in the "image" field.
func (h *AnalysisHandler) Photo(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return h.photoUpload(c)
	}

	var req model.PhotoAnalyzeRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.photos.AnalyzePhoto(c.UserContext(), req.Image, req.MimeType)
	if err != nil {
		return h.photoError(c, err)
	}
	return response.OK(c, result)
}

func (h *AnalysisHandler) photoUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return response.ValidationError(c, "Image file is required", nil)
	}

	if file.Size > maxImageUploadSize {
		return response.ValidationError(c, "File size exceeds 10MB limit", map[string]interface{}{
			"maxSize":  maxImageUploadSize,
			"fileSize": file.Size,
		})
	}

	contentType := file.Header.Get(fiber.HeaderContentType)
	if !validImageTypes[contentType] {
		return response.ValidationError(c, "Invalid file type. Supported: JPEG, PNG, WEBP, GIF", map[string]interface{}{
			"contentType": contentType,
		})
	}

	f, err := file.Open()
	if err != nil {
		return response.ServiceError(c, "Failed to open file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return response.ServiceError(c, "Failed to read file")
	}

	result, err := h.photos.AnalyzePhotoBytes(c.UserContext(), data, contentType)
	if err != nil {
		return h.photoError(c, err)
	}
	return response.OK(c, result)
}

func (h *AnalysisHandler) photoError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrInvalidImage) {
		return response.ValidationError(c, err.Error(), nil)
	}
	return upstreamError(c, err)
}

// Music handles POST /api/analyze/music
func (h *AnalysisHandler) Music(c *fiber.Ctx) error {
	var req model.MusicAnalyzeRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.music.Analyze(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNoTracks) {
			return response.NotFound(c, "No tracks found")
		}
		if errors.Is(err, service.ErrNoAudioFeatures) {
			return response.AIError(c, "Could not fetch audio features")
		}
		return upstreamError(c, err)
	}
	return response.OK(c, result)
}
