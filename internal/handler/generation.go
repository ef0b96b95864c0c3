package handler

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tunestory/api/internal/middleware"
	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/internal/service"
	ws "github.com/tunestory/api/internal/websocket"
	"github.com/tunestory/api/pkg/logging"
	"github.com/tunestory/api/pkg/response"
)

type GenerationHandler struct {
	service   *service.GenerationService
	hub       *ws.Hub
	validator *validator.Validate
}

func NewGenerationHandler(svc *service.GenerationService, hub *ws.Hub, v *validator.Validate) *GenerationHandler {
	return &GenerationHandler{
		service:   svc,
		hub:       hub,
		validator: v,
	}
}

// Start handles POST /api/generate
func (h *GenerationHandler) Start(c *fiber.Ctx) error {
	var req model.GenerateRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.service.Start(c.UserContext(), middleware.GetUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyPrompt):
			return response.ValidationError(c, "Prompt is required", nil)
		case errors.Is(err, service.ErrJobNotFound):
			return response.NotFound(c, "Parent job not found")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.Accepted(c, result)
}

// Status handles GET /api/generate/status/:jobId
func (h *GenerationHandler) Status(c *fiber.Ctx) error {
	jobID, ok := h.jobID(c)
	if !ok {
		return response.ValidationError(c, "Valid job ID is required", nil)
	}

	result, err := h.service.Status(c.UserContext(), middleware.GetUserID(c), jobID)
	if err != nil {
		return h.jobError(c, err)
	}
	return response.OK(c, result)
}

// Result handles GET /api/generate/result/:jobId
func (h *GenerationHandler) Result(c *fiber.Ctx) error {
	jobID, ok := h.jobID(c)
	if !ok {
		return response.ValidationError(c, "Valid job ID is required", nil)
	}

	result, err := h.service.Result(c.UserContext(), middleware.GetUserID(c), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotCompleted) {
			return response.Error(c, fiber.StatusConflict, response.CodeJobFailed, "Job not completed", nil)
		}
		return h.jobError(c, err)
	}
	return response.OK(c, result)
}

// Cancel handles POST /api/generate/cancel/:jobId
func (h *GenerationHandler) Cancel(c *fiber.Ctx) error {
	jobID, ok := h.jobID(c)
	if !ok {
		return response.ValidationError(c, "Valid job ID is required", nil)
	}

	result, err := h.service.Cancel(c.UserContext(), middleware.GetUserID(c), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobFinished) {
			return response.Conflict(c, "Job already finished")
		}
		return h.jobError(c, err)
	}
	return response.OK(c, result)
}

// Stream serves WS /ws/jobs/:jobId. The current job state is sent first.
func (h *GenerationHandler) Stream(c *websocket.Conn) {
	jobID := c.Params("jobId")

	var initial []byte
	if progress, err := h.service.Progress(context.Background(), jobID); err == nil {
		initial, _ = json.Marshal(progress)
	}
	h.hub.HandleConnection(c, jobID, initial)
}

func (h *GenerationHandler) jobID(c *fiber.Ctx) (string, bool) {
	id := c.Params("jobId")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (h *GenerationHandler) jobError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrJobNotFound) {
		return response.NotFound(c, "Job not found")
	}
	logging.FromContext(c.UserContext()).Error().Err(err).Msg("job lookup failed")
	return response.ServiceError(c, err.Error())
}
