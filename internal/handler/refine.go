package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tunestory/api/internal/middleware"
	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/internal/service"
	"github.com/tunestory/api/pkg/response"
)

type RefineHandler struct {
	refine    *service.RefineService
	augment   *service.AugmentService
	validator *validator.Validate
}

func NewRefineHandler(refine *service.RefineService, augment *service.AugmentService, v *validator.Validate) *RefineHandler {
	return &RefineHandler{
		refine:    refine,
		augment:   augment,
		validator: v,
	}
}

// Refine handles POST /api/refine
func (h *RefineHandler) Refine(c *fiber.Ctx) error {
	var req model.RefineRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}
	return response.OK(c, h.refine.Refine(c.UserContext(), middleware.GetUserID(c), &req))
}

// BuildPrompt handles POST /api/prompt/build
func (h *RefineHandler) BuildPrompt(c *fiber.Ctx) error {
	var req model.PromptBuildRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}
	return response.OK(c, model.PromptResponse{Prompt: h.refine.BuildPrompt(&req)})
}

// Augment handles POST /api/prompt/augment
func (h *RefineHandler) Augment(c *fiber.Ctx) error {
	var req model.PromptAugmentRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	augmented, err := h.augment.Augment(c.UserContext(), &req)
	if err != nil {
		return upstreamError(c, err)
	}
	return response.OK(c, model.PromptAugmentResponse{AugmentedPrompt: augmented})
}
