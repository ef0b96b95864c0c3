package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/internal/service"
	"github.com/tunestory/api/pkg/response"
)

type RecommendationHandler struct {
	service   *service.RecommendationService
	validator *validator.Validate
}

func NewRecommendationHandler(svc *service.RecommendationService, v *validator.Validate) *RecommendationHandler {
	return &RecommendationHandler{
		service:   svc,
		validator: v,
	}
}

// Recommend handles POST /api/recommendations
func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	var req model.RecommendationRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	tracks, err := h.service.Recommend(c.UserContext(), &req)
	if err != nil {
		return upstreamError(c, err)
	}
	return response.OK(c, model.RecommendationResponse{Recommendations: tracks})
}
