package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tunestory/api/internal/client"
	"github.com/tunestory/api/internal/service"
	"github.com/tunestory/api/pkg/logging"
	"github.com/tunestory/api/pkg/response"
)

// formatValidationErrors formats validator errors for response
func formatValidationErrors(err error) interface{} {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			fields[e.Field()] = e.Tag()
		}
		return fields
	}
	return nil
}

// parseBody decodes and validates the request body into req. On failure the
// error response has already been written and ok is false.
func parseBody(c *fiber.Ctx, v *validator.Validate, req interface{}) (ok bool, err error) {
	if err := c.BodyParser(req); err != nil {
		return false, response.ValidationError(c, "Invalid request body", nil)
	}
	if err := v.Struct(req); err != nil {
		return false, response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}
	return true, nil
}

// upstreamError maps failures of external providers onto the envelope
func upstreamError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, client.ErrRateLimited):
		return response.RateLimited(c)
	case errors.Is(err, client.ErrCreditsExhausted):
		return response.AIError(c, "AI credits exhausted")
	case errors.Is(err, client.ErrSpotifyNotConfigured):
		return response.ServiceError(c, "Spotify is not configured")
	}
	logging.FromContext(c.UserContext()).Error().Err(err).Msg("upstream call failed")
	return response.AIError(c, err.Error())
}

// storeError maps preference store failures onto the envelope
func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUnknownInstrument):
		return response.ValidationError(c, err.Error(), nil)
	case errors.Is(err, service.ErrPresetNotFound):
		return response.NotFound(c, "Preset not found")
	case errors.Is(err, service.ErrPresetExists):
		return response.Conflict(c, "Preset already exists")
	}
	return response.ServiceError(c, err.Error())
}
