package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tunestory/api/internal/middleware"
	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/internal/service"
	"github.com/tunestory/api/pkg/response"
)

type PreferencesHandler struct {
	service   *service.PreferenceService
	validator *validator.Validate
}

func NewPreferencesHandler(svc *service.PreferenceService, v *validator.Validate) *PreferencesHandler {
	return &PreferencesHandler{
		service:   svc,
		validator: v,
	}
}

// Get handles GET /api/preferences
func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	prefs := h.service.Preferences(c.UserContext(), middleware.GetUserID(c))
	return response.OK(c, model.PreferencesResponse{Preferences: prefs})
}

// Put handles PUT /api/preferences
func (h *PreferencesHandler) Put(c *fiber.Ctx) error {
	var req model.PreferencesRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	prefs, err := h.service.SetPreferences(c.UserContext(), middleware.GetUserID(c), &req)
	if err != nil {
		return storeError(c, err)
	}
	return response.OK(c, model.PreferencesResponse{Preferences: prefs})
}

// Delete handles DELETE /api/preferences
func (h *PreferencesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.ClearPreferences(c.UserContext(), middleware.GetUserID(c)); err != nil {
		return storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPresets handles GET /api/presets
func (h *PreferencesHandler) ListPresets(c *fiber.Ctx) error {
	presets := h.service.Presets(c.UserContext(), middleware.GetUserID(c))
	return response.OK(c, model.PresetListResponse{Presets: presets})
}

// CreatePreset handles POST /api/presets
func (h *PreferencesHandler) CreatePreset(c *fiber.Ctx) error {
	var req model.PresetRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	preset, presets, err := h.service.CreatePreset(c.UserContext(), middleware.GetUserID(c), &req)
	if err != nil {
		return storeError(c, err)
	}
	return response.Created(c, model.PresetResponse{Preset: *preset, Presets: presets})
}

// UpdatePreset handles PUT /api/presets/:id
func (h *PreferencesHandler) UpdatePreset(c *fiber.Ctx) error {
	var req model.PresetUpdateRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	preset, presets, err := h.service.UpdatePreset(c.UserContext(), middleware.GetUserID(c), c.Params("id"), &req)
	if err != nil {
		return storeError(c, err)
	}
	return response.OK(c, model.PresetResponse{Preset: *preset, Presets: presets})
}

// DeletePreset handles DELETE /api/presets/:id?active=
func (h *PreferencesHandler) DeletePreset(c *fiber.Ctx) error {
	result, err := h.service.DeletePreset(c.UserContext(), middleware.GetUserID(c), c.Params("id"), c.Query("active"))
	if err != nil {
		return storeError(c, err)
	}
	return response.OK(c, result)
}
