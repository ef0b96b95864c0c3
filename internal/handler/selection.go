package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tunestory/api/internal/catalog"
	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/pkg/response"
)

// SelectionHandler exposes the instrument selection rules
type SelectionHandler struct {
	validator *validator.Validate
}

func NewSelectionHandler(v *validator.Validate) *SelectionHandler {
	return &SelectionHandler{validator: v}
}

// Validate handles POST /api/selection/validate
func (h *SelectionHandler) Validate(c *fiber.Ctx) error {
	var req model.SelectionRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}
	return response.OK(c, catalog.Validate(req.InstrumentIDs))
}

// Compatible handles POST /api/selection/compatible
func (h *SelectionHandler) Compatible(c *fiber.Ctx) error {
	var req model.SelectionRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}
	return response.OK(c, model.CompatibleResponse{Instruments: catalog.CompatibleInstruments(req.InstrumentIDs)})
}

// PresetMatch handles POST /api/selection/preset-match
func (h *SelectionHandler) PresetMatch(c *fiber.Ctx) error {
	var req model.SelectionRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	var resp model.PresetMatchResponse
	if p, ok := catalog.FindMatchingPreset(req.InstrumentIDs); ok {
		resp.Preset = &p
	}
	return response.OK(c, resp)
}

// Toggle handles POST /api/selection/toggle
func (h *SelectionHandler) Toggle(c *fiber.Ctx) error {
	var req model.ToggleRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}
	if _, ok := catalog.GetInstrument(req.InstrumentID); !ok {
		return response.NotFound(c, "Instrument not found")
	}

	ids := catalog.Toggle(req.InstrumentIDs, req.InstrumentID)
	return response.OK(c, model.ToggleResponse{
		InstrumentIDs: ids,
		Validation:    catalog.Validate(ids),
	})
}
