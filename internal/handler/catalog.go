package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tunestory/api/internal/catalog"
	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/internal/service"
	"github.com/tunestory/api/pkg/response"
)

// CatalogHandler serves the static instrument, preset and genre tables
type CatalogHandler struct {
	refine    *service.RefineService
	validator *validator.Validate
}

func NewCatalogHandler(refine *service.RefineService, v *validator.Validate) *CatalogHandler {
	return &CatalogHandler{
		refine:    refine,
		validator: v,
	}
}

// Instruments handles GET /api/catalog/instruments
func (h *CatalogHandler) Instruments(c *fiber.Ctx) error {
	category := c.Query("category")
	if category == "" {
		return response.OK(c, fiber.Map{"instruments": catalog.Instruments()})
	}
	if _, ok := catalog.GetCategory(category); !ok {
		return response.NotFound(c, "Category not found")
	}
	return response.OK(c, fiber.Map{"instruments": catalog.InstrumentsByCategory(category)})
}

// Instrument handles GET /api/catalog/instruments/:id
func (h *CatalogHandler) Instrument(c *fiber.Ctx) error {
	inst, ok := catalog.GetInstrument(c.Params("id"))
	if !ok {
		return response.NotFound(c, "Instrument not found")
	}
	return response.OK(c, inst)
}

// Categories handles GET /api/catalog/categories
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{"categories": catalog.Categories()})
}

// Presets handles GET /api/catalog/presets
func (h *CatalogHandler) Presets(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{"presets": catalog.Presets()})
}

// Preset handles GET /api/catalog/presets/:id
func (h *CatalogHandler) Preset(c *fiber.Ctx) error {
	p, ok := catalog.GetPreset(c.Params("id"))
	if !ok {
		return response.NotFound(c, "Preset not found")
	}
	return response.OK(c, p)
}

// Genres handles GET /api/catalog/genres
func (h *CatalogHandler) Genres(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{"genres": catalog.Genres()})
}

// MapGenre handles POST /api/catalog/genres/map
func (h *CatalogHandler) MapGenre(c *fiber.Ctx) error {
	var req model.GenreMapRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}
	return response.OK(c, h.refine.MapGenre(req.Text))
}
