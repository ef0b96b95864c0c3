// Package server assembles the fiber application: global middleware, the
// authenticated /api routes and the job progress websocket.
package server

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tunestory/api/internal/config"
	"github.com/tunestory/api/internal/handler"
	"github.com/tunestory/api/internal/middleware"
	"github.com/tunestory/api/internal/service"
	ws "github.com/tunestory/api/internal/websocket"
	"github.com/tunestory/api/pkg/response"
)

const bodyLimit = 15 * 1024 * 1024 // base64 of a 10MB image

// Services are the domain services behind the handlers
type Services struct {
	Refine         *service.RefineService
	Augment        *service.AugmentService
	Analysis       *service.AnalysisService
	MusicAnalysis  *service.MusicAnalysisService
	Recommendation *service.RecommendationService
	Generation     *service.GenerationService
	Preferences    *service.PreferenceService
}

// Options configure New
type Options struct {
	Config      *config.Config
	Services    Services
	Hub         *ws.Hub
	RateLimiter *middleware.RateLimiter
	// Providers reports which external integrations are configured, for /health
	Providers map[string]bool
}

// New builds the fiber app with every route registered
func New(opts Options) *fiber.App {
	cfg := opts.Config
	validate := validator.New()
	svc := opts.Services

	catalogHandler := handler.NewCatalogHandler(svc.Refine, validate)
	selectionHandler := handler.NewSelectionHandler(validate)
	refineHandler := handler.NewRefineHandler(svc.Refine, svc.Augment, validate)
	analysisHandler := handler.NewAnalysisHandler(svc.Analysis, svc.MusicAnalysis, validate)
	recommendationHandler := handler.NewRecommendationHandler(svc.Recommendation, validate)
	generationHandler := handler.NewGenerationHandler(svc.Generation, opts.Hub, validate)
	preferencesHandler := handler.NewPreferencesHandler(svc.Preferences, validate)
	authHandler := handler.NewAuthHandler(cfg.JWT.Secret)

	var apiAuthMiddleware fiber.Handler
	if cfg.Gateway.Enabled {
		apiAuthMiddleware = middleware.GatewayAuthMiddleware()
	} else {
		apiAuthMiddleware = middleware.NewAuthMiddleware(cfg.JWT.Secret).Authenticate()
	}

	rateLimiter := opts.RateLimiter
	if rateLimiter == nil {
		rateLimiter = middleware.NewRateLimiter(nil)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: response.Handler,
		BodyLimit:    bodyLimit,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		ExposeHeaders: "X-Request-ID,Retry-After,X-RateLimit-Limit,X-RateLimit-Remaining",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"timestamp": time.Now().Unix(),
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		services := fiber.Map{"auth": cfg.JWT.Secret != "" || cfg.Gateway.Enabled}
		for name, ok := range opts.Providers {
			services[name] = ok
		}
		return c.JSON(fiber.Map{
			"status":   "ok",
			"services": services,
		})
	})

	app.Get("/auth/verify", authHandler.Verify)

	api := app.Group("/api", apiAuthMiddleware)

	cat := api.Group("/catalog")
	cat.Get("/instruments", catalogHandler.Instruments)
	cat.Get("/instruments/:id", catalogHandler.Instrument)
	cat.Get("/categories", catalogHandler.Categories)
	cat.Get("/presets", catalogHandler.Presets)
	cat.Get("/presets/:id", catalogHandler.Preset)
	cat.Get("/genres", catalogHandler.Genres)
	cat.Post("/genres/map", catalogHandler.MapGenre)

	selection := api.Group("/selection")
	selection.Post("/validate", selectionHandler.Validate)
	selection.Post("/compatible", selectionHandler.Compatible)
	selection.Post("/preset-match", selectionHandler.PresetMatch)
	selection.Post("/toggle", selectionHandler.Toggle)

	api.Post("/refine", refineHandler.Refine)
	api.Post("/prompt/build", refineHandler.BuildPrompt)
	api.Post("/prompt/augment", rateLimiter.AnalyzeLimit(cfg.RateLimit.AnalyzePerMin), refineHandler.Augment)

	analyze := api.Group("/analyze", rateLimiter.AnalyzeLimit(cfg.RateLimit.AnalyzePerMin))
	analyze.Post("/photo", analysisHandler.Photo)
	analyze.Post("/music", analysisHandler.Music)

	api.Post("/recommendations", rateLimiter.RecommendLimit(cfg.RateLimit.RecommendPerMin), recommendationHandler.Recommend)

	generate := api.Group("/generate")
	generate.Post("/", rateLimiter.GenerateLimit(cfg.RateLimit.GeneratePerHour), generationHandler.Start)
	generate.Get("/status/:jobId", generationHandler.Status)
	generate.Get("/result/:jobId", generationHandler.Result)
	generate.Post("/cancel/:jobId", generationHandler.Cancel)

	api.Get("/preferences", preferencesHandler.Get)
	api.Put("/preferences", preferencesHandler.Put)
	api.Delete("/preferences", preferencesHandler.Delete)
	api.Get("/presets", preferencesHandler.ListPresets)
	api.Post("/presets", preferencesHandler.CreatePreset)
	api.Put("/presets/:id", preferencesHandler.UpdatePreset)
	api.Delete("/presets/:id", preferencesHandler.DeletePreset)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/jobs/:jobId", websocket.New(generationHandler.Stream))

	return app
}
