package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/tunestory/api/internal/client"
	"github.com/tunestory/api/internal/config"
	"github.com/tunestory/api/internal/middleware"
	"github.com/tunestory/api/internal/server"
	"github.com/tunestory/api/internal/service"
	"github.com/tunestory/api/internal/storage"
	ws "github.com/tunestory/api/internal/websocket"
	"github.com/tunestory/api/internal/worker"
	"github.com/tunestory/api/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Without Redis, preferences live in memory and rate limiting is off
	var (
		kv      storage.KV
		limiter *middleware.RateLimiter
	)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis not available, using in-memory storage")
		kv = storage.NewMemoryKV()
		limiter = middleware.NewRateLimiter(nil)
	} else {
		kv = storage.NewRedisKV(redisClient)
		limiter = middleware.NewRateLimiter(redisClient)
	}
	store := storage.NewStore(kv)
	jobs := storage.NewJobStore(kv, cfg.Generation.JobTTL)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	hub := ws.NewHub()
	go hub.Run(ctx)

	// Initialize external clients
	visionClient := client.NewVisionClient(&cfg.Vision)
	spotifyClient := client.NewSpotifyClient(&cfg.Spotify)
	musicgenClient := client.NewMusicGenClient(&cfg.MusicGen)

	// R2 is optional; without it generated audio is returned inline
	var storageClient client.StorageClient
	if cfg.R2.AccessKeyID != "" && cfg.R2.SecretAccessKey != "" {
		r2Client, err := client.NewR2Client(ctx, &cfg.R2)
		if err != nil {
			log.Warn().Err(err).Msg("R2 client not initialized")
		} else {
			storageClient = r2Client
		}
	} else {
		log.Info().Msg("R2 storage not configured, returning audio as data URLs")
	}

	generationService := service.NewGenerationService(jobs, asynqClient, cfg.Generation)

	app := server.New(server.Options{
		Config: cfg,
		Services: server.Services{
			Refine:         service.NewRefineService(store),
			Augment:        service.NewAugmentService(visionClient),
			Analysis:       service.NewAnalysisService(visionClient),
			MusicAnalysis:  service.NewMusicAnalysisService(spotifyClient),
			Recommendation: service.NewRecommendationService(spotifyClient),
			Generation:     generationService,
			Preferences:    service.NewPreferenceService(store),
		},
		Hub:         hub,
		RateLimiter: limiter,
		Providers: map[string]bool{
			"vision":   visionClient.IsConfigured(),
			"spotify":  spotifyClient.IsConfigured(),
			"musicgen": musicgenClient.IsConfigured(),
			"r2":       storageClient != nil,
		},
	})

	if cfg.Gateway.Enabled {
		log.Info().Msg("gateway mode enabled, using header-based auth")
	}

	// Start Asynq worker server
	genWorker := worker.NewGenerationWorker(generationService, musicgenClient, storageClient, hub)
	srv := newWorkerServer(cfg, redisOpt)
	mux := asynq.NewServeMux()
	mux.HandleFunc(service.TaskTypeGenerate, genWorker.ProcessTask)
	go func() {
		if err := srv.Run(mux); err != nil {
			log.Error().Err(err).Msg("asynq worker stopped")
		}
	}()

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
		srv.Shutdown()
	}()

	addr := ":" + cfg.Server.Port
	log.Info().Str("addr", addr).Str("env", cfg.Server.Env).Msg("server starting")
	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}

func newWorkerServer(cfg *config.Config, redisOpt asynq.RedisClientOpt) *asynq.Server {
	asynqLogLevel := asynq.InfoLevel
	switch strings.ToLower(cfg.Server.LogLevel) {
	case "debug":
		asynqLogLevel = asynq.DebugLevel
	case "warn":
		asynqLogLevel = asynq.WarnLevel
	case "error":
		asynqLogLevel = asynq.ErrorLevel
	}

	concurrency := cfg.Generation.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			service.QueueGenerate: 1,
		},
		LogLevel: asynqLogLevel,
	})
}
