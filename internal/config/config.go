package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// readSecret resolves a Docker secret: when FOO is unset and FOO_FILE points
// at a readable file, FOO is set to the file's trimmed content.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	filePath := os.Getenv(envKey + "_FILE")
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	os.Setenv(envKey, strings.TrimSpace(string(data)))
}

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	JWT        JWTConfig
	RateLimit  RateLimitConfig
	Vision     VisionConfig
	Spotify    SpotifyConfig
	MusicGen   MusicGenConfig
	R2         R2Config
	Gateway    GatewayConfig
	Generation GenerationConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration int // hours
}

type RateLimitConfig struct {
	AnalyzePerMin   int
	RecommendPerMin int
	GeneratePerHour int
}

// VisionConfig points at an OpenAI-compatible chat completions API with image input
type VisionConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
	Market       string
}

type MusicGenConfig struct {
	ServiceURL string
	Timeout    int // seconds
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
}

type GatewayConfig struct {
	Enabled bool
}

type GenerationConfig struct {
	DefaultDuration    int
	DefaultTemperature float64
	DefaultModelSize   string
	Concurrency        int
	JobTTL             time.Duration
}

func Load() (*Config, error) {
	readSecret("REDIS_PASSWORD")
	readSecret("JWT_SECRET")
	readSecret("VISION_API_KEY")
	readSecret("SPOTIFY_CLIENT_SECRET")
	readSecret("R2_ACCOUNT_ID")
	readSecret("R2_ACCESS_KEY_ID")
	readSecret("R2_SECRET_ACCESS_KEY")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()

	_ = v.BindEnv("server.port", "SERVER_PORT")
	_ = v.BindEnv("server.env", "SERVER_ENV")
	_ = v.BindEnv("server.log_level", "LOG_LEVEL")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	_ = v.BindEnv("ratelimit.analyze_per_min", "RATELIMIT_ANALYZE_PER_MIN")
	_ = v.BindEnv("ratelimit.recommend_per_min", "RATELIMIT_RECOMMEND_PER_MIN")
	_ = v.BindEnv("ratelimit.generate_per_hour", "RATELIMIT_GENERATE_PER_HOUR")
	_ = v.BindEnv("vision.api_key", "VISION_API_KEY")
	_ = v.BindEnv("vision.base_url", "VISION_BASE_URL")
	_ = v.BindEnv("vision.model", "VISION_MODEL")
	_ = v.BindEnv("spotify.client_id", "SPOTIFY_CLIENT_ID")
	_ = v.BindEnv("spotify.client_secret", "SPOTIFY_CLIENT_SECRET")
	_ = v.BindEnv("spotify.base_url", "SPOTIFY_BASE_URL")
	_ = v.BindEnv("spotify.token_url", "SPOTIFY_TOKEN_URL")
	_ = v.BindEnv("spotify.market", "SPOTIFY_MARKET")
	_ = v.BindEnv("musicgen.service_url", "MUSICGEN_SERVICE_URL")
	_ = v.BindEnv("musicgen.timeout", "MUSICGEN_TIMEOUT")
	_ = v.BindEnv("r2.account_id", "R2_ACCOUNT_ID")
	_ = v.BindEnv("r2.access_key_id", "R2_ACCESS_KEY_ID")
	_ = v.BindEnv("r2.secret_access_key", "R2_SECRET_ACCESS_KEY")
	_ = v.BindEnv("r2.bucket_name", "R2_BUCKET_NAME")
	_ = v.BindEnv("r2.public_url", "R2_PUBLIC_URL")
	_ = v.BindEnv("gateway.enabled", "GATEWAY_ENABLED")
	_ = v.BindEnv("generation.default_duration", "GENERATION_DEFAULT_DURATION")
	_ = v.BindEnv("generation.default_temperature", "GENERATION_DEFAULT_TEMPERATURE")
	_ = v.BindEnv("generation.default_model_size", "GENERATION_DEFAULT_MODEL_SIZE")
	_ = v.BindEnv("generation.concurrency", "GENERATION_CONCURRENCY")
	_ = v.BindEnv("generation.job_ttl", "GENERATION_JOB_TTL")

	v.SetDefault("server.port", "8000")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.expiration", 24)
	v.SetDefault("ratelimit.analyze_per_min", 20)
	v.SetDefault("ratelimit.recommend_per_min", 30)
	v.SetDefault("ratelimit.generate_per_hour", 10)

	v.SetDefault("vision.base_url", "https://api.openai.com/v1")
	v.SetDefault("vision.model", "gpt-4o-mini")

	v.SetDefault("spotify.base_url", "https://api.spotify.com/v1")
	v.SetDefault("spotify.token_url", "https://accounts.spotify.com/api/token")
	v.SetDefault("spotify.market", "US")

	v.SetDefault("musicgen.timeout", 300)

	v.SetDefault("gateway.enabled", false)

	v.SetDefault("generation.default_duration", 30)
	v.SetDefault("generation.default_temperature", 1.0)
	v.SetDefault("generation.default_model_size", "small")
	v.SetDefault("generation.concurrency", 2)
	v.SetDefault("generation.job_ttl", "24h")

	// config file is optional
	_ = v.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:     v.GetString("server.port"),
			Env:      v.GetString("server.env"),
			LogLevel: v.GetString("server.log_level"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			Expiration: v.GetInt("jwt.expiration"),
		},
		RateLimit: RateLimitConfig{
			AnalyzePerMin:   v.GetInt("ratelimit.analyze_per_min"),
			RecommendPerMin: v.GetInt("ratelimit.recommend_per_min"),
			GeneratePerHour: v.GetInt("ratelimit.generate_per_hour"),
		},
		Vision: VisionConfig{
			APIKey:  v.GetString("vision.api_key"),
			BaseURL: v.GetString("vision.base_url"),
			Model:   v.GetString("vision.model"),
		},
		Spotify: SpotifyConfig{
			ClientID:     v.GetString("spotify.client_id"),
			ClientSecret: v.GetString("spotify.client_secret"),
			BaseURL:      v.GetString("spotify.base_url"),
			TokenURL:     v.GetString("spotify.token_url"),
			Market:       v.GetString("spotify.market"),
		},
		MusicGen: MusicGenConfig{
			ServiceURL: v.GetString("musicgen.service_url"),
			Timeout:    v.GetInt("musicgen.timeout"),
		},
		R2: R2Config{
			AccountID:       v.GetString("r2.account_id"),
			AccessKeyID:     v.GetString("r2.access_key_id"),
			SecretAccessKey: v.GetString("r2.secret_access_key"),
			BucketName:      v.GetString("r2.bucket_name"),
			PublicURL:       v.GetString("r2.public_url"),
		},
		Gateway: GatewayConfig{
			Enabled: v.GetBool("gateway.enabled"),
		},
		Generation: GenerationConfig{
			DefaultDuration:    v.GetInt("generation.default_duration"),
			DefaultTemperature: v.GetFloat64("generation.default_temperature"),
			DefaultModelSize:   v.GetString("generation.default_model_size"),
			Concurrency:        v.GetInt("generation.concurrency"),
			JobTTL:             v.GetDuration("generation.job_ttl"),
		},
	}

	return cfg, nil
}
