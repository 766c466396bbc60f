package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port           string
	Env            string
	AllowedOrigins []string
	BodyLimitBytes int64

	Redis     RedisConfig
	Session   SessionConfig
	Search    SearchConfig
	Platforms PlatformsConfig
	AI        AIConfig
	AWS       AWSConfig
	RateLimit RateLimitConfig
}

// RedisConfig contains Redis connection parameters. An empty Host disables Redis.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis server is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// SessionConfig controls where chat conversations live and for how long.
type SessionConfig struct {
	Store           string // memory or redis
	IdleTTL         time.Duration
	CleanupInterval time.Duration
}

// SearchConfig contains platform fan-out and result shaping parameters.
type SearchConfig struct {
	PlatformTimeout time.Duration
	CacheTTL        time.Duration
	DefaultRegion   string
	PerPage         int
}

// PlatformsConfig holds credentials and endpoints of the food delivery platforms.
// Empty URLs use the public production endpoints.
type PlatformsConfig struct {
	TGOYemekAuthToken  string
	TGOYemekBaseURL    string
	YemeksepetiURL     string
	RestaurantParallel int
}

// AIConfig selects the chat, speech and transcription providers and holds their credentials.
type AIConfig struct {
	ChatProvider          string
	TTSProvider           string
	TranscriptionProvider string

	GroqAPIKey       string
	GroqChatModel    string
	GroqFastModel    string
	OpenAIAPIKey     string
	OpenAIChatModel  string
	GeminiAPIKey     string
	GeminiModel      string
	ElevenLabsAPIKey string
	ElevenLabsVoice  string
}

// AWSConfig contains AWS configuration for Polly. Credentials come from the default chain.
type AWSConfig struct {
	Region     string
	PollyVoice string
}

// RateLimitConfig limits AI endpoints per client IP.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "3000")
	cfg.Env = getEnv("ENV", "development")
	cfg.AllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", "*")
	cfg.BodyLimitBytes = int64(getEnvInt("BODY_LIMIT_BYTES", 10<<20))

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Platforms
	cfg.Platforms = PlatformsConfig{
		TGOYemekAuthToken:  getEnv("TGOYEMEK_AUTH_TOKEN", ""),
		TGOYemekBaseURL:    getEnv("TGOYEMEK_BASE_URL", ""),
		YemeksepetiURL:     getEnv("YEMEKSEPETI_GRAPHQL_URL", ""),
		RestaurantParallel: getEnvInt("TGOYEMEK_MENU_PARALLELISM", 5),
	}

	// AI providers
	cfg.AI = AIConfig{
		ChatProvider:          strings.ToLower(getEnv("CHAT_PROVIDER", "groq")),
		TTSProvider:           strings.ToLower(getEnv("TTS_PROVIDER", "elevenlabs")),
		TranscriptionProvider: strings.ToLower(getEnv("TRANSCRIPTION_PROVIDER", "openai")),
		GroqAPIKey:            getEnv("GROQ_API_KEY", ""),
		GroqChatModel:         getEnv("GROQ_CHAT_MODEL", "llama-3.3-70b-versatile"),
		GroqFastModel:         getEnv("GROQ_FAST_MODEL", "llama-3.1-8b-instant"),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIChatModel:       getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		ElevenLabsAPIKey:      getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoice:       getEnv("ELEVENLABS_VOICE_ID", "EXAVITQu4vr4xnSDxMaL"),
	}

	// AWS (Polly)
	cfg.AWS = AWSConfig{
		Region:     getEnv("AWS_REGION", "us-east-1"),
		PollyVoice: getEnv("POLLY_VOICE_ID", "Joanna"),
	}

	var err error

	// Sessions
	cfg.Session.Store = strings.ToLower(getEnv("SESSION_STORE", "memory"))
	if cfg.Session.IdleTTL, err = parseDurationEnv("SESSION_IDLE_TTL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TTL: %w", err)
	}
	if cfg.Session.CleanupInterval, err = parseDurationEnv("SESSION_CLEANUP_INTERVAL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_CLEANUP_INTERVAL: %w", err)
	}

	// Search
	cfg.Search.DefaultRegion = strings.ToLower(getEnv("DEFAULT_REGION", "tr"))
	cfg.Search.PerPage = getEnvInt("SEARCH_PER_PAGE", 12)
	if cfg.Search.PlatformTimeout, err = parseDurationEnv("PLATFORM_TIMEOUT", "20s"); err != nil {
		return nil, fmt.Errorf("invalid PLATFORM_TIMEOUT: %w", err)
	}
	if cfg.Search.CacheTTL, err = parseDurationEnv("SEARCH_CACHE_TTL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid SEARCH_CACHE_TTL: %w", err)
	}

	// Rate limit
	if cfg.RateLimit.RPS, err = parseFloatEnv("AI_RATE_LIMIT_RPS", "2"); err != nil {
		return nil, fmt.Errorf("invalid AI_RATE_LIMIT_RPS: %w", err)
	}
	cfg.RateLimit.Burst = getEnvInt("AI_RATE_LIMIT_BURST", 5)

	switch cfg.Session.Store {
	case "memory":
	case "redis":
		if !cfg.Redis.Enabled() {
			return nil, errors.New("SESSION_STORE=redis requires REDIS_HOST to be set")
		}
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q: use memory or redis", cfg.Session.Store)
	}

	if cfg.Session.CleanupInterval == 0 {
		return nil, errors.New("SESSION_CLEANUP_INTERVAL must be greater than zero")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key, def string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, def), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFloatEnv(key, def string) (float64, error) {
	f, err := strconv.ParseFloat(getEnv(key, def), 64)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("value must be > 0")
	}
	return f, nil
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
