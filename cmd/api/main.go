package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/food_finder/internal/cache"
	"github.com/GTDGit/food_finder/internal/config"
	"github.com/GTDGit/food_finder/internal/handler"
	"github.com/GTDGit/food_finder/internal/middleware"
	"github.com/GTDGit/food_finder/internal/service"
	"github.com/GTDGit/food_finder/internal/worker"
	"github.com/GTDGit/food_finder/pkg/tgoyemek"
	"github.com/GTDGit/food_finder/pkg/yemeksepeti"
)

// main is the application entrypoint for the food finder API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting food finder api")

	// 3. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Connect to Redis (optional)
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Info().Msg("redis connected successfully")
	}

	// 4a. Search result cache
	var searchCache *cache.SearchCache
	if redisClient != nil && cfg.Search.CacheTTL > 0 {
		searchCache = cache.NewSearchCache(redisClient, cfg.Search.CacheTTL)
		log.Info().Dur("ttl", cfg.Search.CacheTTL).Msg("search cache enabled")
	}

	// 4b. Conversation store
	var (
		conversations service.ConversationStore
		memoryStore   *cache.MemoryConversationStore
	)
	switch cfg.Session.Store {
	case "redis":
		if redisClient == nil {
			fmt.Fprintln(os.Stderr, "SESSION_STORE=redis requires REDIS_HOST")
			os.Exit(1)
		}
		conversations = cache.NewRedisConversationStore(redisClient, cfg.Session.IdleTTL)
	default:
		memoryStore = cache.NewMemoryConversationStore()
		conversations = memoryStore
	}
	log.Info().Str("store", cfg.Session.Store).Msg("conversation store ready")

	// 5. Initialize platform clients
	tgoClient := tgoyemek.NewClient(tgoyemek.Config{
		BaseURL:     cfg.Platforms.TGOYemekBaseURL,
		AuthToken:   cfg.Platforms.TGOYemekAuthToken,
		Parallelism: cfg.Platforms.RestaurantParallel,
	})
	if cfg.Platforms.TGOYemekAuthToken == "" {
		log.Warn().Msg("TGOYEMEK_AUTH_TOKEN not set - tgoyemek searches may be rejected")
	}
	ysClient := yemeksepeti.NewClient(cfg.Platforms.YemeksepetiURL, 0)

	// 5a. Initialize Platform Router for multi-platform search
	platformRouter := service.NewPlatformRouter(cfg.Search.PlatformTimeout, searchCache)
	platformRouter.RegisterPlatform(service.NewTGOYemekPlatform(tgoClient))
	log.Info().Msg("TGO Yemek platform registered")
	platformRouter.RegisterPlatform(service.NewYemeksepetiPlatform(ysClient))
	log.Info().Msg("Yemeksepeti platform registered")

	// 6. Initialize AI providers
	providers, err := service.NewAIProviders(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("AI provider initialization failed")
		fmt.Fprintf(os.Stderr, "AI provider initialization failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().
		Str("chat", providers.Chat.Name()).
		Str("tts", providers.TTS.Name()).
		Str("transcription", providers.Transcription.Name()).
		Msg("AI providers configured")

	// 7. Initialize services
	searchSvc := service.NewSearchService(platformRouter, cfg.Search.DefaultRegion, cfg.Search.PerPage)
	translateSvc := service.NewTranslateService(providers.Chat)
	chatSvc := service.NewChatService(conversations, providers.Chat, providers.TTS, providers.Transcription)
	voiceSvc := service.NewVoiceService(providers.Chat, searchSvc, translateSvc)
	speechSvc := service.NewSpeechService(providers.TTS, providers.Transcription)

	// 8. Initialize handlers
	var redisPinger handler.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}
	handlers := &Handlers{
		Health:    handler.NewHealthHandler(providers, redisPinger),
		Search:    handler.NewSearchHandler(searchSvc),
		Chat:      handler.NewChatHandler(chatSvc),
		Voice:     handler.NewVoiceHandler(voiceSvc),
		Speech:    handler.NewSpeechHandler(speechSvc),
		Translate: handler.NewTranslateHandler(translateSvc),
	}

	// 9. Initialize middleware
	aiLimiter := middleware.NewIPRateLimiter(ctx, cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	// 10. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.BodyLimitMiddleware(cfg.BodyLimitBytes))
	setupRoutes(router, handlers, aiLimiter)

	// 11. Start workers
	if memoryStore != nil {
		go worker.NewSessionCleanupWorker(memoryStore, cfg.Session.IdleTTL, cfg.Session.CleanupInterval).Start(ctx)
	}

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Search    *handler.SearchHandler
	Chat      *handler.ChatHandler
	Voice     *handler.VoiceHandler
	Speech    *handler.SpeechHandler
	Translate *handler.TranslateHandler
}

// setupRoutes registers all routes. Endpoints that call an AI provider sit behind the per-IP limiter.
func setupRoutes(router *gin.Engine, handlers *Handlers, aiLimiter *middleware.IPRateLimiter) {
	router.GET("/health", handlers.Health.GetHealth)

	api := router.Group("/api")
	{
		api.POST("/search", handlers.Search.Search)

		api.GET("/chat/history/:sessionId", handlers.Chat.History)
		api.DELETE("/chat/:sessionId", handlers.Chat.Clear)

		api.GET("/tts/voices", handlers.Speech.Voices)
		api.GET("/translate/phrases/:language", handlers.Translate.Phrases)
		api.GET("/translate/languages", handlers.Translate.Languages)
	}

	ai := router.Group("/api")
	ai.Use(aiLimiter.Middleware())
	{
		ai.POST("/chat/start", handlers.Chat.Start)
		ai.POST("/chat", handlers.Chat.Chat)
		ai.POST("/chat/audio", handlers.Chat.Audio)
		ai.POST("/process-voice", handlers.Voice.ProcessVoice)
		ai.POST("/transcribe", handlers.Speech.Transcribe)
		ai.POST("/tts", handlers.Speech.Synthesize)
		ai.POST("/translate", handlers.Translate.Translate)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
