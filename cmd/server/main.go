package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/teetime/internal/api"
	"github.com/Rrens/teetime/internal/availability"
	"github.com/Rrens/teetime/internal/chat"
	"github.com/Rrens/teetime/internal/config"
	"github.com/Rrens/teetime/internal/llm"
	"github.com/Rrens/teetime/internal/llm/anthropic"
	"github.com/Rrens/teetime/internal/llm/deepseek"
	"github.com/Rrens/teetime/internal/llm/gemini"
	"github.com/Rrens/teetime/internal/llm/ollama"
	"github.com/Rrens/teetime/internal/llm/openai"
	"github.com/Rrens/teetime/internal/logging"
	"github.com/Rrens/teetime/internal/repository"
	"github.com/Rrens/teetime/internal/repository/redis"
	"github.com/Rrens/teetime/internal/security"
	"github.com/Rrens/teetime/internal/service"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	envLoaded := ""
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			envLoaded = p
			break
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCloser, err := logging.Setup(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	if envLoaded != "" {
		log.Debug().Str("path", envLoaded).Msg("Loaded .env")
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Driver).
		Msg("Starting tee time booking API server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.AutoMigrate {
		if err := repository.RunMigrations(cfg.Database); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	// Initialize database
	stores, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer stores.Close()

	// Initialize Redis
	availabilityOpts := []availability.Option{
		availability.WithLocation(availability.LoadLocation(cfg.Chat.Timezone)),
	}
	var limiter *redis.RateLimiter
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		limiter = redis.NewRateLimiter(
			redisClient,
			cfg.Security.RateLimit.RequestsPerMinute,
			cfg.Security.RateLimit.Burst,
		)
		if cfg.Chat.ContextCacheTTL > 0 {
			availabilityOpts = append(availabilityOpts,
				availability.WithCache(redis.NewContextCache(redisClient), cfg.Chat.ContextCacheTTL))
		}
	} else {
		log.Warn().Msg("Redis disabled: chat rate limiting and context caching are off")
	}

	contexts := availability.NewProvider(stores.Availability, availabilityOpts...)

	// Initialize LLM Router with providers
	llmRouter := newLLMRouter(cfg.LLM)
	defer func() {
		if err := llmRouter.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close LLM providers")
		}
	}()

	chatProvider, err := llmRouter.GetProvider(cfg.Chat.Provider)
	if err != nil {
		log.Warn().Err(err).Msg("Chat provider unavailable, chat requests will fail until it is configured")
		chatProvider, _ = llmRouter.Lookup("gemini")
	}

	store := chat.NewMemoryStore(cfg.Chat.IdleTimeout, chat.WithEvictHook(func(e chat.Entry) {
		log.Debug().Str("user_id", e.UserID).Time("last_activity", e.LastActivity).Msg("Conversation evicted")
	}))
	manager := chat.NewManager(store, chatProvider, contexts, chat.ManagerConfig{
		Retry: chat.RetryPolicy{
			Attempts: cfg.Chat.MaxAttempts,
			Backoff:  chat.LinearBackoff(cfg.Chat.RetryStep),
		},
		RequestTimeout: cfg.Chat.RequestTimeout,
	})

	sweeper := chat.NewSweeper(store, cfg.Chat.SweepInterval)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	// Initialize services
	courseService := service.NewCourseService(stores.Courses, contexts)
	teeTimeService := service.NewTeeTimeService(stores.TeeTimes, stores.Courses, contexts)

	deps := api.Dependencies{
		Config:         cfg,
		DB:             stores.DB,
		Tokens:         security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL),
		Courses:        courseService,
		TeeTimes:       teeTimeService,
		Chat:           manager,
		Providers:      llmRouter,
		ActiveSessions: manager.ActiveSessions,
	}
	if limiter != nil {
		deps.Limiter = limiter
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Int("active_sessions", manager.ActiveSessions()).Msg("Server stopped")
}

func newLLMRouter(cfg config.LLMConfig) *llm.Router {
	llmRouter := llm.NewRouter(cfg.DefaultProvider)
	log.Info().Msgf("Initializing LLM providers. Default: %s", cfg.DefaultProvider)

	if cfg.Ollama.Host != "" {
		log.Info().Str("host", cfg.Ollama.Host).Msg("Registering Ollama provider")
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.Ollama.Host, cfg.Ollama.DefaultModel))
	}
	if cfg.OpenAI.APIKey != "" {
		llmRouter.RegisterProvider(openai.NewProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model))
	}
	if cfg.Anthropic.APIKey != "" {
		llmRouter.RegisterProvider(anthropic.NewProvider(cfg.Anthropic.APIKey, cfg.Anthropic.Model))
	}
	if cfg.DeepSeek.APIKey != "" {
		llmRouter.RegisterProvider(deepseek.NewProvider(cfg.DeepSeek.APIKey, cfg.DeepSeek.Model))
	}

	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("Gemini API Key is empty, provider registered as unconfigured")
	}
	llmRouter.RegisterProvider(gemini.NewProvider(cfg.Gemini))

	return llmRouter
}
