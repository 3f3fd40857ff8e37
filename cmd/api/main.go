package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/db"
	apihttp "careerpath/internal/http"
	"careerpath/internal/llm"
	"careerpath/internal/repository"
	"careerpath/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	profileRepo := repository.NewPgProfileRepository(pool)
	questionnaireRepo := repository.NewPgQuestionnaireRepository(pool)
	recommendationRepo := repository.NewPgRecommendationRepository(pool)

	var llmClient llm.LLMClient
	if cfg.ExternalEnabled() {
		llmClient, err = llm.NewProvider(ctx, llm.ProviderConfig{
			Provider: cfg.LLMProvider,
			APIKey:   cfg.GenAIAPIKey,
			Model:    cfg.GenAIModel,
			Endpoint: cfg.GenAIEndpoint,
			BaseURL:  cfg.LLMBaseURL,
			Timeout:  cfg.LLMTimeout(),
		}, logger)
		if err != nil {
			logger.Warn("llm provider init failed, using heuristic recommendations only", zap.Error(err))
			llmClient = nil
		}
	} else {
		logger.Info("external model disabled: GENAI_API_KEY not set")
	}
	gateway := service.NewModelGateway(llmClient, cfg.GenAIModel, cfg.LLMTimeout(), logger)
	engine := service.NewRecommendationEngine(gateway, cfg.PromptVersion, logger)

	window := time.Duration(cfg.SubmissionRateWindowMinutes) * time.Minute
	limiter := service.NewSubmissionRateLimiter(window, cfg.SubmissionRateLimit)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory rate limiter", zap.Error(err))
		} else {
			limiter = service.NewRedisSubmissionRateLimiter(redisClient, window, cfg.SubmissionRateLimit, logger)
		}
		cancel()
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, 0)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	recSvc := service.NewRecommendationService(logger, userRepo, questionnaireRepo, recommendationRepo, engine, limiter,
		service.RecommendationOptions{
			PerSubmission:  cfg.RecommendationsPerSubmission,
			DashboardLimit: cfg.DashboardLimit,
			RecycleBinDays: cfg.RecycleBinDays,
		})
	profileSvc := service.NewProfileService(logger, profileRepo)

	router := apihttp.NewRouter(
		logger,
		jwtSvc,
		apihttp.NewRecommendationHandler(logger, recSvc),
		apihttp.NewProfileHandler(logger, profileSvc),
		func(ctx context.Context) error { return db.Ping(ctx, pool) },
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.Bool("external_model", gateway.Enabled()),
		zap.String("prompt_version", cfg.PromptVersion),
		zap.String("action_plan_catalog", service.ActionPlanCatalogVersion),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
