package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"studyhub/internal/config"
	"studyhub/internal/db"
	apihttp "studyhub/internal/http"
	"studyhub/internal/llm"
	"studyhub/internal/repository"
	"studyhub/internal/service"

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

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	courseRepo := repository.NewPgCourseRepository(pool)
	enrollmentRepo := repository.NewPgEnrollmentRepository(pool)
	noteRepo := repository.NewPgNoteRepository(pool)

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	if cfg.LLMAPIKey == "" {
		logger.Warn("llm api key not configured, chat runs in mock mode")
	}

	var (
		loginLimiter service.LoginRateLimiter
		tokenStore   service.RefreshTokenStore
		redisClient  *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, 10*time.Minute, 10)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	generationSvc := service.NewGenerationService(logger, llmClient, cfg.LLMAPIKey)
	contextSvc := service.NewBasicContextService(messageRepo)
	chatSvc := service.NewChatService(logger, sessionRepo, messageRepo, contextSvc, generationSvc)
	userSvc := service.NewUserService(logger, userRepo, loginLimiter)
	courseSvc := service.NewCourseService(logger, courseRepo, enrollmentRepo)
	noteSvc := service.NewNoteService(noteRepo)
	analyticsSvc := service.NewAnalyticsService(userRepo, courseRepo, enrollmentRepo)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	chatHandler := apihttp.NewChatHandler(logger, chatSvc)
	courseHandler := apihttp.NewCourseHandler(logger, courseSvc)
	adminHandler := apihttp.NewAdminHandler(logger, courseSvc)
	noteHandler := apihttp.NewNoteHandler(logger, noteSvc)
	analyticsHandler := apihttp.NewAnalyticsHandler(logger, analyticsSvc)

	router := apihttp.NewRouter(logger, jwtSvc, userHandler, chatHandler, courseHandler, adminHandler, noteHandler, analyticsHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
