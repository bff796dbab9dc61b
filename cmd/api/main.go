package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/yourusername/progress-api/internal/config"
	"github.com/yourusername/progress-api/internal/domain/repository"
	"github.com/yourusername/progress-api/internal/handler"
	"github.com/yourusername/progress-api/internal/middleware"
	"github.com/yourusername/progress-api/internal/repository/memory"
	pgRepo "github.com/yourusername/progress-api/internal/repository/postgres"
	"github.com/yourusername/progress-api/internal/service"
	"github.com/yourusername/progress-api/pkg/database"
	"github.com/yourusername/progress-api/pkg/grading"
	"github.com/yourusername/progress-api/pkg/metrics"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Хранилище
	repos, closeStorage, err := openStorage(cfg)
	if err != nil {
		log.Printf("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer closeStorage()

	// Redis нужен только для ограничения частоты запросов
	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		redisClient, err = database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Println("Successfully connected to Redis")
	}

	metricsManager := metrics.NewManager(metrics.WithRuntimeCollectors(cfg.Metrics.Enabled))

	// Сервисы
	progressService := service.NewProgressService(repos, metricsManager)

	var grader service.Grader
	if cfg.Grading.Enabled() {
		openaiGrader, err := grading.NewOpenAIGrader(grading.Config{
			APIKey:      cfg.Grading.APIKey,
			Model:       cfg.Grading.Model,
			BaseURL:     cfg.Grading.BaseURL,
			MaxTokens:   cfg.Grading.MaxTokens,
			Temperature: cfg.Grading.Temperature,
			Timeout:     time.Duration(cfg.Grading.TimeoutSec) * time.Second,
		})
		if err != nil {
			log.Printf("Failed to initialize grader: %v", err)
			os.Exit(1)
		}
		grader = openaiGrader
		log.Printf("Answer grading enabled (model: %s)", openaiGrader.ModelID())
	} else {
		log.Println("Answer grading disabled: GRADING_API_KEY is not set")
	}
	answerService := service.NewAnswerService(grader, metricsManager)

	// Роутер
	deps := handler.RouterDeps{
		Progress:       progressService,
		Answers:        answerService,
		DatabaseHealth: repos.Pinger.Ping,
		AllowOrigins:   cfg.CORS.AllowOrigins,
		TrustedProxies: trustedProxies(),
	}
	if redisClient != nil {
		deps.RedisHealth = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	if cfg.RateLimit.Enabled && redisClient != nil {
		deps.RateLimiter = middleware.NewRateLimiter(redisClient)
		deps.WriteRateLimit = middleware.WriteRateLimitConfig(cfg.RateLimit.WriteRequests, cfg.RateLimit.Window())
		deps.GradingRateLimit = middleware.GradingRateLimitConfig(cfg.RateLimit.Window())
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = metricsManager
		deps.MetricsPath = cfg.Metrics.Path
	}
	router := handler.NewRouter(deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}

// openStorage выбирает реализацию репозиториев по storage.driver
func openStorage(cfg *config.Config) (repository.Set, func(), error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Println("Using in-memory storage: data is lost on restart")
		return memory.New().RepositorySet(), func() {}, nil
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), cfg.Database.LogLevel)
	if err != nil {
		return repository.Set{}, nil, err
	}
	sqlDB, err := database.GetSQLDB(db)
	if err != nil {
		return repository.Set{}, nil, err
	}
	closeFn := func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	if cfg.Storage.AutoMigrate {
		if err := database.MigrateDB(db, cfg.Storage.MigrationsPath); err != nil {
			closeFn()
			return repository.Set{}, nil, err
		}
	}
	return pgRepo.NewRepositorySet(db), closeFn, nil
}

// trustedProxies: в release не доверяем прокси-заголовкам, в разработке доверяем localhost
func trustedProxies() []string {
	if gin.Mode() == gin.ReleaseMode {
		return nil
	}
	return []string{"127.0.0.1", "::1"}
}
