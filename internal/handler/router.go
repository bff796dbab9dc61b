package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/progress-api/internal/middleware"
	"github.com/yourusername/progress-api/internal/service"
)

// RouterDeps - всё, что нужно для сборки HTTP-роутера
type RouterDeps struct {
	Progress *service.ProgressService
	Answers  *service.AnswerService

	DatabaseHealth HealthCheck
	RedisHealth    HealthCheck

	// RateLimiter может быть nil, тогда ограничение частоты отключено
	RateLimiter      *middleware.RateLimiter
	WriteRateLimit   middleware.RateLimitConfig
	GradingRateLimit middleware.RateLimitConfig

	// Metrics может быть nil, тогда /metrics не регистрируется
	Metrics        MetricsProvider
	MetricsPath    string
	AllowOrigins   []string
	TrustedProxies []string
}

// MetricsProvider - HTTP-метрики и обработчик их выдачи
type MetricsProvider interface {
	middleware.HTTPObserver
	Handler() http.Handler
}

// NewRouter собирает gin.Engine со всеми маршрутами сервиса
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())

	if err := router.SetTrustedProxies(deps.TrustedProxies); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	router.Use(cors.New(corsConfig(deps.AllowOrigins)))

	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(deps.Metrics.Handler()))
	}

	health := NewHealthHandler(deps.DatabaseHealth, deps.RedisHealth)
	router.GET("/health", health.Health)

	userHandler := NewUserHandler(deps.Progress.Users)
	achievementHandler := NewAchievementHandler(deps.Progress.Achievements)
	highScoreHandler := NewHighScoreHandler(deps.Progress.HighScores)
	leaderboardHandler := NewLeaderboardHandler(deps.Progress.Leaderboard)
	answerHandler := NewAnswerHandler(deps.Answers)

	var writeLimit, gradingLimit gin.HandlerFunc = passThrough, passThrough
	if deps.RateLimiter != nil {
		writeLimit = deps.RateLimiter.LimitByIP(deps.WriteRateLimit)
		gradingLimit = deps.RateLimiter.Limit(deps.GradingRateLimit)
	}
	userIDQuery := middleware.ExtractUintQuery("userId", "userID")

	api := router.Group("/api")
	{
		api.GET("/users", userIDQuery, userHandler.GetUser)
		api.POST("/users", writeLimit, userHandler.CreateUser)

		api.GET("/achievements", userIDQuery, achievementHandler.GetAchievements)
		api.POST("/achievements", writeLimit, achievementHandler.SetAchievement)

		api.GET("/highscores", userIDQuery, highScoreHandler.GetHighScore)
		api.PUT("/highscores", writeLimit, highScoreHandler.SetHighScore)

		api.POST("/leaderboard", leaderboardHandler.GetLeaderboard)
		api.GET("/leaderboard/export", leaderboardHandler.ExportLeaderboard)

		api.POST("/answers", gradingLimit, answerHandler.GradeAnswer)
	}

	return router
}

func passThrough(c *gin.Context) {
	c.Next()
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
