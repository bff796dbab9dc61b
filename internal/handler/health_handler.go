package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck проверяет одну зависимость
type HealthCheck func(ctx context.Context) error

// HealthHandler сообщает о состоянии хранилища и Redis
type HealthHandler struct {
	database HealthCheck
	redis    HealthCheck
}

// NewHealthHandler создает обработчик. redis может быть nil, если Redis отключён.
func NewHealthHandler(database, redis HealthCheck) *HealthHandler {
	return &HealthHandler{database: database, redis: redis}
}

// Health отвечает 200, если все настроенные зависимости доступны, иначе 503
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	healthy := true
	check := func(fn HealthCheck) string {
		if fn == nil {
			return "disabled"
		}
		if err := fn(ctx); err != nil {
			healthy = false
			return "down"
		}
		return "up"
	}

	body := gin.H{
		"database": check(h.database),
		"redis":    check(h.redis),
	}
	status := http.StatusOK
	body["status"] = "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}
