package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/progress-api/internal/handler/dto"
	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
	"github.com/yourusername/progress-api/internal/service"
)

const msgInvalidRequest = "Invalid request data"

// errorMessages - тексты ошибок конкретного эндпоинта
type errorMessages struct {
	NotFound string
	Conflict string
	// Internal используется как поле error при неожиданных ошибках
	Internal string
}

// respondError пишет ошибку в формате {"error": msg, "message": msg}
func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg, Message: msg})
}

// invalidRequest отвечает 400 на невалидное тело или параметры
func invalidRequest(c *gin.Context, err error) {
	if err != nil {
		log.Printf("[Handler] Невалидный запрос %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	respondError(c, http.StatusBadRequest, msgInvalidRequest)
}

// handleError переводит доменную ошибку в HTTP-ответ
func handleError(c *gin.Context, err error, msgs errorMessages) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		invalidRequest(c, err)
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, msgs.NotFound)
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, msgs.Conflict)
	case errors.Is(err, service.ErrGradingDisabled):
		respondError(c, http.StatusServiceUnavailable, "Answer grading is not configured")
	case errors.Is(err, apperrors.ErrUpstream):
		c.AbortWithStatusJSON(http.StatusBadGateway, dto.ErrorResponse{Error: msgs.Internal, Message: "Upstream service failed"})
	default:
		log.Printf("[Handler] Внутренняя ошибка %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msgs.Internal, Message: "Internal server error"})
	}
}
