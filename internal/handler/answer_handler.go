package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/progress-api/internal/handler/dto"
	"github.com/yourusername/progress-api/internal/service"
)

// AnswerHandler передаёт ответы игроков на оценку
type AnswerHandler struct {
	answerService *service.AnswerService
}

// NewAnswerHandler создает новый обработчик ответов
func NewAnswerHandler(answerService *service.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

// GradeAnswer возвращает текст оценки как JSON-строку
func (h *AnswerHandler) GradeAnswer(c *gin.Context) {
	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	result, err := h.answerService.GradeAnswer(c.Request.Context(), req.ToSubmission())
	if err != nil {
		handleError(c, err, errorMessages{Internal: "Failed to get answer"})
		return
	}

	c.JSON(http.StatusOK, result)
}
