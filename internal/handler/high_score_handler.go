package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/progress-api/internal/handler/dto"
	"github.com/yourusername/progress-api/internal/service"
)

var highScoreErrors = errorMessages{
	NotFound: "No highscores found",
	Internal: "Failed to get highscores",
}

// HighScoreHandler обрабатывает запросы таблицы рекордов
type HighScoreHandler struct {
	highScoreService *service.HighScoreService
}

// NewHighScoreHandler создает новый обработчик рекордов
func NewHighScoreHandler(highScoreService *service.HighScoreService) *HighScoreHandler {
	return &HighScoreHandler{highScoreService: highScoreService}
}

// GetHighScore возвращает рекорд в категории highScoreEnum,
// а без этого параметра - все рекорды игрока
func (h *HighScoreHandler) GetHighScore(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	category, ok := c.GetQuery("highScoreEnum")
	if ok && category == "" {
		respondError(c, http.StatusBadRequest, "userId and highScoreEnum are required")
		return
	}

	if !ok {
		rows, err := h.highScoreService.ListHighScores(c.Request.Context(), userID)
		if err != nil {
			handleError(c, err, highScoreErrors)
			return
		}
		c.JSON(http.StatusOK, dto.NewHighScoreEntries(rows))
		return
	}

	value, err := h.highScoreService.GetHighScore(c.Request.Context(), userID, category)
	if err != nil {
		handleError(c, err, highScoreErrors)
		return
	}

	c.JSON(http.StatusOK, dto.HighScoreResponse{HighScore: value})
}

// SetHighScore безусловно перезаписывает рекорд
func (h *HighScoreHandler) SetHighScore(c *gin.Context) {
	var req dto.SetHighScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	err := h.highScoreService.SetHighScore(c.Request.Context(), req.UserID.Uint(), req.HighScoreEnum, *req.HighScore)
	if err != nil {
		handleError(c, err, errorMessages{
			NotFound: "No highscores found",
			Internal: "Failed to set highscore",
		})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Highscore set"})
}
