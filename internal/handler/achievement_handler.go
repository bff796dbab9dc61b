package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/progress-api/internal/handler/dto"
	"github.com/yourusername/progress-api/internal/service"
)

// AchievementHandler обрабатывает запросы журнала достижений
type AchievementHandler struct {
	achievementService *service.AchievementService
}

// NewAchievementHandler создает новый обработчик достижений
func NewAchievementHandler(achievementService *service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// GetAchievements возвращает все записи игрока (пустой массив для неизвестного игрока)
func (h *AchievementHandler) GetAchievements(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	rows, err := h.achievementService.GetAchievements(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err, errorMessages{Internal: "Failed to get achievements"})
		return
	}

	c.JSON(http.StatusOK, dto.NewAchievementsResponse(rows))
}

// SetAchievement записывает достижение; повторная запись отклоняется с 409
func (h *AchievementHandler) SetAchievement(c *gin.Context) {
	var req dto.SetAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	_, err := h.achievementService.UnlockAchievement(c.Request.Context(), req.UserID.Uint(), req.AchievementEnum, *req.Unlocked)
	if err != nil {
		handleError(c, err, errorMessages{
			NotFound: "User not found",
			Conflict: "Achievement already set",
			Internal: "Failed to set achievement",
		})
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Achievement set"})
}
