package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/progress-api/internal/handler/dto"
	"github.com/yourusername/progress-api/internal/service"
)

var userErrors = errorMessages{
	NotFound: "User not found",
	Conflict: "User already exists",
	Internal: "Failed to create user",
}

// UserHandler обрабатывает запросы, связанные с игроками
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик игроков
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser регистрирует игрока и его нулевые рекорды
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	user, err := h.userService.CreatePlayer(c.Request.Context(), req.Username, req.Mode, req.GameCode)
	if err != nil {
		handleError(c, err, userErrors)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCreateUserResponse(user))
}

// GetUser возвращает игрока по userId
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	user, err := h.userService.GetPlayer(c.Request.Context(), userID)
	if err != nil {
		msgs := userErrors
		msgs.Internal = "Failed to get user"
		handleError(c, err, msgs)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
