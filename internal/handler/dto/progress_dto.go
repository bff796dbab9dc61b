package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/progress-api/internal/domain/entity"
)

// FlexibleID принимает идентификатор как числом, так и числовой строкой ("42").
// Клиенты хранят userId в localStorage и присылают его строкой.
type FlexibleID uint

// UnmarshalJSON реализует json.Unmarshaler
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid id %q", raw)
	}
	*id = FlexibleID(v)
	return nil
}

// Uint возвращает значение как uint
func (id FlexibleID) Uint() uint {
	return uint(id)
}

// CreateUserRequest - тело POST /api/users
type CreateUserRequest struct {
	Username string  `json:"username" binding:"required"`
	Mode     string  `json:"mode" binding:"required"`
	GameCode *string `json:"gameCode"`
}

// UserData - игрок в ответе на создание
type UserData struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	GameCode *string `json:"gameCode"`
}

// CreateUserResponse - ответ POST /api/users
type CreateUserResponse struct {
	UserData []UserData `json:"userData"`
}

// UserResponse - ответ GET /api/users
type UserResponse struct {
	ID       uint    `json:"id"`
	UserName string  `json:"userName"`
	GameCode *string `json:"gameCode"`
}

// NewUserResponse строит ответ GET /api/users
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, UserName: u.Name, GameCode: u.GameCode}
}

// NewCreateUserResponse строит ответ POST /api/users
func NewCreateUserResponse(u *entity.User) CreateUserResponse {
	return CreateUserResponse{UserData: []UserData{{ID: u.ID, Name: u.Name, GameCode: u.GameCode}}}
}

// SetAchievementRequest - тело POST /api/achievements
type SetAchievementRequest struct {
	UserID          FlexibleID `json:"userId" binding:"required"`
	AchievementEnum string     `json:"achievementEnum" binding:"required"`
	Unlocked        *bool      `json:"unlocked" binding:"required"`
}

// AchievementResponse - элемент ответа GET /api/achievements
type AchievementResponse struct {
	AchievementEnum string `json:"achievementEnum"`
	IsAchieved      bool   `json:"isAchieved"`
	UserID          uint   `json:"userId"`
}

// NewAchievementsResponse строит ответ GET /api/achievements (всегда массив, не null)
func NewAchievementsResponse(rows []entity.Achievement) []AchievementResponse {
	out := make([]AchievementResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, AchievementResponse{AchievementEnum: a.Key, IsAchieved: a.Achieved, UserID: a.UserID})
	}
	return out
}

// SetHighScoreRequest - тело PUT /api/highscores
type SetHighScoreRequest struct {
	UserID        FlexibleID `json:"userId" binding:"required"`
	HighScore     *int64     `json:"highScore" binding:"required"`
	HighScoreEnum string     `json:"highScoreEnum" binding:"required"`
}

// HighScoreResponse - ответ GET /api/highscores с highScoreEnum
type HighScoreResponse struct {
	HighScore int64 `json:"highScore"`
}

// HighScoreEntry - элемент ответа GET /api/highscores без highScoreEnum
type HighScoreEntry struct {
	HighScoreEnum string `json:"highScoreEnum"`
	HighScore     int64  `json:"highScore"`
}

// NewHighScoreEntries строит список рекордов игрока
func NewHighScoreEntries(rows []entity.HighScore) []HighScoreEntry {
	out := make([]HighScoreEntry, 0, len(rows))
	for _, hs := range rows {
		out = append(out, HighScoreEntry{HighScoreEnum: string(hs.Category), HighScore: hs.Value})
	}
	return out
}

// LeaderboardRequest - тело POST /api/leaderboard
type LeaderboardRequest struct {
	GameCode string `json:"gameCode" binding:"required"`
}

// AnswerRequest - тело POST /api/answers
type AnswerRequest struct {
	Situation string `json:"situation" binding:"required"`
	UserInput string `json:"userInput"`
	Solution  string `json:"solution" binding:"required"`
}

// ToSubmission преобразует запрос в доменную структуру
func (r AnswerRequest) ToSubmission() entity.AnswerSubmission {
	return entity.AnswerSubmission{Situation: r.Situation, UserInput: r.UserInput, Solution: r.Solution}
}

// MessageResponse - ответ с одним сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse - единый формат ошибки
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
