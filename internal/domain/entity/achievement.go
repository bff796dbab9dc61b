package entity

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

// HiddenAchievementPrefix помечает служебные флаги, которые не учитываются в лидерборде
const HiddenAchievementPrefix = "#"

// MaxAchievementKeyLength совпадает с размером колонки achievement_key
const MaxAchievementKeyLength = 100

// Achievement - запись журнала достижений.
// Для пары (user_id, achievement_key) существует не более одной записи, после вставки она не меняется.
type Achievement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_achievements_user_key" json:"user_id"`
	Key       string    `gorm:"column:achievement_key;size:100;not null;uniqueIndex:idx_achievements_user_key" json:"key"`
	Achieved  bool      `gorm:"column:is_achieved;not null;default:false" json:"achieved"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Achievement) TableName() string {
	return "achievements"
}

// IsHidden сообщает, является ли ключ служебным
func (a *Achievement) IsHidden() bool {
	return IsHiddenAchievementKey(a.Key)
}

// IsScored сообщает, приносит ли запись очко в лидерборде
func (a *Achievement) IsScored() bool {
	return a.Achieved && !a.IsHidden()
}

// IsHiddenAchievementKey проверяет ключ на служебный префикс
func IsHiddenAchievementKey(key string) bool {
	return strings.HasPrefix(key, HiddenAchievementPrefix)
}

// ValidateAchievementKey проверяет ключ достижения. Пространство ключей открыто,
// ограничивается только пустая строка и длина.
func ValidateAchievementKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: achievementEnum is required", apperrors.ErrValidation)
	}
	if len(key) > MaxAchievementKeyLength {
		return fmt.Errorf("%w: achievementEnum is longer than %d characters", apperrors.ErrValidation, MaxAchievementKeyLength)
	}
	return nil
}
