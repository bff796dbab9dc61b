package entity

import (
	"fmt"
	"time"

	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

// Category - фиксированное измерение рекордов (игровой режим)
type Category string

const (
	CategoryClassic  Category = "CLASSIC"
	CategorySpeed    Category = "SPEED"
	CategorySurvival Category = "SURVIVAL"
)

var allCategories = []Category{CategoryClassic, CategorySpeed, CategorySurvival}

// AllCategories возвращает все известные категории в порядке объявления.
// Возвращается копия, вызывающий код может её изменять.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory преобразует строку клиента в категорию
func ParseCategory(s string) (Category, error) {
	for _, c := range allCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown highscore category %q", apperrors.ErrValidation, s)
}

// Valid сообщает, входит ли категория в известный набор
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

// HighScore хранит рекорд игрока в одной категории.
// Пара (user_id, category) уникальна.
type HighScore struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_high_scores_user_category" json:"user_id"`
	Category  Category  `gorm:"size:32;not null;uniqueIndex:idx_high_scores_user_category" json:"category"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (HighScore) TableName() string {
	return "high_scores"
}

// DefaultHighScores строит нулевые записи для всех категорий нового игрока
func DefaultHighScores(userID uint, categories []Category) []HighScore {
	rows := make([]HighScore, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, HighScore{UserID: userID, Category: c, Value: 0})
	}
	return rows
}
