package entity

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

// MaxNameLength ограничивает длину имени игрока (совпадает с размером колонки users.name)
const MaxNameLength = 50

// MaxGameCodeLength ограничивает длину кода игровой сессии
const MaxGameCodeLength = 50

// User представляет игрока
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:50;not null;uniqueIndex:idx_users_name" json:"name"`
	GameCode  *string   `gorm:"column:game_code;size:50;index:idx_users_game_code" json:"game_code"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// InSession сообщает, привязан ли игрок к игровой сессии
func (u *User) InSession() bool {
	return u.GameCode != nil && *u.GameCode != ""
}

// SessionMode определяет, как игрок участвует в игре
type SessionMode string

const (
	// SessionModeSingle - одиночная игра, сессия не сохраняется
	SessionModeSingle SessionMode = "singlePlayer"
	// SessionModeMulti - групповая игра, игрок привязывается к коду сессии
	SessionModeMulti SessionMode = "multiPlayer"
)

// ParseSessionMode проверяет режим игры, полученный от клиента
func ParseSessionMode(s string) (SessionMode, error) {
	switch SessionMode(s) {
	case SessionModeSingle, SessionModeMulti:
		return SessionMode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", apperrors.ErrValidation, s)
	}
}

// NewPlayer собирает нового игрока из данных регистрации.
// В одиночном режиме код сессии игнорируется, в групповом он обязателен.
func NewPlayer(name string, mode SessionMode, gameCode *string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if len(name) > MaxNameLength {
		return nil, fmt.Errorf("%w: username is longer than %d characters", apperrors.ErrValidation, MaxNameLength)
	}

	user := &User{Name: name}
	switch mode {
	case SessionModeSingle:
		// Одиночный игрок не попадает ни в один лидерборд
	case SessionModeMulti:
		if gameCode == nil || strings.TrimSpace(*gameCode) == "" {
			return nil, fmt.Errorf("%w: gameCode is required in %s mode", apperrors.ErrValidation, mode)
		}
		code := strings.TrimSpace(*gameCode)
		if len(code) > MaxGameCodeLength {
			return nil, fmt.Errorf("%w: gameCode is longer than %d characters", apperrors.ErrValidation, MaxGameCodeLength)
		}
		user.GameCode = &code
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", apperrors.ErrValidation, mode)
	}
	return user, nil
}
