package repository

import (
	"context"

	"github.com/yourusername/progress-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с игроками
type UserRepository interface {
	// Create вставляет игрока. Повтор имени возвращает apperrors.ErrConflict
	// (проверяется уникальным индексом хранилища, а не предварительным чтением).
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
}
