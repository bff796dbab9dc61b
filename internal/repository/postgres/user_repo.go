package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/progress-api/internal/domain/entity"
	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя.
// Уникальность имени гарантирует индекс idx_users_name, поэтому два параллельных
// запроса с одним именем не могут завершиться успешно оба.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if err := conn(ctx, r.db).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %q already exists", apperrors.ErrConflict, user.Name)
		}
		return fmt.Errorf("create user %q failed: %w", user.Name, err)
	}
	return nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	err := conn(ctx, r.db).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user #%d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

// GetByName возвращает пользователя по имени
func (r *UserRepo) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var user entity.User
	err := conn(ctx, r.db).Where("name = ?", name).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, name)
		}
		return nil, err
	}
	return &user, nil
}
