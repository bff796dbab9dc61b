package service

import (
	"context"

	"github.com/yourusername/progress-api/internal/domain/entity"
	"github.com/yourusername/progress-api/internal/domain/repository"
)

// Provisioner заполняет таблицу рекордов нового игрока нулями по всем категориям
type Provisioner struct {
	highScoreRepo repository.HighScoreRepository
	categories    []entity.Category
}

// NewProvisioner создает Provisioner для полного набора категорий
func NewProvisioner(highScoreRepo repository.HighScoreRepository) *Provisioner {
	return &Provisioner{
		highScoreRepo: highScoreRepo,
		categories:    entity.AllCategories(),
	}
}

// Provision создаёт недостающие записи рекордов игрока.
// Операция идемпотентна: уже существующие категории не трогаются.
func (p *Provisioner) Provision(ctx context.Context, userID uint) error {
	return p.highScoreRepo.SeedDefaults(ctx, userID, p.categories)
}

// Categories возвращает категории, которые получает каждый игрок
func (p *Provisioner) Categories() []entity.Category {
	out := make([]entity.Category, len(p.categories))
	copy(out, p.categories)
	return out
}
