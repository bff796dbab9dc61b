package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/progress-api/internal/domain/repository"
)

type txKey struct{}

// Transactor реализует repository.Transactor поверх gorm
type Transactor struct {
	db *gorm.DB
}

// NewTransactor создает новый Transactor
func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTransaction открывает транзакцию и кладёт её в контекст.
// Ошибка из fn откатывает транзакцию целиком.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Ping проверяет соединение с базой
func (t *Transactor) Ping(ctx context.Context) error {
	sqlDB, err := t.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// conn возвращает транзакцию из контекста или обычное соединение
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// NewRepositorySet собирает все PostgreSQL-репозитории над одним соединением
func NewRepositorySet(db *gorm.DB) repository.Set {
	tx := NewTransactor(db)
	return repository.Set{
		Users:        NewUserRepo(db),
		HighScores:   NewHighScoreRepo(db),
		Achievements: NewAchievementRepo(db),
		Leaderboard:  NewLeaderboardRepo(db),
		Transactor:   tx,
		Pinger:       tx,
	}
}
