package service

import (
	"context"
	"errors"
	"log"

	"github.com/yourusername/progress-api/internal/domain/entity"
	"github.com/yourusername/progress-api/internal/domain/repository"
	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

// UserService предоставляет методы для работы с игроками
type UserService struct {
	userRepo    repository.UserRepository
	provisioner *Provisioner
	tx          repository.Transactor
	metrics     ProgressMetrics
}

// NewUserService создает новый сервис пользователей
func NewUserService(
	userRepo repository.UserRepository,
	provisioner *Provisioner,
	tx repository.Transactor,
	metrics ProgressMetrics,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		provisioner: provisioner,
		tx:          tx,
		metrics:     metricsOrNoop(metrics),
	}
}

// CreatePlayer регистрирует игрока и создаёт ему нулевые рекорды.
// Вставка игрока и подготовка рекордов выполняются в одной транзакции хранилища.
// Занятое имя возвращает apperrors.ErrConflict.
func (s *UserService) CreatePlayer(ctx context.Context, username, mode string, gameCode *string) (*entity.User, error) {
	sessionMode, err := entity.ParseSessionMode(mode)
	if err != nil {
		return nil, err
	}
	user, err := entity.NewPlayer(username, sessionMode, gameCode)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return s.provisioner.Provision(ctx, user.ID)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.metrics.ConflictDetected("create_player")
			log.Printf("[UserService] Имя %q уже занято", user.Name)
		} else {
			log.Printf("[UserService] Ошибка при создании игрока %q: %v", user.Name, err)
		}
		return nil, err
	}

	s.metrics.PlayerCreated()
	log.Printf("[UserService] Игрок #%d %q создан (mode=%s, session=%t)", user.ID, user.Name, sessionMode, user.InSession())
	return user, nil
}

// GetPlayer возвращает игрока по ID
func (s *UserService) GetPlayer(ctx context.Context, id uint) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
