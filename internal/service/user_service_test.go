package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/progress-api/internal/domain/entity"
	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
	"github.com/yourusername/progress-api/internal/repository/memory"
)

func strPtr(s string) *string { return &s }

func TestUserService_CreatePlayer_ProvisionsAllCategories(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepo)
	hsRepo := new(MockHighScoreRepo)
	metrics := newRecordingMetrics()
	svc := NewUserService(userRepo, NewProvisioner(hsRepo), passthroughTx{}, metrics)

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = 42
		}).
		Return(nil)
	hsRepo.On("SeedDefaults", mock.Anything, uint(42), entity.AllCategories()).Return(nil)

	// Act
	user, err := svc.CreatePlayer(context.Background(), "alice", "singlePlayer", nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)
	assert.Equal(t, "alice", user.Name)
	assert.Nil(t, user.GameCode)
	assert.Equal(t, 1, metrics.players)
	userRepo.AssertExpectations(t)
	hsRepo.AssertExpectations(t)
}

func TestUserService_CreatePlayer_Validation(t *testing.T) {
	userRepo := new(MockUserRepo)
	hsRepo := new(MockHighScoreRepo)
	svc := NewUserService(userRepo, NewProvisioner(hsRepo), passthroughTx{}, nil)

	tests := []struct {
		name     string
		username string
		mode     string
		gameCode *string
	}{
		{name: "empty name", username: "", mode: "singlePlayer"},
		{name: "unknown mode", username: "alice", mode: "coop"},
		{name: "multiplayer without code", username: "alice", mode: "multiPlayer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePlayer(context.Background(), tt.username, tt.mode, tt.gameCode)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	// Репозиторий не должен вызываться при невалидном запросе
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_CreatePlayer_ConflictSkipsProvisioning(t *testing.T) {
	userRepo := new(MockUserRepo)
	hsRepo := new(MockHighScoreRepo)
	metrics := newRecordingMetrics()
	svc := NewUserService(userRepo, NewProvisioner(hsRepo), passthroughTx{}, metrics)

	userRepo.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrConflict)

	_, err := svc.CreatePlayer(context.Background(), "alice", "singlePlayer", nil)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 1, metrics.conflicts["create_player"])
	assert.Zero(t, metrics.players)
	hsRepo.AssertNotCalled(t, "SeedDefaults", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_CreatePlayer_ProvisioningFailure(t *testing.T) {
	userRepo := new(MockUserRepo)
	hsRepo := new(MockHighScoreRepo)
	svc := NewUserService(userRepo, NewProvisioner(hsRepo), passthroughTx{}, nil)

	boom := errors.New("connection reset")
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	hsRepo.On("SeedDefaults", mock.Anything, mock.Anything, mock.Anything).Return(boom)

	_, err := svc.CreatePlayer(context.Background(), "alice", "singlePlayer", nil)

	assert.ErrorIs(t, err, boom)
}

func TestUserService_GetPlayer_NotFound(t *testing.T) {
	store := memory.New()
	svc := NewProgressService(store.RepositorySet(), nil)

	_, err := svc.Users.GetPlayer(context.Background(), 999)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserService_GetPlayer_ReturnsGameCode(t *testing.T) {
	store := memory.New()
	svc := NewProgressService(store.RepositorySet(), nil)
	ctx := context.Background()

	created, err := svc.Users.CreatePlayer(ctx, "bob", "multiPlayer", strPtr("ABCD"))
	require.NoError(t, err)

	got, err := svc.Users.GetPlayer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Name)
	require.NotNil(t, got.GameCode)
	assert.Equal(t, "ABCD", *got.GameCode)
}

func TestUserService_ConcurrentSameName_ExactlyOneWins(t *testing.T) {
	store := memory.New()
	metrics := newRecordingMetrics()
	svc := NewProgressService(store.RepositorySet(), metrics)

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Users.CreatePlayer(context.Background(), "racer", "singlePlayer", nil)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, apperrors.ErrConflict):
				conflicts++
			default:
				t.Errorf("Неожиданная ошибка: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, workers-1, metrics.conflicts["create_player"])
}
