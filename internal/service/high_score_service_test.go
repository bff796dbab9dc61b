package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/progress-api/internal/domain/entity"
	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
	"github.com/yourusername/progress-api/internal/repository/memory"
)

func TestHighScoreService_NewPlayerHasZeroInEveryCategory(t *testing.T) {
	svc := NewProgressService(memory.New().RepositorySet(), nil)
	ctx := context.Background()

	user, err := svc.Users.CreatePlayer(ctx, "alice", "singlePlayer", nil)
	require.NoError(t, err)

	for _, c := range entity.AllCategories() {
		value, err := svc.HighScores.GetHighScore(ctx, user.ID, string(c))
		require.NoError(t, err, "Категория %s должна быть создана", c)
		assert.Zero(t, value)
	}

	list, err := svc.HighScores.ListHighScores(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, len(entity.AllCategories()))
}

func TestHighScoreService_SetIsUnconditional(t *testing.T) {
	metrics := newRecordingMetrics()
	svc := NewProgressService(memory.New().RepositorySet(), metrics)
	ctx := context.Background()

	user, err := svc.Users.CreatePlayer(ctx, "alice", "singlePlayer", nil)
	require.NoError(t, err)

	require.NoError(t, svc.HighScores.SetHighScore(ctx, user.ID, "CLASSIC", 1500))
	value, err := svc.HighScores.GetHighScore(ctx, user.ID, "CLASSIC")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), value)

	// Меньшее значение тоже записывается
	require.NoError(t, svc.HighScores.SetHighScore(ctx, user.ID, "CLASSIC", 10))
	value, err = svc.HighScores.GetHighScore(ctx, user.ID, "CLASSIC")
	require.NoError(t, err)
	assert.Equal(t, int64(10), value)

	// Остальные категории не меняются
	other, err := svc.HighScores.GetHighScore(ctx, user.ID, "SPEED")
	require.NoError(t, err)
	assert.Zero(t, other)

	assert.Equal(t, 2, metrics.highScores["CLASSIC"])
}

func TestHighScoreService_GetUnknownCategoryIsNotFound(t *testing.T) {
	hsRepo := new(MockHighScoreRepo)
	svc := NewHighScoreService(hsRepo, nil)

	_, err := svc.GetHighScore(context.Background(), 1, "UNKNOWN")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	hsRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestHighScoreService_GetUnknownUserIsNotFound(t *testing.T) {
	svc := NewProgressService(memory.New().RepositorySet(), nil)

	_, err := svc.HighScores.GetHighScore(context.Background(), 404, "CLASSIC")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestHighScoreService_SetValidation(t *testing.T) {
	hsRepo := new(MockHighScoreRepo)
	svc := NewHighScoreService(hsRepo, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetHighScore(ctx, 1, "UNKNOWN", 5), apperrors.ErrValidation)
	assert.ErrorIs(t, svc.SetHighScore(ctx, 1, "CLASSIC", -1), apperrors.ErrValidation)
	hsRepo.AssertNotCalled(t, "SetValue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHighScoreService_SetMissingPairDoesNotCreate(t *testing.T) {
	store := memory.New()
	svc := NewProgressService(store.RepositorySet(), nil)
	ctx := context.Background()

	err := svc.HighScores.SetHighScore(ctx, 77, "CLASSIC", 100)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	list, err := svc.HighScores.ListHighScores(ctx, 77)
	require.NoError(t, err)
	assert.Empty(t, list, "Запись не должна появиться")
}

func TestHighScoreService_SetPropagatesRepoError(t *testing.T) {
	hsRepo := new(MockHighScoreRepo)
	metrics := newRecordingMetrics()
	svc := NewHighScoreService(hsRepo, metrics)

	hsRepo.On("SetValue", mock.Anything, uint(3), entity.CategorySpeed, int64(9)).Return(apperrors.ErrNotFound)

	err := svc.SetHighScore(context.Background(), 3, "SPEED", 9)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Zero(t, metrics.highScores["SPEED"])
	hsRepo.AssertExpectations(t)
}
