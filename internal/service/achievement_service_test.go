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

func TestAchievementService_FirstWriteWins(t *testing.T) {
	metrics := newRecordingMetrics()
	svc := NewProgressService(memory.New().RepositorySet(), metrics)
	ctx := context.Background()

	user, err := svc.Users.CreatePlayer(ctx, "alice", "singlePlayer", nil)
	require.NoError(t, err)

	_, err = svc.Achievements.UnlockAchievement(ctx, user.ID, "first_login", false)
	require.NoError(t, err)

	// Повтор с другим значением отклоняется, сохранённое значение не меняется
	_, err = svc.Achievements.UnlockAchievement(ctx, user.ID, "first_login", true)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	list, err := svc.Achievements.GetAchievements(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "first_login", list[0].Key)
	assert.False(t, list[0].Achieved)

	assert.Equal(t, 1, metrics.achievements[false])
	assert.Equal(t, 1, metrics.conflicts["unlock_achievement"])
}

func TestAchievementService_UnknownUser(t *testing.T) {
	svc := NewProgressService(memory.New().RepositorySet(), nil)
	ctx := context.Background()

	_, err := svc.Achievements.UnlockAchievement(ctx, 404, "first_login", true)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	list, err := svc.Achievements.GetAchievements(ctx, 404)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAchievementService_InvalidKey(t *testing.T) {
	achRepo := new(MockAchievementRepo)
	userRepo := new(MockUserRepo)
	svc := NewAchievementService(achRepo, userRepo, nil)

	_, err := svc.UnlockAchievement(context.Background(), 1, "", true)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	achRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAchievementService_StoresHiddenKeys(t *testing.T) {
	achRepo := new(MockAchievementRepo)
	userRepo := new(MockUserRepo)
	metrics := newRecordingMetrics()
	svc := NewAchievementService(achRepo, userRepo, metrics)

	userRepo.On("GetByID", mock.Anything, uint(5)).Return(&entity.User{ID: 5, Name: "alice"}, nil)
	achRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Achievement) bool {
		return a.UserID == 5 && a.Key == "#tutorial_seen" && a.Achieved
	})).Return(nil)

	a, err := svc.UnlockAchievement(context.Background(), 5, "#tutorial_seen", true)

	require.NoError(t, err)
	assert.True(t, a.IsHidden())
	assert.Equal(t, 1, metrics.achievements[true])
	achRepo.AssertExpectations(t)
}

func TestAchievementService_ConcurrentSameKey_ExactlyOneWins(t *testing.T) {
	svc := NewProgressService(memory.New().RepositorySet(), nil)
	ctx := context.Background()

	user, err := svc.Users.CreatePlayer(ctx, "alice", "singlePlayer", nil)
	require.NoError(t, err)

	const workers = 12
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(achieved bool) {
			defer wg.Done()
			_, err := svc.Achievements.UnlockAchievement(ctx, user.ID, "speedrun", achieved)
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
		}(i%2 == 0)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)

	list, err := svc.Achievements.GetAchievements(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
