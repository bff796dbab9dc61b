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

func TestLeaderboardService_SessionScenario(t *testing.T) {
	metrics := newRecordingMetrics()
	svc := NewProgressService(memory.New().RepositorySet(), metrics)
	ctx := context.Background()

	alice, err := svc.Users.CreatePlayer(ctx, "alice", "multiPlayer", strPtr("ABCD"))
	require.NoError(t, err)
	bob, err := svc.Users.CreatePlayer(ctx, "bob", "multiPlayer", strPtr("ABCD"))
	require.NoError(t, err)
	carol, err := svc.Users.CreatePlayer(ctx, "carol", "multiPlayer", strPtr("WXYZ"))
	require.NoError(t, err)
	_, err = svc.Users.CreatePlayer(ctx, "dave", "singlePlayer", nil)
	require.NoError(t, err)

	unlock := func(userID uint, key string, achieved bool) {
		_, err := svc.Achievements.UnlockAchievement(ctx, userID, key, achieved)
		require.NoError(t, err)
	}
	unlock(alice.ID, "a1", true)
	unlock(alice.ID, "a2", true)
	unlock(alice.ID, "#hidden", true)
	unlock(bob.ID, "a1", true)
	unlock(bob.ID, "a2", false)
	unlock(carol.ID, "a1", true)

	board, err := svc.Leaderboard.GetLeaderboard(ctx, "ABCD")
	require.NoError(t, err)
	require.Len(t, board, 2, "В лидерборд попадают только игроки сессии")
	assert.Equal(t, "alice", board[0].Name)
	assert.Equal(t, int64(2), board[0].Score, "Скрытые и не достигнутые записи не учитываются")
	assert.Equal(t, "bob", board[1].Name)
	assert.Equal(t, int64(1), board[1].Score)
	assert.Equal(t, []int{2}, metrics.leaderboards)
}

func TestLeaderboardService_PlayerWithoutAchievementsScoresZero(t *testing.T) {
	svc := NewProgressService(memory.New().RepositorySet(), nil)
	ctx := context.Background()

	_, err := svc.Users.CreatePlayer(ctx, "zed", "multiPlayer", strPtr("EMPTY"))
	require.NoError(t, err)

	board, err := svc.Leaderboard.GetLeaderboard(ctx, "EMPTY")
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Zero(t, board[0].Score)
}

func TestLeaderboardService_ReflectsLatestWrites(t *testing.T) {
	svc := NewProgressService(memory.New().RepositorySet(), nil)
	ctx := context.Background()

	bob, err := svc.Users.CreatePlayer(ctx, "bob", "multiPlayer", strPtr("LIVE"))
	require.NoError(t, err)

	board, err := svc.Leaderboard.GetLeaderboard(ctx, "LIVE")
	require.NoError(t, err)
	assert.Zero(t, board[0].Score)

	_, err = svc.Achievements.UnlockAchievement(ctx, bob.ID, "win", true)
	require.NoError(t, err)

	board, err = svc.Leaderboard.GetLeaderboard(ctx, "LIVE")
	require.NoError(t, err)
	assert.Equal(t, int64(1), board[0].Score)
}

func TestLeaderboardService_EmptySessionIsNotFound(t *testing.T) {
	lbRepo := new(MockLeaderboardRepo)
	metrics := newRecordingMetrics()
	svc := NewLeaderboardService(lbRepo, metrics)

	lbRepo.On("SessionScores", mock.Anything, "NOPE").Return([]entity.LeaderboardEntry{}, nil)

	_, err := svc.GetLeaderboard(context.Background(), "NOPE")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, metrics.leaderboards)
}

func TestLeaderboardService_BlankCodeIsInvalid(t *testing.T) {
	lbRepo := new(MockLeaderboardRepo)
	svc := NewLeaderboardService(lbRepo, nil)

	_, err := svc.GetLeaderboard(context.Background(), "   ")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	lbRepo.AssertNotCalled(t, "SessionScores", mock.Anything, mock.Anything)
}
