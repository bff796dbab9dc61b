package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestNewPlayer_SinglePlayerDropsGameCode(t *testing.T) {
	// Arrange & Act: одиночный режим с переданным кодом сессии
	user, err := NewPlayer("alice", SessionModeSingle, strPtr("ABCD"))

	// Assert: код сессии не сохраняется
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.Nil(t, user.GameCode, "В одиночном режиме сессия не сохраняется")
	assert.False(t, user.InSession())
}

func TestNewPlayer_MultiPlayerKeepsGameCode(t *testing.T) {
	user, err := NewPlayer("  bob ", SessionModeMulti, strPtr(" ABCD "))

	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name, "Имя должно быть обрезано")
	require.NotNil(t, user.GameCode)
	assert.Equal(t, "ABCD", *user.GameCode)
	assert.True(t, user.InSession())
}

func TestNewPlayer_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		username string
		mode     SessionMode
		gameCode *string
	}{
		{name: "empty name", username: "  ", mode: SessionModeSingle},
		{name: "too long name", username: strings.Repeat("x", MaxNameLength+1), mode: SessionModeSingle},
		{name: "multi without code", username: "carol", mode: SessionModeMulti},
		{name: "multi with blank code", username: "carol", mode: SessionModeMulti, gameCode: strPtr("   ")},
		{name: "unknown mode", username: "carol", mode: SessionMode("coop")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlayer(tt.username, tt.mode, tt.gameCode)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestParseSessionMode(t *testing.T) {
	mode, err := ParseSessionMode("multiPlayer")
	require.NoError(t, err)
	assert.Equal(t, SessionModeMulti, mode)

	_, err = ParseSessionMode("MULTIPLAYER")
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Режим чувствителен к регистру")
}

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories() {
		parsed, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
		assert.True(t, c.Valid())
	}

	_, err := ParseCategory("UNKNOWN")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.False(t, Category("UNKNOWN").Valid())
}

func TestAllCategories_ReturnsCopy(t *testing.T) {
	cats := AllCategories()
	cats[0] = "MUTATED"

	assert.Equal(t, CategoryClassic, AllCategories()[0], "Изменение копии не должно влиять на набор категорий")
}

func TestDefaultHighScores(t *testing.T) {
	rows := DefaultHighScores(7, AllCategories())

	require.Len(t, rows, len(AllCategories()))
	for i, row := range rows {
		assert.Equal(t, uint(7), row.UserID)
		assert.Equal(t, AllCategories()[i], row.Category)
		assert.Zero(t, row.Value)
	}
}

func TestAchievement_IsScored(t *testing.T) {
	tests := []struct {
		name string
		a    Achievement
		want bool
	}{
		{name: "achieved visible", a: Achievement{Key: "first_login", Achieved: true}, want: true},
		{name: "not achieved", a: Achievement{Key: "first_login", Achieved: false}, want: false},
		{name: "achieved hidden", a: Achievement{Key: "#tutorial_seen", Achieved: true}, want: false},
		{name: "marker not at start", a: Achievement{Key: "level#2", Achieved: true}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.IsScored())
		})
	}
}

func TestValidateAchievementKey(t *testing.T) {
	assert.NoError(t, ValidateAchievementKey("first_login"))
	assert.NoError(t, ValidateAchievementKey("#hidden"))
	assert.ErrorIs(t, ValidateAchievementKey(""), apperrors.ErrValidation)
	assert.ErrorIs(t, ValidateAchievementKey(strings.Repeat("k", MaxAchievementKeyLength+1)), apperrors.ErrValidation)
}

func TestScoreAchievements(t *testing.T) {
	rows := []Achievement{
		{Key: "a", Achieved: true},
		{Key: "b", Achieved: false},
		{Key: "#c", Achieved: true},
		{Key: "d", Achieved: true},
	}

	assert.Equal(t, int64(2), ScoreAchievements(rows))
	assert.Equal(t, int64(0), ScoreAchievements([]Achievement{{Key: "#only", Achieved: true}}))
}

func TestSortLeaderboard_TieBreakByNameThenID(t *testing.T) {
	entries := []LeaderboardEntry{
		{UserID: 3, Name: "carol", Score: 1},
		{UserID: 1, Name: "bob", Score: 2},
		{UserID: 2, Name: "alice", Score: 1},
		{UserID: 5, Name: "alice", Score: 1},
	}

	SortLeaderboard(entries)

	assert.Equal(t, []LeaderboardEntry{
		{UserID: 1, Name: "bob", Score: 2},
		{UserID: 2, Name: "alice", Score: 1},
		{UserID: 5, Name: "alice", Score: 1},
		{UserID: 3, Name: "carol", Score: 1},
	}, entries)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "high_scores", HighScore{}.TableName())
	assert.Equal(t, "achievements", Achievement{}.TableName())
}

func TestAnswerSubmission_Validate(t *testing.T) {
	valid := AnswerSubmission{Situation: "s", UserInput: "", Solution: "Ja"}
	assert.NoError(t, valid.Validate(), "Пустой ответ игрока допустим")

	assert.ErrorIs(t, AnswerSubmission{Solution: "Ja"}.Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, AnswerSubmission{Situation: "s"}.Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, AnswerSubmission{
		Situation: "s",
		Solution:  "Ja",
		UserInput: strings.Repeat("a", MaxAnswerFieldLength+1),
	}.Validate(), apperrors.ErrValidation)
}
