package entity

import (
	"fmt"
	"strings"

	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

// MaxAnswerFieldLength ограничивает размер каждого поля, уходящего в промпт
const MaxAnswerFieldLength = 2000

// AnswerSubmission - свободный ответ игрока на ситуацию викторины
type AnswerSubmission struct {
	Situation string
	UserInput string
	Solution  string
}

// Validate проверяет, что ситуация и эталонное решение заданы, а поля не слишком длинные.
// Пустой ответ игрока допустим: его тоже оценивает внешний сервис.
func (a AnswerSubmission) Validate() error {
	if strings.TrimSpace(a.Situation) == "" {
		return fmt.Errorf("%w: situation is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(a.Solution) == "" {
		return fmt.Errorf("%w: solution is required", apperrors.ErrValidation)
	}
	fields := []struct{ name, value string }{
		{"situation", a.Situation},
		{"userInput", a.UserInput},
		{"solution", a.Solution},
	}
	for _, f := range fields {
		if len(f.value) > MaxAnswerFieldLength {
			return fmt.Errorf("%w: %s is longer than %d characters", apperrors.ErrValidation, f.name, MaxAnswerFieldLength)
		}
	}
	return nil
}
