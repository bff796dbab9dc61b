package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/progress-api/internal/domain/entity"
	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

// Grader оценивает свободный ответ игрока через внешний сервис
type Grader interface {
	Grade(ctx context.Context, submission entity.AnswerSubmission) (string, error)
}

// AnswerService передаёт ответы игроков во внешний сервис оценки
type AnswerService struct {
	grader  Grader
	metrics ProgressMetrics
}

// NewAnswerService создает сервис оценки. grader может быть nil, тогда оценка отключена.
func NewAnswerService(grader Grader, metrics ProgressMetrics) *AnswerService {
	return &AnswerService{
		grader:  grader,
		metrics: metricsOrNoop(metrics),
	}
}

// GradeAnswer возвращает текст оценки от внешнего сервиса.
// Любая ошибка внешнего сервиса возвращается как apperrors.ErrUpstream.
func (s *AnswerService) GradeAnswer(ctx context.Context, submission entity.AnswerSubmission) (string, error) {
	if err := submission.Validate(); err != nil {
		return "", err
	}
	if s.grader == nil {
		return "", ErrGradingDisabled
	}

	result, err := s.grader.Grade(ctx, submission)
	if err != nil {
		s.metrics.GradingRequested("error")
		log.Printf("[AnswerService] Ошибка оценки ответа: %v", err)
		if errors.Is(err, apperrors.ErrUpstream) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}

	s.metrics.GradingRequested("ok")
	return result, nil
}
